package commands

import (
	"errors"

	"github.com/spf13/cobra"

	formkit "github.com/goliatone/go-formkit"
)

func applyCmd(a *app) *cobra.Command {
	var input, output, today string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Enhance an HTML document and write the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(input)
			if err != nil {
				return a.fail(err)
			}
			opts, err := a.initOptions(today)
			if err != nil {
				return a.fail(err)
			}
			h, err := formkit.Init(doc, opts...)
			if err != nil {
				return a.fail(err)
			}
			defer h.Close()

			pending := 0
			if tracker := h.Tracker(); tracker != nil {
				pending = len(tracker.Pending())
			}
			a.logs.Info.Printf("applied %s: %d forms, %d cards hidden", input, len(doc.Forms()), pending)
			return a.fail(writeDocument(cmd, doc, output))
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "HTML document to enhance")
	cmd.Flags().StringVar(&output, "output", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&today, "today", "", "override today's date (YYYY-MM-DD)")
	return cmd
}

// fail logs err, if any, and returns it unchanged.
func (a *app) fail(err error) error {
	if err != nil && !errors.Is(err, ErrBlocked) && !errors.Is(err, ErrDeclined) {
		a.logs.Error.Print(err)
	}
	return err
}
