package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/format"
)

func formatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format dates and times for display",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "date <value>",
			Short: "Format an ISO date as DD/MM/YYYY",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := format.FormatDate(args[0])
				if err != nil {
					return a.fail(err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			},
		},
		&cobra.Command{
			Use:   "time <value>",
			Short: "Keep the HH:MM part of a time",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), format.FormatTime(args[0]))
				return err
			},
		},
	)
	return cmd
}
