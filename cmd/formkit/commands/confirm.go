package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/format"
)

func confirmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm [message]",
		Short: "Ask for confirmation; exits non-zero when declined",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			if strings.TrimSpace(message) == "" {
				message = a.localizer().Message("confirm.default", format.DefaultConfirmMessage, nil)
			}

			confirmer := a.confirmer
			if confirmer == nil {
				confirmer = format.SurveyConfirmer{}
			}
			ok, err := format.ConfirmAction(cmd.Context(), confirmer, message)
			if err != nil {
				return a.fail(err)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no")
				return ErrDeclined
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "yes")
			return err
		},
	}
}
