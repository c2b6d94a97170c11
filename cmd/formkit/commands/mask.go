package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/mask"
)

func maskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mask",
		Short: "Apply input masks to raw values",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "phone <value>",
		Short: "Format a phone number as (DD) DDDDD-DDDD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), mask.Phone(args[0]))
			return err
		},
	})
	return cmd
}
