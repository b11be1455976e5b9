package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tagsight/internal/ipc"
)

func newInventoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "Push every ledger line to inventory and clear the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Inventory()
				if err != nil {
					return err
				}
				if resp == nil {
					return errors.New("missing inventory response")
				}
				stdout := cmd.OutOrStdout()
				result := resp.Result
				switch {
				case result.Pushed == 0 && result.Failed == 0:
					fmt.Fprintln(stdout, "Ledger is empty; nothing to push")
				case result.Failed == 0:
					fmt.Fprintf(stdout, "Pushed %d line(s) to inventory\n", result.Pushed)
				default:
					fmt.Fprintf(stdout, "Pushed %d line(s) to inventory, %d failed\n", result.Pushed, result.Failed)
				}
				if result.Cleared {
					fmt.Fprintln(stdout, "Ledger cleared")
				} else if result.Failed > 0 {
					fmt.Fprintln(stdout, "Ledger kept; retry after the backend recovers")
				}
				return nil
			})
		},
	}
}
