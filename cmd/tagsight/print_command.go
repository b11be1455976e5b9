package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tagsight/internal/ipc"
)

func newPrintCommand(ctx *commandContext) *cobra.Command {
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Label print integration utilities",
	}

	printCmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a test barcode through the print integration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.PrintTest()
				if err != nil {
					return err
				}
				if resp == nil {
					return errors.New("missing print test response")
				}
				stdout := cmd.OutOrStdout()
				if resp.Message != "" {
					fmt.Fprintln(stdout, resp.Message)
				}
				if !resp.Success {
					return errors.New("print test failed")
				}
				return nil
			})
		},
	})

	return printCmd
}
