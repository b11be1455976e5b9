package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tagsight/internal/ipc"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Test connectivity to the order backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Probe()
				if err != nil {
					return err
				}
				if resp == nil {
					return errors.New("missing probe response")
				}
				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)
				if resp.Reachable {
					fmt.Fprintln(stdout, renderStatusLine("Backend", statusOK,
						fmt.Sprintf("reachable (%s dialect)", resp.Dialect), colorize))
					return nil
				}
				fmt.Fprintln(stdout, renderStatusLine("Backend", statusError, "unreachable", colorize))
				return errors.New("backend unreachable")
			})
		},
	}
}
