package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tagsight/internal/ipc"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start scan processing in the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Start()
				if err != nil {
					return err
				}
				if resp == nil {
					return errors.New("missing start response")
				}
				stdout := cmd.OutOrStdout()
				switch {
				case resp.Started:
					fmt.Fprintln(stdout, "Scan processing started")
				case resp.Message != "":
					fmt.Fprintln(stdout, resp.Message)
				default:
					fmt.Fprintln(stdout, "Scan processing already running")
				}
				return nil
			})
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop scan processing in the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Stop()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if resp != nil && resp.Stopped {
					fmt.Fprintln(stdout, "Scan processing stopped")
				} else {
					fmt.Fprintln(stdout, "Scan processing was not running")
				}
				return nil
			})
		},
	}

	return []*cobra.Command{startCmd, stopCmd}
}
