package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tagsight/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon and terminal status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				if resp == nil {
					return errors.New("missing status response")
				}
				status := resp.Status
				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)

				for _, line := range renderSectionHeader("Daemon", colorize) {
					fmt.Fprintln(stdout, line)
				}
				runningKind := statusWarn
				runningMsg := "stopped"
				if status.Running {
					runningKind = statusOK
					runningMsg = fmt.Sprintf("running (pid %d)", status.PID)
				}
				fmt.Fprintln(stdout, renderStatusLine("Processing", runningKind, runningMsg, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Pending scans", statusInfo, fmt.Sprintf("%d", status.PendingScans), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Scanner hotplug", statusKindFromBool(status.Hotplug), yesNo(status.Hotplug), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Ledger database", statusInfo, status.LedgerDBPath, colorize))
				fmt.Fprintln(stdout)

				term := status.Terminal
				for _, line := range renderSectionHeader("Terminal", colorize) {
					fmt.Fprintln(stdout, line)
				}
				backendMsg := term.BackendURL
				backendKind := statusOK
				if backendMsg == "" {
					backendMsg = "not configured"
					backendKind = statusWarn
				}
				fmt.Fprintln(stdout, renderStatusLine("Backend", backendKind, backendMsg, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Dialect", statusInfo, term.Dialect, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Ledger", statusInfo,
					fmt.Sprintf("%d line(s) across %d order(s)", term.LedgerLines, term.LedgerOrders), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Printing", statusKindFromBool(term.PrinterEnabled), yesNo(term.PrinterEnabled), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Artwork library", statusKindFromBool(term.ArtworkDir), yesNo(term.ArtworkDir), colorize))
				return nil
			})
		},
	}
}
