package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tagsight/internal/ipc"
	"tagsight/internal/terminal"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <task-code>...",
		Short: "Process one or more scanned task codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)
				var failed bool
				for _, code := range args {
					resp, err := client.Scan(code)
					if err != nil {
						return err
					}
					if resp == nil {
						return errors.New("missing scan response")
					}
					printScanResult(stdout, resp.Result, colorize)
					if resp.Result.Outcome == terminal.OutcomeRejected {
						failed = true
					}
				}
				if failed {
					return errors.New("one or more codes were rejected")
				}
				return nil
			})
		},
	}
}

func printScanResult(stdout io.Writer, result terminal.ScanResult, colorize bool) {
	switch result.Outcome {
	case terminal.OutcomeAdded:
		line := fmt.Sprintf("%s: added %d line(s)", result.TaskCode, result.Added)
		if result.Duplicates > 0 {
			line += fmt.Sprintf(" (%d duplicate(s) skipped)", result.Duplicates)
		}
		if result.Printed > 0 {
			line += fmt.Sprintf(", %d label(s) queued", result.Printed)
		}
		fmt.Fprintln(stdout, renderStatusLine("Scan", statusOK, line, colorize))
	case terminal.OutcomeDuplicate:
		fmt.Fprintln(stdout, renderStatusLine("Scan", statusWarn,
			fmt.Sprintf("%s: already on the ledger", result.TaskCode), colorize))
	case terminal.OutcomeNotFound:
		fmt.Fprintln(stdout, renderStatusLine("Scan", statusWarn,
			fmt.Sprintf("%s: no matching order lines", result.TaskCode), colorize))
	case terminal.OutcomeIneligible:
		fmt.Fprintln(stdout, renderStatusLine("Scan", statusError,
			fmt.Sprintf("%s: %d line(s) found but none ready for production", result.TaskCode, result.TotalFound), colorize))
	default:
		fmt.Fprintln(stdout, renderStatusLine("Scan", statusError,
			fmt.Sprintf("%s: rejected", result.TaskCode), colorize))
	}

	if len(result.Lines) > 0 {
		tbl := newLineTable(
			lineColumn{Title: "Line", Numeric: true},
			lineColumn{Title: "Order", Numeric: true},
			lineColumn{Title: "Task Code"},
			lineColumn{Title: "Product"},
			lineColumn{Title: "Qty", Numeric: true},
		)
		for _, entry := range result.Lines {
			tbl.addRow(
				fmt.Sprintf("%d", entry.ID),
				fmt.Sprintf("%d", entry.DisplayOrderNumber()),
				entry.TaskCodeFront,
				entry.ProductName,
				fmt.Sprintf("%d", entry.Quantity),
			)
		}
		fmt.Fprintln(stdout, tbl.render())
	}
	for _, path := range result.Artwork {
		fmt.Fprintf(stdout, "  artwork: %s\n", path)
	}
}
