package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tagsight/internal/ipc"
	"tagsight/internal/ledger"
	"tagsight/internal/orders"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and edit the scan ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerList(ctx, cmd)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List scanned lines, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerList(ctx, cmd)
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <line-id>",
		Short: "Remove one line from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lineID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid line id %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.LedgerRemove(lineID)
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if resp != nil && resp.Removed {
					fmt.Fprintf(stdout, "Removed line %d\n", lineID)
				} else {
					fmt.Fprintf(stdout, "Line %d is not on the ledger\n", lineID)
				}
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every line from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.LedgerClear()
				if err != nil {
					return err
				}
				if resp == nil {
					return errors.New("missing clear response")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d line(s)\n", resp.Removed)
				return nil
			})
		},
	}

	ledgerCmd.AddCommand(listCmd)
	ledgerCmd.AddCommand(removeCmd)
	ledgerCmd.AddCommand(clearCmd)
	return ledgerCmd
}

func runLedgerList(ctx *commandContext, cmd *cobra.Command) error {
	return ctx.withClient(func(client *ipc.Client) error {
		resp, err := client.LedgerList()
		if err != nil {
			return err
		}
		stdout := cmd.OutOrStdout()
		if resp == nil || len(resp.Entries) == 0 {
			fmt.Fprintln(stdout, "Ledger is empty")
			return nil
		}

		fmt.Fprintln(stdout, ledgerTable(resp.Entries).render())

		lines := make([]orders.OrderLine, 0, len(resp.Entries))
		for _, entry := range resp.Entries {
			lines = append(lines, entry.OrderLine)
		}
		fmt.Fprintf(stdout, "%d line(s) across %d order(s)\n", len(lines), len(orders.GroupByOrder(lines)))
		return nil
	})
}

func ledgerTable(entries []ledger.Entry) *lineTable {
	tbl := newLineTable(
		lineColumn{Title: "Line", Numeric: true},
		lineColumn{Title: "Order", Numeric: true},
		lineColumn{Title: "Task Code"},
		lineColumn{Title: "Product"},
		lineColumn{Title: "Customer"},
		lineColumn{Title: "Qty", Numeric: true},
		lineColumn{Title: "Price", Numeric: true},
		lineColumn{Title: "Scanned"},
	)
	prices := message.NewPrinter(language.English)
	for _, entry := range entries {
		tbl.addRow(
			fmt.Sprintf("%d", entry.ID),
			fmt.Sprintf("%d", entry.DisplayOrderNumber()),
			entry.TaskCodeFront,
			entry.ProductName,
			entry.CustomerName,
			fmt.Sprintf("%d", entry.Quantity),
			prices.Sprintf("%.2f", entry.Price),
			entry.ScannedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tbl
}
