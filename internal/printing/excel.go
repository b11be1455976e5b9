package printing

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"tagsight/internal/logging"
	"tagsight/internal/orders"
)

// exportSheet is the worksheet the print template reads rows from.
const exportSheet = "BarTender Data"

// exportHeader is the fixed column layout the template expects: the
// barcode, the customer name, and the label count.
var exportHeader = []string{"BARCODE", "TENKH", "SL IN"}

// exportToWorkbook appends one row to the print workbook, creating it
// with the header on first use, then optionally hands the workbook to the
// configured print command.
func (i *Integration) exportToWorkbook(ctx context.Context, barcode string, line orders.OrderLine) (bool, error) {
	workbookPath := strings.TrimSpace(i.cfg.WorkbookPath)
	if workbookPath == "" {
		return false, fmt.Errorf("workbook path not configured")
	}
	if !strings.HasSuffix(workbookPath, ".xlsx") {
		workbookPath += ".xlsx"
	}
	if err := os.MkdirAll(filepath.Dir(workbookPath), 0o755); err != nil {
		return false, fmt.Errorf("create workbook directory: %w", err)
	}

	book, err := openWorkbook(workbookPath)
	if err != nil {
		return false, err
	}
	defer book.Close()

	rows, err := book.GetRows(exportSheet)
	if err != nil {
		return false, fmt.Errorf("read workbook rows: %w", err)
	}
	rowIdx := len(rows) + 1

	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return false, fmt.Errorf("compute row cell: %w", err)
	}
	row := []any{barcode, line.CustomerName, i.quantity()}
	if err := book.SetSheetRow(exportSheet, cell, &row); err != nil {
		return false, fmt.Errorf("append workbook row: %w", err)
	}
	if err := book.SaveAs(workbookPath); err != nil {
		return false, fmt.Errorf("save workbook: %w", err)
	}

	if i.cfg.AutoPrint && i.cfg.PrintCommand != "" {
		i.runPrintCommand(ctx, workbookPath)
	}
	return true, nil
}

// openWorkbook opens the export workbook, creating sheet and header when
// the file does not exist or cannot be read.
func openWorkbook(path string) (*excelize.File, error) {
	if _, statErr := os.Stat(path); statErr == nil {
		if book, err := excelize.OpenFile(path); err == nil {
			if idx, err := book.GetSheetIndex(exportSheet); err == nil && idx >= 0 {
				return book, nil
			}
			_ = book.Close()
		}
		// Unreadable workbook: start a fresh one.
	}

	book := excelize.NewFile()
	index, err := book.NewSheet(exportSheet)
	if err != nil {
		_ = book.Close()
		return nil, fmt.Errorf("create export sheet: %w", err)
	}
	book.SetActiveSheet(index)
	_ = book.DeleteSheet("Sheet1")

	header := make([]any, len(exportHeader))
	for i, name := range exportHeader {
		header[i] = name
	}
	if err := book.SetSheetRow(exportSheet, "A1", &header); err != nil {
		_ = book.Close()
		return nil, fmt.Errorf("write workbook header: %w", err)
	}
	return book, nil
}

// runPrintCommand invokes the configured external print command with the
// workbook as its argument. Failures are logged; the export already
// succeeded.
func (i *Integration) runPrintCommand(ctx context.Context, workbookPath string) {
	cmd := exec.CommandContext(ctx, i.cfg.PrintCommand, workbookPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		i.logger.WarnContext(ctx, "print command failed",
			logging.String("command", i.cfg.PrintCommand),
			logging.String("output", strings.TrimSpace(string(output))),
			logging.Error(err))
		return
	}
	i.logger.InfoContext(ctx, "print command completed",
		logging.String("command", i.cfg.PrintCommand))
}
