package export

import (
	"fmt"
	"io"

	"github.com/agrocampo/contagemgo/internal/report"
	"github.com/xuri/excelize/v2"
)

const inventorySheet = "Inventário"

// InventoryXLSX writes the consolidated inventory as a single-sheet
// spreadsheet: internal code, EAN, description and quantity, with fixed
// column widths
func InventoryXLSX(w io.Writer, rows []report.ConsolidatedRow) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(inventorySheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	headers := []interface{}{"CÓDIGO INTERNO", "CÓDIGO EAN", "DESCRIÇÃO", "QUANTIDADE"}
	if err := f.SetSheetRow(inventorySheet, "A1", &headers); err != nil {
		return err
	}

	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{r.Code, r.Barcode, r.Description, r.Quantity}
		if err := f.SetSheetRow(inventorySheet, cell, &values); err != nil {
			return err
		}
	}

	for col, width := range map[string]float64{"A": 15, "B": 18, "C": 50, "D": 15} {
		if err := f.SetColWidth(inventorySheet, col, col, width); err != nil {
			return err
		}
	}

	return f.Write(w)
}
