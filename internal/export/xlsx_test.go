package export

import (
	"bytes"
	"testing"

	"github.com/agrocampo/contagemgo/internal/report"
	"github.com/xuri/excelize/v2"
)

func TestInventoryXLSX(t *testing.T) {
	rows := []report.ConsolidatedRow{
		{Code: "ADUBO001", Barcode: "7891000100101", Description: "Adubo NPK", Quantity: 12.5},
		{Code: "SEMENTE002", Barcode: "", Description: "Sementes de Milho", Quantity: 3},
	}

	var b bytes.Buffer
	if err := InventoryXLSX(&b, rows); err != nil {
		t.Fatalf("InventoryXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&b)
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Inventário" {
		t.Fatalf("sheets = %v, want only Inventário", sheets)
	}

	cells, err := f.GetRows("Inventário")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(cells))
	}

	wantHeader := []string{"CÓDIGO INTERNO", "CÓDIGO EAN", "DESCRIÇÃO", "QUANTIDADE"}
	for i, h := range wantHeader {
		if cells[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, cells[0][i], h)
		}
	}

	if cells[1][0] != "ADUBO001" || cells[1][3] != "12.5" {
		t.Errorf("first data row = %v", cells[1])
	}

	width, err := f.GetColWidth("Inventário", "C")
	if err != nil {
		t.Fatalf("GetColWidth: %v", err)
	}
	if width != 50 {
		t.Errorf("description column width = %v, want 50", width)
	}
}
