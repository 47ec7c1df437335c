package export

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agrocampo/contagemgo/internal/report"
	"github.com/jung-kurt/gofpdf"
)

// ConsolidatedPDF writes the cross-session report as a printable A4 table
func ConsolidatedPDF(w io.Writer, generatedAt time.Time, rows []report.ConsolidatedRow, totals report.Totals) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr("RELATÓRIO CONSOLIDADO DE CONTAGEM"), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, tr("Gerado em "+DateBR(generatedAt)+" "+TimeBR(generatedAt)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr(
		"Itens únicos: "+strconv.Itoa(totals.DistinctItems)+
			"   Unidades: "+Decimal2(totals.TotalUnits)+
			"   Contadores: "+strconv.Itoa(totals.DistinctContributors)), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	widths := []float64{28, 78, 30, 20, 34}
	headers := []string{"CÓDIGO", "DESCRIÇÃO", "CATEGORIA", "QTD", "CONTADORES"}

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 6, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}

	writeHeader()
	for _, r := range rows {
		// Repeat the header after each page break
		if pdf.GetY() > 278 {
			pdf.AddPage()
			writeHeader()
		}

		description := r.Description
		if runes := []rune(description); len(runes) > 52 {
			description = string(runes[:52])
		}
		pdf.CellFormat(widths[0], 5, tr(r.Code), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 5, tr(description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 5, tr(r.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 5, Decimal(r.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 5, tr(strings.Join(r.Contributors, ", ")), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 6, Decimal2(totals.TotalUnits), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 6, "", "1", 0, "L", false, 0, "")
	pdf.Ln(-1)

	return pdf.Output(w)
}
