package printer

import (
	"bytes"
	"fmt"

	"github.com/agrocampo/contagemgo/internal/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// LabelConfig holds the layout for a shelf-label sheet
type LabelConfig struct {
	Count      int     `json:"count"` // how many copies
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
}

// DefaultLabelConfig is a 3x8 sheet on A4
func DefaultLabelConfig() LabelConfig {
	return LabelConfig{Count: 1, Cols: 3, Rows: 8, MarginTop: 10, MarginLeft: 7, GapX: 2.5, GapY: 0}
}

// GenerateProductLabels creates a PDF sheet of shelf labels for one product:
// a QR code of its scan code plus the internal code and description.
func GenerateProductLabels(product models.Product, cfg LabelConfig) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)

	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY

	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)

	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	// Scanners read the barcode when one exists, the internal code otherwise
	scanCode := product.Code
	if product.Barcode != nil && *product.Barcode != "" {
		scanCode = *product.Barcode
	}

	qrPng, err := qrcode.Encode(scanCode, qrcode.Low, 256)
	if err != nil {
		return nil, err
	}

	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	_ = pdf.RegisterImageOptionsReader("qr", imgOptions, bytes.NewReader(qrPng))

	description := product.Description
	if runes := []rune(description); len(runes) > 30 {
		description = string(runes[:30])
	}

	labelsPerPage := cfg.Cols * cfg.Rows
	for i := 0; i < cfg.Count; i++ {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		// QR centered, 60% of label height, shifted up for the text lines
		qrSize := labelH * 0.6
		if qrSize > labelW {
			qrSize = labelW * 0.9
		}
		qrX := x + (labelW-qrSize)/2
		qrY := y + (labelH-qrSize)/2 - 3

		pdf.ImageOptions("qr", qrX, qrY, qrSize, qrSize, false, imgOptions, 0, "")

		pdf.SetXY(x, y+labelH-9)
		pdf.SetFontSize(8)
		pdf.CellFormat(labelW, 4, product.Code, "", 0, "C", false, 0, "")

		pdf.SetXY(x, y+labelH-5)
		pdf.SetFontSize(6)
		pdf.CellFormat(labelW, 3, tr(description), "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render labels: %w", err)
	}
	return buf.Bytes(), nil
}
