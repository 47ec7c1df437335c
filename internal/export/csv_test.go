package export

import (
	"strings"
	"testing"
	"time"

	"github.com/agrocampo/contagemgo/internal/report"
)

var exportTime = time.Date(2026, 3, 15, 14, 30, 45, 0, time.UTC)

func TestSessionCSV(t *testing.T) {
	rows := []report.ItemRow{
		{Code: "ADUBO001", Description: "Adubo NPK; granulado", Quantity: 2.5, Unit: "UN", Category: "Fertilizantes", RecordCount: 2},
		{Code: "SEMENTE002", Description: "Sementes de Milho", Quantity: 10, Unit: "UN", Category: "Sementes", RecordCount: 1},
	}

	var b strings.Builder
	if err := SessionCSV(&b, "Maria", exportTime, rows); err != nil {
		t.Fatalf("SessionCSV: %v", err)
	}
	out := b.String()
	lines := strings.Split(out, "\n")

	if lines[0] != "RELATÓRIO DE CONTAGEM DE ESTOQUE" {
		t.Errorf("title line = %q", lines[0])
	}
	if lines[2] != "Usuário:;Maria" {
		t.Errorf("user line = %q", lines[2])
	}
	if lines[3] != "Data:;15/03/2026" {
		t.Errorf("date line = %q", lines[3])
	}
	if lines[6] != "Total de Unidades:;12,50" {
		t.Errorf("totals line = %q", lines[6])
	}

	// Decimal comma and quoted description with embedded delimiter
	if !strings.Contains(out, `ADUBO001;"Adubo NPK; granulado";2,5;UN;Fertilizantes;2`) {
		t.Errorf("missing data row in:\n%s", out)
	}
}

func TestConsolidatedCSV(t *testing.T) {
	rows := []report.ConsolidatedRow{
		{Code: "A", Description: "Produto A", Category: "Cat", Quantity: 5, Unit: "UN", RecordCount: 3, Contributors: []string{"X", "Y"}},
	}
	totals := report.ComputeTotals(rows)

	var b strings.Builder
	if err := ConsolidatedCSV(&b, exportTime, rows, totals, 4); err != nil {
		t.Fatalf("ConsolidatedCSV: %v", err)
	}
	out := b.String()

	if !strings.HasPrefix(out, "RELATÓRIO CONSOLIDADO DE CONTAGEM - 15/03/2026") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "Total de Sessões:;4") {
		t.Errorf("missing session total:\n%s", out)
	}
	if !strings.Contains(out, `A;"Produto A";Cat;5;UN;3;"X, Y"`) {
		t.Errorf("missing data row:\n%s", out)
	}
	if !strings.Contains(out, "TOTAL;;;5,00;;3;2") {
		t.Errorf("missing footer row:\n%s", out)
	}
}

func TestCounterAnalysisCSV(t *testing.T) {
	analysis := []report.CounterStats{
		{Name: "Maria", Sessions: 2, TotalItems: 60, TotalUnits: 150, TotalMinutes: 90, ItemsPerSession: 30, UnitsPerSession: 75, ItemsPerMinute: 0.667, UnitsPerMinute: 1.667},
	}

	var b strings.Builder
	if err := CounterAnalysisCSV(&b, exportTime, analysis); err != nil {
		t.Fatalf("CounterAnalysisCSV: %v", err)
	}
	out := b.String()

	if !strings.Contains(out, "Maria;2;60;150,00;90,0;30,0;75,0;0,67;1,67") {
		t.Errorf("missing analysis row:\n%s", out)
	}
}

func TestDecimalFormatting(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{5, "5"},
		{2.5, "2,5"},
		{0.125, "0,125"},
	}
	for _, tc := range cases {
		if got := Decimal(tc.v); got != tc.want {
			t.Errorf("Decimal(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}

	if got := Decimal1(90); got != "90,0" {
		t.Errorf("Decimal1(90) = %q", got)
	}
	if got := Decimal1(0.667); got != "0,7" {
		t.Errorf("Decimal1(0.667) = %q", got)
	}
	if got := Decimal2(10); got != "10,00" {
		t.Errorf("Decimal2(10) = %q", got)
	}
}

func TestCSVRoundTripWithQuotedFields(t *testing.T) {
	// The export quoting must be readable by the import parser convention
	if quote(`FECHO 3" REF:839`) != `"FECHO 3"" REF:839"` {
		t.Errorf("quote doubled-quote encoding broken: %q", quote(`FECHO 3" REF:839`))
	}
}
