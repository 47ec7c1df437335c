package export

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agrocampo/contagemgo/internal/report"
)

// quote wraps a free-text field in double quotes, doubling embedded quotes,
// so descriptions with semicolons survive the semicolon-delimited format
func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func writeLines(w io.Writer, lines [][]string) error {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(line, ";"))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// SessionCSV writes one session's report: a metadata preamble (user, date,
// time, totals) followed by the item rows
func SessionCSV(w io.Writer, userName string, generatedAt time.Time, rows []report.ItemRow) error {
	var totalUnits float64
	for _, r := range rows {
		totalUnits += r.Quantity
	}

	lines := [][]string{
		{"RELATÓRIO DE CONTAGEM DE ESTOQUE"},
		{},
		{"Usuário:", userName},
		{"Data:", DateBR(generatedAt)},
		{"Hora:", TimeBR(generatedAt)},
		{"Total de Itens:", strconv.Itoa(len(rows))},
		{"Total de Unidades:", Decimal2(totalUnits)},
		{},
		{"CÓDIGO", "DESCRIÇÃO", "QUANTIDADE", "UNIDADE", "CATEGORIA", "NÚM. REGISTROS"},
	}
	for _, r := range rows {
		lines = append(lines, []string{
			r.Code,
			quote(r.Description),
			Decimal(r.Quantity),
			r.Unit,
			r.Category,
			strconv.Itoa(r.RecordCount),
		})
	}

	return writeLines(w, lines)
}

// ConsolidatedCSV writes the cross-session report with its totals preamble
// and a TOTAL footer row
func ConsolidatedCSV(w io.Writer, generatedAt time.Time, rows []report.ConsolidatedRow, totals report.Totals, totalSessions int) error {
	lines := [][]string{
		{"RELATÓRIO CONSOLIDADO DE CONTAGEM - " + DateBR(generatedAt)},
		{},
		{"Data/Hora de Geração:", DateBR(generatedAt) + " " + TimeBR(generatedAt)},
		{"Total de Itens Únicos:", strconv.Itoa(totals.DistinctItems)},
		{"Total de Unidades Contadas:", Decimal2(totals.TotalUnits)},
		{"Total de Registros:", strconv.Itoa(totals.TotalRecords)},
		{"Total de Contadores:", strconv.Itoa(totals.DistinctContributors)},
		{"Total de Sessões:", strconv.Itoa(totalSessions)},
		{},
		{"CÓDIGO", "DESCRIÇÃO", "CATEGORIA", "QUANTIDADE", "UNIDADE", "NÚM. REGISTROS", "CONTADORES"},
	}
	for _, r := range rows {
		lines = append(lines, []string{
			r.Code,
			quote(r.Description),
			r.Category,
			Decimal(r.Quantity),
			r.Unit,
			strconv.Itoa(r.RecordCount),
			quote(strings.Join(r.Contributors, ", ")),
		})
	}
	lines = append(lines,
		[]string{},
		[]string{"TOTAL", "", "", Decimal2(totals.TotalUnits), "", strconv.Itoa(totals.TotalRecords), strconv.Itoa(totals.DistinctContributors)},
	)

	return writeLines(w, lines)
}

// CounterAnalysisCSV writes the per-counter performance report
func CounterAnalysisCSV(w io.Writer, generatedAt time.Time, analysis []report.CounterStats) error {
	lines := [][]string{
		{"ANÁLISE DE PERFORMANCE DOS CONTADORES"},
		{},
		{"Data:", DateBR(generatedAt)},
		{"Hora:", TimeBR(generatedAt)},
		{},
		{"CONTADOR", "TOTAL SESSÕES", "TOTAL ITENS", "TOTAL UNIDADES", "TEMPO TOTAL (min)",
			"MÉDIA ITENS/SESSÃO", "MÉDIA UNIDADES/SESSÃO", "ITENS/MIN", "UNIDADES/MIN"},
	}
	for _, c := range analysis {
		lines = append(lines, []string{
			c.Name,
			strconv.Itoa(c.Sessions),
			strconv.Itoa(c.TotalItems),
			Decimal2(c.TotalUnits),
			Decimal1(c.TotalMinutes),
			Decimal1(c.ItemsPerSession),
			Decimal1(c.UnitsPerSession),
			Decimal2(c.ItemsPerMinute),
			Decimal2(c.UnitsPerMinute),
		})
	}

	return writeLines(w, lines)
}
