package report

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ItemRow is one counted-item row already joined with its product and the
// owning session's user, as fetched from the store.
type ItemRow struct {
	Code          string    `json:"codigo"`
	Description   string    `json:"descricao"`
	Category      string    `json:"categoria"`
	Unit          string    `json:"unidade"`
	Barcode       string    `json:"codigo_barras"`
	Quantity      float64   `json:"quantidade"`
	RecordCount   int       `json:"numero_registros"`
	LastUpdatedAt time.Time `json:"ultima_atualizacao"`
	UserName      string    `json:"atualizado_por"`
}

// ConsolidatedRow is one row of the cross-session report: all counts of the
// same product code folded together, with the distinct set of contributors.
type ConsolidatedRow struct {
	Code          string    `json:"codigo"`
	Description   string    `json:"descricao"`
	Category      string    `json:"categoria"`
	Unit          string    `json:"unidade"`
	Barcode       string    `json:"codigo_barras"`
	Quantity      float64   `json:"quantidade_total"`
	RecordCount   int       `json:"numero_registros"`
	Contributors  []string  `json:"contadores"`
	LastUpdatedAt time.Time `json:"ultima_atualizacao"`
}

// Totals are the summary numbers shown above a consolidated report
type Totals struct {
	DistinctItems        int     `json:"totalItensUnicos"`
	TotalUnits           float64 `json:"totalUnidades"`
	TotalRecords         int     `json:"totalRegistros"`
	DistinctContributors int     `json:"totalContadores"`
}

// newCollator builds the pt-BR collator used for report ordering. Codes mix
// cases and accents, and report consumers expect natural reading order, not
// byte order.
func newCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese)
}

// Consolidate folds the rows into one ConsolidatedRow per distinct product
// code. Quantities and record counts are summed, contributor sets are
// unioned and the result is ordered by ascending code. Pure function.
func Consolidate(rows []ItemRow) []ConsolidatedRow {
	type accum struct {
		row          ConsolidatedRow
		contributors map[string]bool
	}

	byCode := make(map[string]*accum)
	for _, row := range rows {
		entry, ok := byCode[row.Code]
		if !ok {
			entry = &accum{
				row: ConsolidatedRow{
					Code:          row.Code,
					Description:   row.Description,
					Category:      row.Category,
					Unit:          row.Unit,
					Barcode:       row.Barcode,
					LastUpdatedAt: row.LastUpdatedAt,
				},
				contributors: make(map[string]bool),
			}
			byCode[row.Code] = entry
		}

		entry.row.Quantity += row.Quantity
		entry.row.RecordCount += row.RecordCount
		entry.contributors[row.UserName] = true
		if row.LastUpdatedAt.After(entry.row.LastUpdatedAt) {
			entry.row.LastUpdatedAt = row.LastUpdatedAt
		}
	}

	col := newCollator()

	result := make([]ConsolidatedRow, 0, len(byCode))
	for _, entry := range byCode {
		names := make([]string, 0, len(entry.contributors))
		for name := range entry.contributors {
			names = append(names, name)
		}
		col.SortStrings(names)
		entry.row.Contributors = names
		result = append(result, entry.row)
	}

	sort.Slice(result, func(i, j int) bool {
		return col.CompareString(result[i].Code, result[j].Code) < 0
	})

	return result
}

// SortByCode orders rows in place by ascending product code, with the same
// collation the consolidated report uses
func SortByCode(rows []ItemRow) {
	col := newCollator()
	sort.Slice(rows, func(i, j int) bool {
		return col.CompareString(rows[i].Code, rows[j].Code) < 0
	})
}

// ComputeTotals derives the summary numbers from a consolidated report
func ComputeTotals(rows []ConsolidatedRow) Totals {
	totals := Totals{DistinctItems: len(rows)}
	contributors := make(map[string]bool)

	for _, row := range rows {
		totals.TotalUnits += row.Quantity
		totals.TotalRecords += row.RecordCount
		for _, name := range row.Contributors {
			contributors[name] = true
		}
	}
	totals.DistinctContributors = len(contributors)

	return totals
}
