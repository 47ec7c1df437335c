package report

import (
	"sort"
	"time"
)

// CategoryTotal is one slice of the per-category breakdown
type CategoryTotal struct {
	Category   string  `json:"categoria"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentual"`
}

// ByCategory groups the summed quantity per product category, with each
// category's share of the grand total, ordered by quantity descending.
func ByCategory(rows []ItemRow) []CategoryTotal {
	totals := make(map[string]float64)
	var grandTotal float64

	for _, row := range rows {
		totals[row.Category] += row.Quantity
		grandTotal += row.Quantity
	}

	result := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		entry := CategoryTotal{Category: category, Total: total}
		if grandTotal > 0 {
			entry.Percentage = total / grandTotal * 100
		}
		result = append(result, entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Category < result[j].Category
	})

	return result
}

// SessionSummary is the per-session input for the counter analysis
type SessionSummary struct {
	UserName   string
	StartedAt  time.Time
	EndedAt    *time.Time
	TotalItems int
	TotalUnits float64
}

// CounterStats aggregates one counter's performance across all their sessions
type CounterStats struct {
	Name            string  `json:"nome"`
	Sessions        int     `json:"totalSessoes"`
	TotalItems      int     `json:"totalItens"`
	TotalUnits      float64 `json:"totalUnidades"`
	TotalMinutes    float64 `json:"tempoTotal"`
	ItemsPerSession float64 `json:"mediaItensPorSessao"`
	UnitsPerSession float64 `json:"mediaUnidadesPorSessao"`
	ItemsPerMinute  float64 `json:"velocidadeItensMinuto"`
	UnitsPerMinute  float64 `json:"velocidadeUnidadesMinuto"`
}

// CounterAnalysis folds session summaries into per-counter performance
// figures, ordered by total units descending. Open sessions count their
// elapsed time up to now.
func CounterAnalysis(sessions []SessionSummary, now time.Time) []CounterStats {
	byName := make(map[string]*CounterStats)

	for _, s := range sessions {
		end := now
		if s.EndedAt != nil {
			end = *s.EndedAt
		}
		minutes := end.Sub(s.StartedAt).Minutes()

		stats, ok := byName[s.UserName]
		if !ok {
			stats = &CounterStats{Name: s.UserName}
			byName[s.UserName] = stats
		}
		stats.Sessions++
		stats.TotalItems += s.TotalItems
		stats.TotalUnits += s.TotalUnits
		stats.TotalMinutes += minutes
	}

	result := make([]CounterStats, 0, len(byName))
	for _, stats := range byName {
		stats.ItemsPerSession = float64(stats.TotalItems) / float64(stats.Sessions)
		stats.UnitsPerSession = stats.TotalUnits / float64(stats.Sessions)
		if stats.TotalMinutes > 0 {
			stats.ItemsPerMinute = float64(stats.TotalItems) / stats.TotalMinutes
			stats.UnitsPerMinute = stats.TotalUnits / stats.TotalMinutes
		}
		result = append(result, *stats)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalUnits != result[j].TotalUnits {
			return result[i].TotalUnits > result[j].TotalUnits
		}
		return result[i].Name < result[j].Name
	})

	return result
}
