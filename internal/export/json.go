package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/agrocampo/contagemgo/internal/models"
	"github.com/agrocampo/contagemgo/internal/report"
)

// SessionMeta heads a per-session JSON export
type SessionMeta struct {
	User       string  `json:"usuario"`
	Date       string  `json:"data"`
	Time       string  `json:"hora"`
	DateISO    string  `json:"dataISO"`
	TotalItems int     `json:"totalItens"`
	TotalUnits float64 `json:"totalUnidades"`
}

// SessionJSON writes one session's report as {meta, dados}
func SessionJSON(w io.Writer, userName string, generatedAt time.Time, rows []report.ItemRow) error {
	var totalUnits float64
	for _, r := range rows {
		totalUnits += r.Quantity
	}

	payload := struct {
		Meta SessionMeta      `json:"meta"`
		Data []report.ItemRow `json:"dados"`
	}{
		Meta: SessionMeta{
			User:       userName,
			Date:       DateBR(generatedAt),
			Time:       TimeBR(generatedAt),
			DateISO:    generatedAt.UTC().Format(time.RFC3339),
			TotalItems: len(rows),
			TotalUnits: totalUnits,
		},
		Data: rows,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// ConsolidatedMeta heads the consolidated JSON export
type ConsolidatedMeta struct {
	ReportType           string  `json:"tipoRelatorio"`
	Date                 string  `json:"data"`
	Time                 string  `json:"hora"`
	DateISO              string  `json:"dataISO"`
	DistinctItems        int     `json:"totalItensUnicos"`
	TotalUnits           float64 `json:"totalUnidades"`
	TotalRecords         int     `json:"totalRegistros"`
	DistinctContributors int     `json:"totalContadores"`
	TotalSessions        int     `json:"totalSessoes"`
	ActiveSessions       int     `json:"sessoesAtivas"`
	CompletedSessions    int     `json:"sessoesConcluidas"`
}

// SessionRef is the per-session block of the consolidated JSON export
type SessionRef struct {
	ID         string  `json:"id"`
	User       string  `json:"usuario"`
	StartedAt  string  `json:"dataInicio"`
	EndedAt    *string `json:"dataFim"`
	Status     string  `json:"status"`
	TotalItems int     `json:"totalItens"`
	TotalUnits float64 `json:"totalUnidades"`
}

// ConsolidatedJSON writes the cross-session report with its sessions and
// consolidated items
func ConsolidatedJSON(w io.Writer, generatedAt time.Time, sessions []models.CountingSession, rows []report.ConsolidatedRow, totals report.Totals) error {
	meta := ConsolidatedMeta{
		ReportType:           "CONSOLIDADO",
		Date:                 DateBR(generatedAt),
		Time:                 TimeBR(generatedAt),
		DateISO:              generatedAt.UTC().Format(time.RFC3339),
		DistinctItems:        totals.DistinctItems,
		TotalUnits:           totals.TotalUnits,
		TotalRecords:         totals.TotalRecords,
		DistinctContributors: totals.DistinctContributors,
		TotalSessions:        len(sessions),
	}

	refs := make([]SessionRef, 0, len(sessions))
	for _, s := range sessions {
		ref := SessionRef{
			ID:         s.ID,
			User:       s.User.Name,
			StartedAt:  s.StartedAt.UTC().Format(time.RFC3339),
			Status:     s.Status,
			TotalItems: s.TotalItemsCounted,
			TotalUnits: s.TotalUnitsCounted,
		}
		if s.EndedAt != nil {
			ended := s.EndedAt.UTC().Format(time.RFC3339)
			ref.EndedAt = &ended
		}
		if s.Status == models.SessionActive {
			meta.ActiveSessions++
		} else {
			meta.CompletedSessions++
		}
		refs = append(refs, ref)
	}

	payload := struct {
		Meta     ConsolidatedMeta         `json:"meta"`
		Sessions []SessionRef             `json:"sessoes"`
		Items    []report.ConsolidatedRow `json:"items"`
	}{Meta: meta, Sessions: refs, Items: rows}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
