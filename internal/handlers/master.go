package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/agrocampo/contagemgo/internal/export"
	"github.com/agrocampo/contagemgo/internal/report"
	"github.com/agrocampo/contagemgo/internal/services/counting"
	"github.com/gorilla/mux"
)

// parseDateRange reads the optional from/to window of a dashboard query
func parseDateRange(req *http.Request) (from, to *time.Time) {
	if v := req.URL.Query().Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = &t
		}
	}
	if v := req.URL.Query().Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			// Inclusive upper bound
			t = t.Add(24*time.Hour - time.Nanosecond)
			to = &t
		}
	}
	return from, to
}

// listSessions returns all sessions for the dashboard, with optional status
// and date filters
func (r *Router) listSessions(w http.ResponseWriter, req *http.Request) {
	from, to := parseDateRange(req)
	sessions, err := r.svc.ListSessions(counting.SessionFilter{
		Status: req.URL.Query().Get("status"),
		From:   from,
		To:     to,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   sessions,
	})
}

// activeSessions returns the sessions currently being counted
func (r *Router) activeSessions(w http.ResponseWriter, req *http.Request) {
	sessions, err := r.svc.ActiveSessions()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch active sessions")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   sessions,
	})
}

// sessionDetail returns one session with its items
func (r *Router) sessionDetail(w http.ResponseWriter, req *http.Request) {
	session, items, err := r.svc.SessionDetail(mux.Vars(req)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   session,
		"itens":   items,
	})
}

// consolidatedReport builds the cross-session report and renders it in the
// requested format: inline JSON by default, or csv/json/xlsx/pdf downloads
func (r *Router) consolidatedReport(w http.ResponseWriter, req *http.Request) {
	from, to := parseDateRange(req)

	rows, err := r.svc.AllItemRows(from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch counted items")
		return
	}
	consolidated := report.Consolidate(rows)
	totals := report.ComputeTotals(consolidated)

	sessions, err := r.svc.ListSessions(counting.SessionFilter{From: from, To: to})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}

	now := time.Now()
	stamp := export.DateStamp(now)

	switch req.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=relatorio_consolidado_%s.csv", stamp))
		if err := export.ConsolidatedCSV(w, now, consolidated, totals, len(sessions)); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to write CSV")
		}
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=relatorio_consolidado_%s.json", stamp))
		if err := export.ConsolidatedJSON(w, now, sessions, consolidated, totals); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to write JSON")
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=inventario_%s.xlsx", stamp))
		if err := export.InventoryXLSX(w, consolidated); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to write XLSX")
		}
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=relatorio_consolidado_%s.pdf", stamp))
		if err := export.ConsolidatedPDF(w, now, consolidated, totals); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to write PDF")
		}
	default:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"sucesso": true,
			"dados":   consolidated,
			"totais":  totals,
		})
	}
}

// categoryReport renders the per-category quantity breakdown
func (r *Router) categoryReport(w http.ResponseWriter, req *http.Request) {
	rows, err := r.svc.AllItemRows(nil, nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch counted items")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   report.ByCategory(rows),
	})
}

// counterAnalysis renders the per-counter performance figures
func (r *Router) counterAnalysis(w http.ResponseWriter, req *http.Request) {
	sessions, err := r.svc.ListSessions(counting.SessionFilter{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}

	summaries := make([]report.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, report.SessionSummary{
			UserName:   s.User.Name,
			StartedAt:  s.StartedAt,
			EndedAt:    s.EndedAt,
			TotalItems: s.TotalItemsCounted,
			TotalUnits: s.TotalUnitsCounted,
		})
	}

	now := time.Now()
	analysis := report.CounterAnalysis(summaries, now)

	if req.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=analise_contadores_%s.csv", export.DateStamp(now)))
		if err := export.CounterAnalysisCSV(w, now, analysis); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to write CSV")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   analysis,
	})
}

// generalStats returns the dashboard header numbers
func (r *Router) generalStats(w http.ResponseWriter, req *http.Request) {
	stats, err := r.svc.Stats()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   stats,
	})
}
