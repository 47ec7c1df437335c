package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agrocampo/contagemgo/internal/export"
	"github.com/agrocampo/contagemgo/internal/report"
	"github.com/gorilla/mux"
)

// sessionItems lists the counted items of one session, newest first
func (r *Router) sessionItems(w http.ResponseWriter, req *http.Request) {
	sessionID := mux.Vars(req)["id"]

	items, err := r.svc.SessionItems(sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   items,
	})
}

// sessionHistory returns the audit trail of one session
func (r *Router) sessionHistory(w http.ResponseWriter, req *http.Request) {
	sessionID := mux.Vars(req)["id"]
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	history, err := r.svc.SessionHistory(sessionID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch history")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   history,
	})
}

// sessionReport renders one session's report, ordered by product code.
// format=csv|json downloads a file; the default responds inline JSON data.
func (r *Router) sessionReport(w http.ResponseWriter, req *http.Request) {
	sessionID := mux.Vars(req)["id"]

	session, _, err := r.svc.SessionDetail(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	rows, err := r.svc.SessionReportRows(sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	report.SortByCode(rows)

	now := time.Now()
	userName := session.User.Name

	switch req.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=contagem_%s_%s.csv", userName, export.DateStamp(now)))
		if err := export.SessionCSV(w, userName, now, rows); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to write CSV")
		}
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=contagem_%s_%s.json", userName, export.DateStamp(now)))
		if err := export.SessionJSON(w, userName, now, rows); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to write JSON")
		}
	default:
		var totalUnits float64
		for _, row := range rows {
			totalUnits += row.Quantity
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"sucesso": true,
			"dados":   rows,
			"totais": map[string]interface{}{
				"totalItens":    len(rows),
				"totalUnidades": totalUnits,
			},
		})
	}
}

// finishSession marks a session as completed
func (r *Router) finishSession(w http.ResponseWriter, req *http.Request) {
	sessionID := mux.Vars(req)["id"]

	session, err := r.svc.FinishSession(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   session,
	})
}
