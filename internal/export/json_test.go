package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/agrocampo/contagemgo/internal/models"
	"github.com/agrocampo/contagemgo/internal/report"
)

func TestSessionJSON(t *testing.T) {
	rows := []report.ItemRow{
		{Code: "A", Description: "Produto A", Quantity: 3.5, RecordCount: 2},
		{Code: "B", Description: "Produto B", Quantity: 1, RecordCount: 1},
	}

	var b bytes.Buffer
	generatedAt := time.Date(2026, 3, 15, 14, 30, 45, 0, time.UTC)
	if err := SessionJSON(&b, "João", generatedAt, rows); err != nil {
		t.Fatalf("SessionJSON: %v", err)
	}

	var payload struct {
		Meta SessionMeta       `json:"meta"`
		Data []json.RawMessage `json:"dados"`
	}
	if err := json.Unmarshal(b.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if payload.Meta.User != "João" {
		t.Errorf("meta.usuario = %q", payload.Meta.User)
	}
	if payload.Meta.TotalItems != 2 {
		t.Errorf("meta.totalItens = %d, want 2", payload.Meta.TotalItems)
	}
	if payload.Meta.TotalUnits != 4.5 {
		t.Errorf("meta.totalUnidades = %v, want 4.5", payload.Meta.TotalUnits)
	}
	if payload.Meta.DateISO != "2026-03-15T14:30:45Z" {
		t.Errorf("meta.dataISO = %q", payload.Meta.DateISO)
	}
	if len(payload.Data) != 2 {
		t.Errorf("dados has %d rows, want 2", len(payload.Data))
	}
}

func TestConsolidatedJSON(t *testing.T) {
	ended := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	sessions := []models.CountingSession{
		{ID: "s1", Status: models.SessionActive, User: models.User{Name: "Maria"}, TotalItemsCounted: 3, TotalUnitsCounted: 9},
		{ID: "s2", Status: models.SessionCompleted, EndedAt: &ended, User: models.User{Name: "João"}},
	}
	rows := report.Consolidate([]report.ItemRow{
		{Code: "A", Quantity: 9, RecordCount: 3, UserName: "Maria"},
	})

	var b bytes.Buffer
	if err := ConsolidatedJSON(&b, ended, sessions, rows, report.ComputeTotals(rows)); err != nil {
		t.Fatalf("ConsolidatedJSON: %v", err)
	}

	var payload struct {
		Meta     ConsolidatedMeta  `json:"meta"`
		Sessions []SessionRef      `json:"sessoes"`
		Items    []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(b.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if payload.Meta.ReportType != "CONSOLIDADO" {
		t.Errorf("meta.tipoRelatorio = %q", payload.Meta.ReportType)
	}
	if payload.Meta.TotalSessions != 2 || payload.Meta.ActiveSessions != 1 || payload.Meta.CompletedSessions != 1 {
		t.Errorf("session counts = %+v", payload.Meta)
	}
	if payload.Sessions[0].EndedAt != nil {
		t.Error("active session should have null dataFim")
	}
	if payload.Sessions[1].EndedAt == nil {
		t.Error("completed session should carry dataFim")
	}
	if len(payload.Items) != 1 {
		t.Errorf("items has %d rows, want 1", len(payload.Items))
	}
}
