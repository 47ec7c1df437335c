package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agrocampo/contagemgo/internal/services/counting"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{counting.ErrNotFound, http.StatusNotFound},
		{counting.ErrUnauthorized, http.StatusForbidden},
		{counting.ErrNegativeQuantity, http.StatusBadRequest},
		{counting.ErrSessionClosed, http.StatusBadRequest},
		{errors.New("falha de conexão"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		respondServiceError(rec, tt.err)

		if rec.Code != tt.status {
			t.Errorf("error %q: status = %d, want %d", tt.err, rec.Code, tt.status)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("error %q: Content-Type = %q, want application/json", tt.err, ct)
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("error %q: invalid JSON body: %v", tt.err, err)
		}
		if body["error"] != tt.err.Error() {
			t.Errorf("error %q: body error = %q", tt.err, body["error"])
		}
	}
}

func TestLoginRejectsBlankName(t *testing.T) {
	// Name validation happens before the store is touched
	r := &Router{svc: counting.NewService(nil)}

	for _, body := range []string{`{"nome":""}`, `{"nome":"   "}`, `{}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
		r.login(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want %d", body, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/master/report?from=2026-03-01&to=2026-03-15", nil)
	from, to := parseDateRange(req)

	if from == nil || !from.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v, want 2026-03-01 00:00:00", from)
	}
	if to == nil {
		t.Fatal("to = nil, want end of 2026-03-15")
	}
	// The upper bound covers the whole last day
	if to.Before(time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("to = %v, does not cover the end of the day", to)
	}
	if !to.Before(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("to = %v, crosses into the next day", to)
	}
}

func TestParseDateRangeAbsentOrInvalid(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/master/report", nil)
	if from, to := parseDateRange(req); from != nil || to != nil {
		t.Errorf("absent params: got from=%v to=%v, want nil/nil", from, to)
	}

	req = httptest.NewRequest("GET", "/api/master/report?from=15/03/2026", nil)
	if from, _ := parseDateRange(req); from != nil {
		t.Errorf("invalid date format accepted: %v", from)
	}
}
