package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agrocampo/contagemgo/internal/buildinfo"
	"github.com/agrocampo/contagemgo/internal/config"
	"github.com/agrocampo/contagemgo/internal/database"
	"github.com/agrocampo/contagemgo/internal/middleware"
	"github.com/agrocampo/contagemgo/internal/services/counting"
	"github.com/gorilla/mux"
)

// Router wraps the mux router with the database and the counting service
type Router struct {
	*mux.Router
	db  *database.DB
	cfg *config.Config
	svc *counting.Service
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    cfg,
		svc:    counting.NewService(db.DB),
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/master", r.masterLogin).Methods("POST")

	// Catalog routes
	api.HandleFunc("/products", r.searchProducts).Methods("GET")
	api.HandleFunc("/products/barcode/{code}", r.lookupBarcode).Methods("GET")
	api.HandleFunc("/products/{id}/barcode", r.linkBarcode).Methods("POST")
	api.HandleFunc("/products/{id}/labels", r.productLabels).Methods("GET")

	// Counting operations
	api.HandleFunc("/counting/add", r.addQuantity).Methods("POST")
	api.HandleFunc("/counting/correct", r.correctQuantity).Methods("POST")
	api.HandleFunc("/counting/remove", r.removeItem).Methods("POST")

	// Session routes (counter side)
	api.HandleFunc("/sessions/{id}/items", r.sessionItems).Methods("GET")
	api.HandleFunc("/sessions/{id}/history", r.sessionHistory).Methods("GET")
	api.HandleFunc("/sessions/{id}/report", r.sessionReport).Methods("GET")
	api.HandleFunc("/sessions/{id}/finish", r.finishSession).Methods("POST")

	// Master dashboard routes (JWT protected)
	master := r.PathPrefix("/api/master").Subrouter()
	master.Use(middleware.MasterAuth(cfg.JWTSecret))
	master.HandleFunc("/sessions", r.listSessions).Methods("GET")
	master.HandleFunc("/sessions/active", r.activeSessions).Methods("GET")
	master.HandleFunc("/sessions/{id}", r.sessionDetail).Methods("GET")
	master.HandleFunc("/report", r.consolidatedReport).Methods("GET")
	master.HandleFunc("/categories", r.categoryReport).Methods("GET")
	master.HandleFunc("/counters", r.counterAnalysis).Methods("GET")
	master.HandleFunc("/stats", r.generalStats).Methods("GET")

	// Static frontend
	if cfg.FrontendDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.FrontendDir)))
	}

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns the current status and build identity
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":      "running",
		"service":     "contagem",
		"commit":      buildinfo.CommitHash,
		"commit_time": buildinfo.CommitTime,
		"build_time":  buildinfo.BuildTime,
		"started_at":  buildinfo.StartTime,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps the counting error taxonomy to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, counting.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, counting.ErrUnauthorized):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, counting.ErrNegativeQuantity), errors.Is(err, counting.ErrSessionClosed):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
