package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agrocampo/contagemgo/internal/services/counting"
	"github.com/agrocampo/contagemgo/internal/utils"
)

// LoginRequest is a counter login: just a display name
type LoginRequest struct {
	Name string `json:"nome"`
}

// MasterLoginRequest carries the shared dashboard password
type MasterLoginRequest struct {
	Password string `json:"senha"`
}

// login resolves a counter login through the session gate: an active session
// for that name is resumed, otherwise user and session are created together
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var body LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := r.svc.StartSession(body.Name)
	if errors.Is(err, counting.ErrNameRequired) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		// Never leave a half-created login behind; the gate is transactional
		respondError(w, http.StatusServiceUnavailable, "Não foi possível iniciar a sessão. Tente novamente.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso":    true,
		"usuario_id": result.UserID,
		"sessao_id":  result.SessionID,
		"retomada":   result.Resumed,
	})
}

// masterLogin checks the shared master password and issues a dashboard token
func (r *Router) masterLogin(w http.ResponseWriter, req *http.Request) {
	var body MasterLoginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !utils.CheckPasswordHash(body.Password, r.cfg.MasterPassword) {
		respondError(w, http.StatusUnauthorized, "Senha incorreta")
		return
	}

	token, err := utils.GenerateMasterToken(r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"token": token,
	})
}
