package handlers

import (
	"encoding/json"
	"net/http"
)

// AddQuantityRequest accumulates a counted amount onto a (session, product)
type AddQuantityRequest struct {
	SessionID string  `json:"sessao_id"`
	ProductID int64   `json:"produto_id"`
	Quantity  float64 `json:"quantidade"`
	UserID    string  `json:"usuario_id"`
}

// CorrectQuantityRequest replaces an item's stored quantity
type CorrectQuantityRequest struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"nova_quantidade"`
	UserID   string  `json:"usuario_id"`
}

// RemoveItemRequest deletes one counted item
type RemoveItemRequest struct {
	ItemID string `json:"item_id"`
	UserID string `json:"usuario_id"`
}

// respondWithItems confirms a mutation by re-reading the session's item list
// from the store. The UI always shows what actually persisted, never an
// optimistic guess.
func (r *Router) respondWithItems(w http.ResponseWriter, sessionID string) {
	items, err := r.svc.SessionItems(sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Operação aplicada, mas falha ao recarregar itens")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"itens":   items,
	})
}

// addQuantity accumulates quantity atomically on the server side
func (r *Router) addQuantity(w http.ResponseWriter, req *http.Request) {
	var body AddQuantityRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if _, err := r.svc.AddQuantity(body.SessionID, body.ProductID, body.Quantity, body.UserID); err != nil {
		respondServiceError(w, err)
		return
	}
	r.respondWithItems(w, body.SessionID)
}

// correctQuantity overwrites an item's quantity (last write wins)
func (r *Router) correctQuantity(w http.ResponseWriter, req *http.Request) {
	var body CorrectQuantityRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := r.svc.CorrectQuantity(body.ItemID, body.Quantity, body.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.respondWithItems(w, item.SessionID)
}

// removeItem deletes a counted item after checking the acting user owns it
func (r *Router) removeItem(w http.ResponseWriter, req *http.Request) {
	var body RemoveItemRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// Resolve the session before the row disappears
	item, err := r.svc.LookupItem(body.ItemID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := r.svc.RemoveItem(body.ItemID, body.UserID); err != nil {
		respondServiceError(w, err)
		return
	}
	r.respondWithItems(w, item.SessionID)
}
