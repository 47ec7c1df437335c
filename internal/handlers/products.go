package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/agrocampo/contagemgo/internal/services/counting"
	"github.com/agrocampo/contagemgo/internal/services/printer"
	"github.com/gorilla/mux"
)

// searchProducts finds active catalog entries by code or description
func (r *Router) searchProducts(w http.ResponseWriter, req *http.Request) {
	term := strings.TrimSpace(req.URL.Query().Get("q"))
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	products, err := r.svc.SearchProducts(term, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search products")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   products,
	})
}

// lookupBarcode resolves a scanned code. A miss is not an error: the client
// gets an explicit "link this code to a product" affordance.
func (r *Router) lookupBarcode(w http.ResponseWriter, req *http.Request) {
	code := mux.Vars(req)["code"]

	product, err := r.svc.LookupBarcode(code)
	if errors.Is(err, counting.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]interface{}{
			"sucesso":  false,
			"mensagem": fmt.Sprintf("Código %q não encontrado no cadastro.", code),
			"acao":     "vincular",
		})
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to look up barcode")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   product,
	})
}

// LinkBarcodeRequest associates an unrecognized barcode with a product
type LinkBarcodeRequest struct {
	Barcode string `json:"codigo_barras"`
}

// linkBarcode stores a scanned-but-unknown barcode on an existing product
func (r *Router) linkBarcode(w http.ResponseWriter, req *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var body LinkBarcodeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	barcode := strings.TrimSpace(body.Barcode)
	if barcode == "" {
		respondError(w, http.StatusBadRequest, "codigo_barras is required")
		return
	}

	product, err := r.svc.LinkBarcode(productID, barcode)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sucesso": true,
		"dados":   product,
	})
}

// productLabels renders a printable PDF sheet of shelf labels for a product
func (r *Router) productLabels(w http.ResponseWriter, req *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := r.svc.LookupProduct(productID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	cfg := printer.DefaultLabelConfig()
	if count, err := strconv.Atoi(req.URL.Query().Get("count")); err == nil && count > 0 {
		cfg.Count = count
	}

	pdf, err := printer.GenerateProductLabels(*product, cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate labels")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=etiquetas_%s.pdf", product.Code))
	w.Write(pdf)
}
