package importer

import (
	"errors"

	"github.com/agrocampo/contagemgo/internal/models"
)

// Validation failures for a single catalog row
var (
	ErrMalformedRow         = errors.New("menos de 3 campos")
	ErrMissingRequiredField = errors.New("descrição ou código vazio")
)

// RowError records one rejected line for the import summary
type RowError struct {
	Line    int
	Reason  string
	Content string
}

// ValidateRow converts one parsed field sequence into a Product.
// Expected column order: barcode (optional), description, internal code.
// Fields are already trimmed by ParseLine.
func ValidateRow(fields []string) (models.Product, error) {
	if len(fields) < 3 {
		return models.Product{}, ErrMalformedRow
	}

	barcode := fields[0]
	description := fields[1]
	code := fields[2]

	if description == "" || code == "" {
		return models.Product{}, ErrMissingRequiredField
	}

	product := models.Product{
		Code:        code,
		Description: description,
		Unit:        "UN",
		Active:      true,
	}
	if barcode != "" {
		product.Barcode = &barcode
	}

	return product, nil
}
