package importer

import (
	"errors"
	"testing"
)

func TestValidateRow(t *testing.T) {
	product, err := ValidateRow([]string{"7891000100101", "Adubo NPK 10-10-10 (50kg)", "ADUBO001"})
	if err != nil {
		t.Fatalf("valid row rejected: %v", err)
	}
	if product.Code != "ADUBO001" {
		t.Errorf("Code = %q, want ADUBO001", product.Code)
	}
	if product.Description != "Adubo NPK 10-10-10 (50kg)" {
		t.Errorf("Description = %q", product.Description)
	}
	if product.Barcode == nil || *product.Barcode != "7891000100101" {
		t.Errorf("Barcode = %v, want 7891000100101", product.Barcode)
	}
	if product.Unit != "UN" {
		t.Errorf("Unit = %q, want UN", product.Unit)
	}
	if !product.Active {
		t.Error("Active should default to true")
	}
}

func TestValidateRowEmptyBarcode(t *testing.T) {
	product, err := ValidateRow([]string{"", "Sementes de Milho", "SEMENTE002"})
	if err != nil {
		t.Fatalf("row without barcode rejected: %v", err)
	}
	if product.Barcode != nil {
		t.Errorf("Barcode should stay unset for empty field, got %q", *product.Barcode)
	}
}

func TestValidateRowMalformed(t *testing.T) {
	_, err := ValidateRow([]string{"A", "B"})
	if !errors.Is(err, ErrMalformedRow) {
		t.Errorf("2-field row: err = %v, want ErrMalformedRow", err)
	}
}

func TestValidateRowMissingRequired(t *testing.T) {
	// ";;" parses to three empty fields
	_, err := ValidateRow(ParseLine(";;"))
	if !errors.Is(err, ErrMissingRequiredField) {
		t.Errorf("empty row: err = %v, want ErrMissingRequiredField", err)
	}

	_, err = ValidateRow([]string{"123", "", "COD"})
	if !errors.Is(err, ErrMissingRequiredField) {
		t.Errorf("empty description: err = %v, want ErrMissingRequiredField", err)
	}
}

func TestParseContent(t *testing.T) {
	content := "EAN;DESCRICAO;CODIGO\n" +
		"7891000100101;Adubo NPK;ADUBO001\n" +
		"\n" +
		";;\n" +
		`"123";"FECHO 3"" REF:839";FECHO839` + "\n"

	header, products, rowErrors := ParseContent(content)

	if len(header) != 3 || header[0] != "EAN" {
		t.Errorf("header = %#v", header)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[1].Description != `FECHO 3" REF:839` {
		t.Errorf("quoted description = %q", products[1].Description)
	}
	if len(rowErrors) != 1 {
		t.Fatalf("got %d row errors, want 1", len(rowErrors))
	}
	if rowErrors[0].Line != 3 {
		// blank lines are dropped before numbering, so ";;" is line 3
		t.Errorf("row error line = %d, want 3", rowErrors[0].Line)
	}
}
