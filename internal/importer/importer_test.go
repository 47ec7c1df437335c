package importer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/agrocampo/contagemgo/internal/models"
)

func TestInsertBatchesCleanBatch(t *testing.T) {
	products := []models.Product{{Code: "A1"}, {Code: "A2"}}

	var singles int
	create := func(records []models.Product) error {
		if len(records) == 1 {
			singles++
		}
		return nil
	}

	inserted, failed := insertBatches(create, products)
	if inserted != 2 || failed != 0 {
		t.Errorf("inserted = %d, failed = %d; want 2, 0", inserted, failed)
	}
	if singles != 0 {
		t.Errorf("clean batch fell back to %d single inserts", singles)
	}
}

func TestInsertBatchesRecoversFromBadRecord(t *testing.T) {
	products := []models.Product{
		{Code: "A1"}, {Code: "DUP"}, {Code: "A2"}, {Code: "A3"},
	}
	errDuplicate := errors.New("duplicate key value violates unique constraint")

	var singles []string
	create := func(records []models.Product) error {
		if len(records) > 1 {
			for _, r := range records {
				if r.Code == "DUP" {
					return errDuplicate
				}
			}
			return nil
		}
		singles = append(singles, records[0].Code)
		if records[0].Code == "DUP" {
			return errDuplicate
		}
		return nil
	}

	inserted, failed := insertBatches(create, products)

	// The bad record alone fails; all its batch mates still persist
	if inserted != 3 {
		t.Errorf("inserted = %d, want 3", inserted)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if want := []string{"A1", "DUP", "A2", "A3"}; !reflect.DeepEqual(singles, want) {
		t.Errorf("failing batch retried as %v, want every record once: %v", singles, want)
	}
}
