package importer

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/agrocampo/contagemgo/internal/models"
	"gorm.io/gorm"
)

// BatchSize is how many products go into each bulk insert
const BatchSize = 500

// Result summarizes one import run
type Result struct {
	TotalLines int
	Valid      int
	Inserted   int
	Failed     int
	FinalCount int64
	RowErrors  []RowError
}

// ParseContent parses a whole catalog file. The first non-blank line is the
// header (informational only); every following line becomes a Product or a
// RowError. Rejected rows are collected, never silently dropped.
func ParseContent(content string) (header []string, products []models.Product, rowErrors []RowError) {
	var lines []string
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, strings.TrimRight(l, "\r"))
		}
	}
	if len(lines) == 0 {
		return nil, nil, nil
	}

	header = ParseLine(lines[0])

	for i := 1; i < len(lines); i++ {
		fields := ParseLine(lines[i])
		product, err := ValidateRow(fields)
		if err != nil {
			rowErrors = append(rowErrors, RowError{
				Line:    i + 1,
				Reason:  err.Error(),
				Content: lines[i],
			})
			continue
		}

		// Keep the raw line for audit
		raw, _ := json.Marshal(map[string]string{"linha": lines[i]})
		product.RawData = raw

		products = append(products, product)
	}

	return header, products, rowErrors
}

// clearExisting removes any previously imported catalog together with its
// dependent counted items and history. The import is a full replacement of
// the catalog, not an incremental upsert.
func clearExisting(db *gorm.DB) error {
	fmt.Println("🗑️  Removendo produtos existentes...")

	var linked int64
	if err := db.Model(&models.CountedItem{}).Count(&linked).Error; err != nil {
		return fmt.Errorf("failed to count linked items: %w", err)
	}
	if linked > 0 {
		fmt.Printf("⚠️  Existem %d itens contados vinculados a produtos.\n", linked)
		fmt.Println("   Removendo itens contados e histórico primeiro...")
		if err := db.Exec("DELETE FROM historico_contagem").Error; err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		if err := db.Exec("DELETE FROM itens_contados").Error; err != nil {
			return fmt.Errorf("failed to clear counted items: %w", err)
		}
	}

	if err := db.Exec("DELETE FROM produtos").Error; err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	fmt.Println("✅ Produtos existentes removidos.")
	return nil
}

// insertBatches inserts products in fixed-size batches through create. A
// failing batch is retried record by record so one bad row does not block
// the rest; each individual failure is reported with the offending code.
func insertBatches(create func([]models.Product) error, products []models.Product) (inserted, failed int) {
	totalBatches := (len(products) + BatchSize - 1) / BatchSize

	for i := 0; i < len(products); i += BatchSize {
		end := i + BatchSize
		if end > len(products) {
			end = len(products)
		}
		batch := products[i:end]
		batchNum := i/BatchSize + 1

		if err := create(batch); err != nil {
			fmt.Printf("\n❌ Erro no lote %d: %v\n", batchNum, err)

			// One by one to identify the problem rows
			for j := range batch {
				if errIndividual := create(batch[j : j+1]); errIndividual != nil {
					fmt.Printf("   ❌ Produto %s: %v\n", batch[j].Code, errIndividual)
					failed++
				} else {
					inserted++
				}
			}
		} else {
			inserted += len(batch)
		}

		progress := end * 100 / len(products)
		fmt.Printf("\r   Progresso: %d%% (lote %d/%d) - %d inseridos", progress, batchNum, totalBatches, inserted)
	}
	fmt.Println()
	return inserted, failed
}

// Run drives the end-to-end import: read the file, parse and validate every
// line, replace the stored catalog and report the persisted total. Fatal
// conditions (missing file, failed cleanup) are returned as errors.
func Run(db *gorm.DB, path string) (*Result, error) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  IMPORTAÇÃO DE PRODUTOS - CSV → BANCO")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("arquivo não encontrado: %s: %w", path, err)
	}

	header, products, rowErrors := ParseContent(string(content))

	fmt.Printf("📄 Arquivo: %s\n", path)
	fmt.Printf("📊 Total de linhas (com cabeçalho): %d\n", len(products)+len(rowErrors)+1)
	fmt.Println()
	fmt.Printf("📋 Colunas: %s\n", strings.Join(header, " | "))
	fmt.Println()

	fmt.Printf("✅ Produtos válidos: %d\n", len(products))
	if len(rowErrors) > 0 {
		fmt.Printf("⚠️  Linhas com erro: %d\n", len(rowErrors))
		for i, e := range rowErrors {
			if i == 5 {
				fmt.Printf("   ... e mais %d erros\n", len(rowErrors)-5)
				break
			}
			fmt.Printf("   Linha %d: %s\n", e.Line, e.Reason)
		}
	}
	fmt.Println()

	if err := clearExisting(db); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Printf("📦 Inserindo %d produtos em lotes de %d...\n", len(products), BatchSize)

	inserted, failed := insertBatches(func(records []models.Product) error {
		return db.Create(&records).Error
	}, products)

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  ✅ IMPORTAÇÃO CONCLUÍDA")
	fmt.Printf("  📊 Produtos inseridos: %d\n", inserted)
	if failed > 0 {
		fmt.Printf("  ⚠️  Erros de inserção: %d\n", failed)
	}
	fmt.Println(strings.Repeat("=", 60))

	// Read the count back to confirm what actually persisted
	var finalCount int64
	if err := db.Model(&models.Product{}).Count(&finalCount).Error; err != nil {
		log.Printf("⚠️  Não foi possível confirmar o total no banco: %v", err)
	} else {
		fmt.Printf("\n📊 Total de produtos no banco: %d\n", finalCount)
	}

	return &Result{
		TotalLines: len(products) + len(rowErrors) + 1,
		Valid:      len(products),
		Inserted:   inserted,
		Failed:     failed,
		FinalCount: finalCount,
		RowErrors:  rowErrors,
	}, nil
}
