package main

import (
	"fmt"
	"log"
	"os"

	"github.com/agrocampo/contagemgo/internal/config"
	"github.com/agrocampo/contagemgo/internal/database"
	"github.com/agrocampo/contagemgo/internal/importer"
	"github.com/agrocampo/contagemgo/internal/models"
)

// The catalog export lands next to the binary under this fixed name
const csvPath = "Cadastro de produtos.csv"

func main() {
	db, err := database.Connect(config.LoadDatabase())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CountingSession{},
		&models.CountedItem{},
		&models.CountHistory{},
	); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	result, err := importer.Run(db.DB, csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro fatal: %v\n", err)
		db.Close()
		os.Exit(1)
	}

	if result.Failed > 0 {
		// Partial success still exits zero; failures were reported per record
		log.Printf("⚠️  Importação terminou com %d falhas de inserção", result.Failed)
	}
}
