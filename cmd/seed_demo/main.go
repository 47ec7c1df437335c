package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/agrocampo/contagemgo/internal/config"
	"github.com/agrocampo/contagemgo/internal/database"
	"github.com/agrocampo/contagemgo/internal/models"
	"github.com/agrocampo/contagemgo/internal/services/counting"
)

func main() {
	fmt.Println("🌱 Contagem Demo Data Seeder")
	fmt.Println(strings.Repeat("=", 60))

	db, err := database.Connect(config.LoadDatabase())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CountingSession{},
		&models.CountedItem{},
		&models.CountHistory{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var productCount int64
	db.DB.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		fmt.Printf("⚠️  Database already has %d products. Clear it first? (y/N): ", productCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		fmt.Println("🗑️  Clearing existing data...")
		db.DB.Exec("TRUNCATE TABLE historico_contagem CASCADE")
		db.DB.Exec("TRUNCATE TABLE itens_contados CASCADE")
		db.DB.Exec("TRUNCATE TABLE sessoes_contagem CASCADE")
		db.DB.Exec("TRUNCATE TABLE usuarios CASCADE")
		db.DB.Exec("TRUNCATE TABLE produtos CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📦 Creating demo data...")
	fmt.Println()

	// 1. Create Products
	fmt.Println("📦 Creating products...")
	products := []models.Product{
		{Code: "AGRO-0001", Description: "RAÇÃO BOVINA ENGORDA 40KG", Barcode: strPtr("7891234500017"), Category: "Nutrição Animal", Unit: "SC"},
		{Code: "AGRO-0002", Description: "SAL MINERAL 25KG", Barcode: strPtr("7891234500024"), Category: "Nutrição Animal", Unit: "SC"},
		{Code: "AGRO-0003", Description: "VERMÍFUGO ORAL 1L", Barcode: strPtr("7891234500031"), Category: "Saúde Animal", Unit: "FR"},
		{Code: "AGRO-0004", Description: "ARAME FARPADO ROLO 500M", Barcode: strPtr("7891234500048"), Category: "Cercas", Unit: "RL"},
		{Code: "AGRO-0005", Description: "SEMENTE DE MILHO HÍBRIDO 20KG", Barcode: strPtr("7891234500055"), Category: "Sementes", Unit: "SC"},
		{Code: "AGRO-0006", Description: "ADUBO NPK 04-14-08 50KG", Barcode: strPtr("7891234500062"), Category: "Fertilizantes", Unit: "SC"},
		{Code: "AGRO-0007", Description: "BOTINA DE SEGURANÇA N42", Category: "EPI", Unit: "PR"},
		{Code: "AGRO-0008", Description: `FECHO 3" REF:839`, Category: "Ferragens", Unit: "UN"},
	}

	for i := range products {
		products[i].Active = true
		if err := db.DB.Create(&products[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create product %s: %v", products[i].Code, err)
		} else {
			fmt.Printf("   ✓ Created product: [%s] %s\n", products[i].Code, products[i].Description)
		}
	}
	fmt.Printf("✅ Created %d products\n\n", len(products))

	// 2. Open counting sessions and record quantities through the service,
	// so the seeded data goes through the same path production counts do
	fmt.Println("👤 Creating counters and sessions...")
	svc := counting.NewService(db.DB)

	maria, err := svc.StartSession("Maria Silva")
	if err != nil {
		log.Fatalf("❌ Failed to start session for Maria: %v", err)
	}
	fmt.Printf("   ✓ Session for Maria Silva: %s\n", maria.SessionID)

	joao, err := svc.StartSession("João Pereira")
	if err != nil {
		log.Fatalf("❌ Failed to start session for João: %v", err)
	}
	fmt.Printf("   ✓ Session for João Pereira: %s\n", joao.SessionID)
	fmt.Println()

	// 3. Record counts
	fmt.Println("🔢 Recording counted quantities...")
	counts := []struct {
		session  string
		user     string
		product  int
		quantity float64
	}{
		{maria.SessionID, maria.UserID, 0, 12},
		{maria.SessionID, maria.UserID, 1, 30},
		{maria.SessionID, maria.UserID, 2, 4.5},
		{maria.SessionID, maria.UserID, 7, 18},
		{joao.SessionID, joao.UserID, 0, 8},
		{joao.SessionID, joao.UserID, 3, 6},
		{joao.SessionID, joao.UserID, 5, 22},
	}

	for _, c := range counts {
		p := products[c.product]
		if _, err := svc.AddQuantity(c.session, p.ID, c.quantity, c.user); err != nil {
			log.Printf("⚠️  Failed to count product %s: %v", p.Code, err)
		} else {
			fmt.Printf("   ✓ %s: %g %s\n", p.Code, c.quantity, p.Unit)
		}
	}
	fmt.Println()

	// Close Maria's session so the dashboard shows both states
	if _, err := svc.FinishSession(maria.SessionID); err != nil {
		log.Printf("⚠️  Failed to finish session: %v", err)
	} else {
		fmt.Println("🏁 Finished Maria's session (João's stays active)")
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("✅ Demo data ready")
	fmt.Println("   Counter login: any name on the field app")
	fmt.Println("   Master dashboard: POST /auth/master with the configured password")
}

func strPtr(s string) *string { return &s }
