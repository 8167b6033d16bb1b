package main

import (
	"context"
	"log"
	"time"

	"niche-picker-be/internal/config"
	"niche-picker-be/internal/entity"
	"niche-picker-be/internal/repository/implementation"
	"niche-picker-be/internal/repository/specification"
	"niche-picker-be/pkg/database"
)

// migrate creates the industries table and seeds it from TAXONOMY_PATH, so
// the server can run with TAXONOMY_SOURCE=postgres.
func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Running AutoMigrate...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 3. Read the document the file source would serve
	log.Printf("Step 2: Reading taxonomy from %s...", cfg.Taxonomy.Path)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := implementation.NewFileTaxonomyRepository(cfg.Taxonomy.Path).Load(ctx)
	if err != nil {
		log.Fatalf("Error: Failed to read taxonomy: %v", err)
	}
	tax := entity.NewTaxonomy(records)
	if skipped := len(records) - tax.Len(); skipped > 0 {
		log.Printf("Warn: Skipped %d blank or duplicate industries", skipped)
	}

	// 4. Replace the table contents in one transaction
	log.Println("Step 3: Seeding industries...")
	repo := implementation.NewTaxonomyRepository(db)
	if err := repo.ReplaceAll(ctx, tax.Industries); err != nil {
		log.Fatalf("Error: Seeding failed: %v", err)
	}

	// 5. Spot-check the first industry round-trips through the table
	if tax.Len() > 0 {
		first := tax.Industries[0]
		found, err := repo.FindAll(ctx, specification.ByIndustryName{Name: first.Name})
		if err != nil || len(found) != 1 || len(found[0].Niches) != len(first.Niches) {
			log.Fatalf("Error: Verification of %q failed (rows=%d, err=%v)", first.Name, len(found), err)
		}
	}

	log.Printf("✅ Migration complete: %d industries seeded", tax.Len())
}
