package main

import (
	"log"

	"lead-capture/internal/config"
	"lead-capture/internal/database"
	"lead-capture/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const batchSize = 500

// Copies the leads table from the SQLite file at DB_PATH into the Postgres
// database described by DB_HOST and friends. Run cmd/sync_sequences afterwards.
func main() {
	cfg := config.LoadConfig()

	sqliteDB, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to SQLite: %v", err)
	}
	log.Printf("Connected to SQLite at %s", cfg.DBPath)

	pgDB, err := database.Connect(postgres.Open(database.PostgresDSN(cfg)), logger.Default.LogMode(logger.Warn))
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	log.Println("Migrating table: leads")

	var leads []models.Lead
	if err := sqliteDB.Order("id ASC").Find(&leads).Error; err != nil {
		log.Fatalf("Error reading leads from SQLite: %v", err)
	}
	if len(leads) == 0 {
		log.Println("No leads to migrate")
		return
	}

	err = pgDB.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&leads, batchSize).Error
	})
	if err != nil {
		log.Fatalf("Error writing leads to Postgres: %v", err)
	}

	log.Printf("Successfully migrated %d leads", len(leads))
}
