package main

import (
	"log"

	"lead-capture/internal/config"
	"lead-capture/internal/database"

	"gorm.io/driver/postgres"
	"gorm.io/gorm/logger"
)

func main() {
	cfg := config.LoadConfig()
	db, err := database.Connect(postgres.Open(database.PostgresDSN(cfg)), logger.Default.LogMode(logger.Warn))
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	tables := []string{
		"leads",
	}

	log.Println("Syncing PostgreSQL sequences...")

	for _, table := range tables {
		query := "SELECT setval(pg_get_serial_sequence('" + table + "', 'id'), coalesce(max(id), 0) + 1, false) FROM " + table
		if err := db.Exec(query).Error; err != nil {
			log.Printf("Error syncing sequence for %s: %v", table, err)
		} else {
			log.Printf("Successfully synced sequence for %s", table)
		}
	}

	log.Println("DONE!")
}
