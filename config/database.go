package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDatabase opens the SQLite database. Foreign key constraint creation
// is disabled so that broker inquiries keep a weak reference to products:
// an inquiry must survive deletion of the product it snapshotted.
func ConnectDatabase(cfg *Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Printf("✅ Connected to database: %s", cfg.DatabasePath)
	return db
}
