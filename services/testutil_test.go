package services

import (
	"testing"
	"usedcom_backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema. A single
// connection is forced so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Favorite{},
		&models.BrokerInquiry{},
		&models.ContactEntry{},
	))

	return db
}

func testProduct(price float64) *models.Product {
	return &models.Product{
		Title:       "Test Product",
		Description: "A test product",
		Price:       price,
		Condition:   "Good",
		Category:    "Electronics",
		Status:      models.ProductStatusAvailable,
		Seller:      models.SellerInfo{Name: "Seller", Email: "seller@example.com"},
		Location:    models.Location{City: "Austin", State: "TX"},
	}
}
