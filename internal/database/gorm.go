package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"propmatch/server/internal/models"
)

// OpenGorm opens the gorm handle used by the batch ingest path. It
// shares the sqlite file with the plain database/sql connection.
func OpenGorm(dbPath string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// NewTestDB opens a throwaway in-memory database for tests.
func NewTestDB() (*gorm.DB, error) {
	return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// MigrateSchema creates the listings table on a gorm handle.
func MigrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(&models.Listing{})
}

// UpsertListings writes a batch of imported listings inside the given
// transaction, replacing rows that collide on id. Listings without an
// id are inserted fresh.
func UpsertListings(tx *gorm.DB, listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&listings).Error
}
