package db

import (
	"testing"

	models "pilotconnect/internal/models/gorm"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	orm, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	if err := AutoMigrate(orm); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	for _, table := range []interface{}{
		&models.Airport{}, &models.User{}, &models.PilotProfile{},
		&models.Message{}, &models.MessageDeletion{}, &models.PilotEvent{},
	} {
		if !orm.Migrator().HasTable(table) {
			t.Errorf("Expected table for %T", table)
		}
	}
}

func TestWrapSQLXSharesConnection(t *testing.T) {
	orm, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	if err := AutoMigrate(orm); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	orm.Create(&models.Airport{ICAO: "KSFO", Name: "San Francisco Intl", State: "CA"})

	x, err := WrapSQLX(orm, "sqlite3")
	if err != nil {
		t.Fatalf("Failed to wrap: %v", err)
	}

	var count int
	if err := x.Get(&count, "SELECT COUNT(*) FROM airports"); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 airport through sqlx, got %d", count)
	}
}
