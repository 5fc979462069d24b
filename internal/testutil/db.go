// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"go-datamonitor/internal/model"
	"go-datamonitor/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory sqlite database with foreign keys on.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(":memory:")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// Every new connection to :memory: is a fresh database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// CreateUnit inserts an active unit.
func CreateUnit(t *testing.T, db *gorm.DB, code, name string) *model.Unit {
	t.Helper()
	u := &model.Unit{Code: code, Name: name, IsActive: true}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create unit %s: %v", code, err)
	}
	return u
}

// CreateUser inserts an active engineer with password "Secret123".
func CreateUser(t *testing.T, db *gorm.DB, email string, unitID *uint) *model.User {
	t.Helper()
	u := &model.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "Engineer",
		Role:      model.RoleEngineer,
		IsActive:  true,
		UnitID:    unitID,
	}
	if err := u.SetPassword("Secret123"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return u
}

// CreateMeasurement inserts a measurement directly, bypassing validation.
func CreateMeasurement(t *testing.T, db *gorm.DB, userID uuid.UUID, unitID uint, param, value string, valid bool, ts time.Time) *model.Measurement {
	t.Helper()
	m := &model.Measurement{
		ParameterName: param,
		Value:         decimal.RequireFromString(value),
		UnitOfMeasure: "units",
		Timestamp:     ts.UTC(),
		UserID:        userID,
		UnitID:        unitID,
		IsValid:       valid,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create measurement: %v", err)
	}
	return m
}
