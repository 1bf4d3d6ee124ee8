// Package testutil provides a migrated SQLite database per test.
package testutil

import (
	"io"
	"path/filepath"
	"testing"

	"clinical-study/config"
	"clinical-study/internal/domain/entity"
	"clinical-study/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Operator credentials seeded by NewDB.
const (
	OperatorID       int64 = 1
	OperatorUsername       = "studienassistenz"
	OperatorPassword       = "geheim"
)

// Logger returns a logger that discards output.
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Config returns a sqlite configuration in a fresh temporary directory.
func Config(t *testing.T) config.DBConfig {
	t.Helper()
	return config.DBConfig{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "study.db"),
		MaxOpenConns: 10,
	}
}

// NewDB migrates a new database, seeds the default operator with a
// plaintext password and returns the gorm handle.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	log := Logger()
	cfg := Config(t)

	if err := database.Migrate(cfg, log, database.Up); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := database.NewConnection(cfg, log)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	operator := &entity.Employee{ID: OperatorID, Username: OperatorUsername, Password: OperatorPassword}
	if err := db.Create(operator).Error; err != nil {
		t.Fatalf("seed operator: %v", err)
	}
	return db
}

// CreatePatient inserts a patient with all flags unset.
func CreatePatient(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	patient := &entity.Patient{}
	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return patient.ID
}
