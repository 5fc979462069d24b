package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go-datamonitor/internal/config"
	"go-datamonitor/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the configured database and exits the process on failure.
func ConnectDB(cfg config.Config) *gorm.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}
	log.Printf("Database connection established (%s)", cfg.DBDriver)
	return db
}

// Open returns a gorm handle for the postgres or sqlite driver.
func Open(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      newLogger(cfg.DBLogLevel),
		PrepareStmt: false,
	}

	switch cfg.DBDriver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(SQLiteDSN(cfg.SQLitePath)), gormCfg)
		if err != nil {
			return nil, err
		}
		// sqlite serializes writers; a single connection avoids SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil

	case "postgres", "":
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  postgresDSN(cfg),
			PreferSimpleProtocol: true, // Disables implicit prepared statements for pgbouncer transaction mode
		}), gormCfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// SQLiteDSN turns a file path (or ":memory:") into a DSN with foreign keys
// enforced, so cascade and set-null rules behave like postgres.
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func postgresDSN(cfg config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
}

func newLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch strings.ToLower(level) {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

// Migrate creates or updates the schema. Units first: users and
// measurements reference them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Unit{}, &model.User{}, &model.Measurement{})
}
