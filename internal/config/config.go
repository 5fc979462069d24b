package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the API reads from the environment.
type Config struct {
	Port    string
	AppName string

	DBDriver    string // postgres | sqlite
	DatabaseURL string
	SQLitePath  string
	DBLogLevel  string

	AdminEmail    string
	AdminPassword string

	SeedMockData   bool
	SeedRandomSeed int64

	LockoutMaxAttempts int
	LockoutDuration    time.Duration

	ArchiveDriver            string // memory | s3 | "" (disabled)
	ArchiveS3Bucket          string
	ArchiveS3Region          string
	ArchiveS3Endpoint        string
	ArchivePathStyle         bool
	ArchiveS3AccessKeyID     string // empty: default AWS credential chain
	ArchiveS3SecretAccessKey string
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() Config {
	return Config{
		Port:    getEnv("PORT", "3000"),
		AppName: getEnv("APP_NAME", "Engineering Data Monitoring v1.0"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnv("SQLITE_PATH", "datamonitor.db"),
		DBLogLevel:  getEnv("DB_LOG_LEVEL", "warn"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@engineering.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin123!"),

		SeedMockData:   getBool("SEED_MOCK_DATA", false),
		SeedRandomSeed: getInt64("SEED_RANDOM_SEED", time.Now().UnixNano()),

		LockoutMaxAttempts: int(getInt64("LOCKOUT_MAX_ATTEMPTS", 5)),
		LockoutDuration:    time.Duration(getInt64("LOCKOUT_MINUTES", 5)) * time.Minute,

		ArchiveDriver:            strings.ToLower(os.Getenv("EXPORT_ARCHIVE_DRIVER")),
		ArchiveS3Bucket:          os.Getenv("EXPORT_ARCHIVE_S3_BUCKET"),
		ArchiveS3Region:          os.Getenv("EXPORT_ARCHIVE_S3_REGION"),
		ArchiveS3Endpoint:        os.Getenv("EXPORT_ARCHIVE_S3_ENDPOINT"),
		ArchivePathStyle:         getBool("EXPORT_ARCHIVE_S3_PATH_STYLE", false),
		ArchiveS3AccessKeyID:     os.Getenv("EXPORT_ARCHIVE_S3_ACCESS_KEY_ID"),
		ArchiveS3SecretAccessKey: os.Getenv("EXPORT_ARCHIVE_S3_SECRET_ACCESS_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
