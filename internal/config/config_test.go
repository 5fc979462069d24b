package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("LOCKOUT_MINUTES", "")

	cfg := FromEnv()
	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("expected default driver postgres, got %s", cfg.DBDriver)
	}
	if cfg.LockoutDuration != 5*time.Minute {
		t.Fatalf("expected 5m lockout, got %v", cfg.LockoutDuration)
	}
	if cfg.AdminEmail != "admin@engineering.com" {
		t.Fatalf("unexpected admin email %s", cfg.AdminEmail)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SEED_MOCK_DATA", "true")
	t.Setenv("SEED_RANDOM_SEED", "42")
	t.Setenv("LOCKOUT_MAX_ATTEMPTS", "not-a-number")

	cfg := FromEnv()
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("expected lowercased driver, got %s", cfg.DBDriver)
	}
	if !cfg.SeedMockData || cfg.SeedRandomSeed != 42 {
		t.Fatalf("seed settings not applied: %+v", cfg)
	}
	if cfg.LockoutMaxAttempts != 5 {
		t.Fatalf("expected fallback of 5 attempts, got %d", cfg.LockoutMaxAttempts)
	}
}

func TestFromEnvArchiveCredentials(t *testing.T) {
	t.Setenv("EXPORT_ARCHIVE_DRIVER", "S3")
	t.Setenv("EXPORT_ARCHIVE_S3_BUCKET", "exports")
	t.Setenv("EXPORT_ARCHIVE_S3_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("EXPORT_ARCHIVE_S3_SECRET_ACCESS_KEY", "wJalrXUtnFEMI")

	cfg := FromEnv()
	if cfg.ArchiveDriver != "s3" || cfg.ArchiveS3Bucket != "exports" {
		t.Fatalf("archive settings not applied: %+v", cfg)
	}
	if cfg.ArchiveS3AccessKeyID != "AKIDEXAMPLE" || cfg.ArchiveS3SecretAccessKey != "wJalrXUtnFEMI" {
		t.Fatalf("archive credentials not applied: %q %q", cfg.ArchiveS3AccessKeyID, cfg.ArchiveS3SecretAccessKey)
	}
}
