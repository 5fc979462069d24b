// Package archive keeps generated export files so they can be fetched later.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go-datamonitor/internal/config"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("archived export not found")
	ErrExists   = errors.New("archived export already exists")
)

const (
	DriverMemory = "memory"
	DriverS3     = "s3"

	DefaultURLExpiry = 15 * time.Minute
)

// Object describes one stored export.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
}

// Store is a flat key/object space for export files.
type Store interface {
	Driver() string
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Object, error)
	Get(ctx context.Context, key string) (Object, io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]Object, error)
	// URL returns a link the file can be downloaded from until expiry.
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Open builds the store selected by cfg.ArchiveDriver. An empty driver
// disables archiving and returns a nil Store.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.ArchiveDriver {
	case "":
		return nil, nil
	case DriverMemory:
		return NewMemory("/api/v1/exports/archive/"), nil
	case DriverS3:
		store, err := NewS3(ctx, S3Config{
			Bucket:          cfg.ArchiveS3Bucket,
			Region:          cfg.ArchiveS3Region,
			Endpoint:        cfg.ArchiveS3Endpoint,
			PathStyle:       cfg.ArchivePathStyle,
			AccessKeyID:     cfg.ArchiveS3AccessKeyID,
			SecretAccessKey: cfg.ArchiveS3SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown archive driver %q", cfg.ArchiveDriver)
}

// NewKey returns a unique key such as exports/2026/03/15/datapoints_20260315_101500-1a2b3c4d.csv.
func NewKey(fileName string, at time.Time) string {
	at = at.UTC()
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	return path.Join("exports", at.Format("2006/01/02"), base+"-"+uuid.NewString()[:8]+ext)
}
