// Package store persists video metadata in a relational database.
// Postgres backs production; sqlite serves development and tests.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Kapilpaliwal42/Saas-project/models"
)

// VideoStore is the persistence contract for video records. Each
// write is a single atomic insert; records are never updated.
type VideoStore interface {
	Init() error
	CreateVideo(ctx context.Context, title, description, publicID, originalSize, compressedSize string, duration float64) (*models.VideoRecord, error)
	ListVideos(ctx context.Context) ([]models.VideoRecord, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open connects using the given driver. Supported drivers are
// "postgres" (lib/pq) and "sqlite" (modernc).
func Open(driver, dsn string) (VideoStore, error) {
	switch driver {
	case "postgres":
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		return &sqlVideoStore{
			db:          db,
			placeholder: postgresPlaceholder,
			seqDDL:      ",\n\t\tseq BIGSERIAL",
			seqColumn:   "seq",
		}, nil
	case "sqlite":
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return &sqlVideoStore{
			db:          db,
			placeholder: questionPlaceholder,
			seqColumn:   "rowid",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func postgresPlaceholder(i int) string { return fmt.Sprintf("$%d", i) }
func questionPlaceholder(int) string   { return "?" }
