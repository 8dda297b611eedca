package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kapilpaliwal42/Saas-project/models"
)

type sqlVideoStore struct {
	db          *sql.DB
	placeholder func(int) string
	seqDDL      string // extra insertion-sequence column, if the driver needs one
	seqColumn   string // monotonic insertion-order column
}

func (s *sqlVideoStore) Init() error {
	_, err := s.db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS videos (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		public_id TEXT NOT NULL,
		original_size TEXT NOT NULL,
		compressed_size TEXT NOT NULL,
		duration REAL NOT NULL,
		created_at TIMESTAMP NOT NULL%s
	)`, s.seqDDL))
	if err != nil {
		return fmt.Errorf("failed to create videos table: %w", err)
	}
	return nil
}

func (s *sqlVideoStore) CreateVideo(ctx context.Context, title, description, publicID, originalSize, compressedSize string, duration float64) (*models.VideoRecord, error) {
	record := &models.VideoRecord{
		ID:             uuid.New().String(),
		Title:          title,
		Description:    description,
		PublicID:       publicID,
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
		Duration:       duration,
		CreatedAt:      time.Now().UTC(),
	}

	query := fmt.Sprintf(
		"INSERT INTO videos (id, title, description, public_id, original_size, compressed_size, duration, created_at) VALUES (%s, %s, %s, %s, %s, %s, %s, %s)",
		s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4),
		s.placeholder(5), s.placeholder(6), s.placeholder(7), s.placeholder(8))
	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.Title, record.Description, record.PublicID,
		record.OriginalSize, record.CompressedSize, record.Duration, record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert video record: %w", err)
	}
	return record, nil
}

// ListVideos returns every record newest first. Insertion order breaks
// ties for records created within the same timestamp granularity, so
// the latest insert always lists first.
func (s *sqlVideoStore) ListVideos(ctx context.Context) ([]models.VideoRecord, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT id, title, description, public_id, original_size, compressed_size, duration, created_at FROM videos ORDER BY created_at DESC, %s DESC",
		s.seqColumn))
	if err != nil {
		return nil, fmt.Errorf("failed to query video records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []models.VideoRecord
	for rows.Next() {
		var record models.VideoRecord
		if err := rows.Scan(&record.ID, &record.Title, &record.Description, &record.PublicID,
			&record.OriginalSize, &record.CompressedSize, &record.Duration, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan video record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read video records: %w", err)
	}
	return records, nil
}

func (s *sqlVideoStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlVideoStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
