package storage

import (
	"context"

	"github.com/faithingod1/parish-record/internal/models"
)

// RecordStorage defines interface for confirmation record persistence
type RecordStorage interface {
	// CreateRecord inserts a new confirmation record and sets its ID
	CreateRecord(ctx context.Context, record *models.Confirmation) error

	// GetRecord retrieves a confirmation record by ID
	// Returns ErrRecordNotFound if the record doesn't exist
	GetRecord(ctx context.Context, id int64) (*models.Confirmation, error)

	// UpdateRecord updates all editable fields of a record
	// Returns ErrRecordNotFound if the record doesn't exist
	UpdateRecord(ctx context.Context, record *models.Confirmation) error

	// DeleteRecord deletes a record by ID
	// Returns ErrRecordNotFound if the record doesn't exist
	DeleteRecord(ctx context.Context, id int64) error

	// ListRecords returns records ordered by confirmation date descending.
	// A non-empty query filters by substring match on full name, church
	// name, priest name, or the confirmation date in YYYY-MM-DD form.
	ListRecords(ctx context.Context, query string) ([]*models.Confirmation, error)

	// ListRecordsByID returns all records ordered by ID ascending (export order)
	ListRecordsByID(ctx context.Context) ([]*models.Confirmation, error)

	// CountRecords returns the total number of confirmation records
	CountRecords(ctx context.Context) (int, error)
}

// Backuper produces a consistent snapshot of the underlying store.
type Backuper interface {
	// BackupTo writes a self-contained copy of the database to dst.
	// dst must not already exist.
	BackupTo(ctx context.Context, dst string) error
}
