package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/faithingod1/parish-record/internal/models"
	"github.com/faithingod1/parish-record/internal/server/storage"
)

// dateLayout is how date-only columns are stored, so that substring
// search over the confirmation date works directly in SQL.
const dateLayout = "2006-01-02"

// CreateRecord inserts a new confirmation record and sets its ID
func (s *Storage) CreateRecord(ctx context.Context, record *models.Confirmation) error {
	query := `
		INSERT INTO confirmations
			(full_name, date_of_birth, confirmation_date, church_name, priest_name, sponsor_name, remarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		record.FullName,
		record.DateOfBirth.Format(dateLayout),
		record.ConfirmationDate.Format(dateLayout),
		record.ChurchName,
		record.PriestName,
		record.SponsorName,
		record.Remarks,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted record id: %w", err)
	}

	record.ID = id
	return nil
}

// GetRecord retrieves a confirmation record by ID
func (s *Storage) GetRecord(ctx context.Context, id int64) (*models.Confirmation, error) {
	query := `
		SELECT id, full_name, date_of_birth, confirmation_date, church_name, priest_name, sponsor_name, remarks, created_at
		FROM confirmations
		WHERE id = ?
	`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return record, nil
}

// UpdateRecord updates all editable fields of a record
func (s *Storage) UpdateRecord(ctx context.Context, record *models.Confirmation) error {
	query := `
		UPDATE confirmations
		SET full_name = ?, date_of_birth = ?, confirmation_date = ?,
			church_name = ?, priest_name = ?, sponsor_name = ?, remarks = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		record.FullName,
		record.DateOfBirth.Format(dateLayout),
		record.ConfirmationDate.Format(dateLayout),
		record.ChurchName,
		record.PriestName,
		record.SponsorName,
		record.Remarks,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}

// DeleteRecord deletes a record by ID
func (s *Storage) DeleteRecord(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM confirmations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}

// ListRecords returns records ordered by confirmation date descending,
// optionally filtered by a substring query
func (s *Storage) ListRecords(ctx context.Context, query string) ([]*models.Confirmation, error) {
	baseQuery := `
		SELECT id, full_name, date_of_birth, confirmation_date, church_name, priest_name, sponsor_name, remarks, created_at
		FROM confirmations
	`

	var (
		rows *sql.Rows
		err  error
	)

	if query != "" {
		term := "%" + query + "%"
		baseQuery += `
		WHERE full_name LIKE ? OR church_name LIKE ? OR priest_name LIKE ? OR confirmation_date LIKE ?
		ORDER BY confirmation_date DESC, id DESC`
		rows, err = s.db.QueryContext(ctx, baseQuery, term, term, term, term)
	} else {
		baseQuery += ` ORDER BY confirmation_date DESC, id DESC`
		rows, err = s.db.QueryContext(ctx, baseQuery)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	return collectRecords(rows)
}

// ListRecordsByID returns all records ordered by ID ascending (export order)
func (s *Storage) ListRecordsByID(ctx context.Context) ([]*models.Confirmation, error) {
	query := `
		SELECT id, full_name, date_of_birth, confirmation_date, church_name, priest_name, sponsor_name, remarks, created_at
		FROM confirmations
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	return collectRecords(rows)
}

// CountRecords returns the total number of confirmation records
func (s *Storage) CountRecords(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM confirmations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// scanner abstracts sql.Row and sql.Rows for record scanning
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.Confirmation, error) {
	record := &models.Confirmation{}
	var dateOfBirth, confirmationDate string

	err := row.Scan(
		&record.ID,
		&record.FullName,
		&dateOfBirth,
		&confirmationDate,
		&record.ChurchName,
		&record.PriestName,
		&record.SponsorName,
		&record.Remarks,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if record.DateOfBirth, err = time.Parse(dateLayout, dateOfBirth); err != nil {
		return nil, fmt.Errorf("failed to parse date_of_birth: %w", err)
	}
	if record.ConfirmationDate, err = time.Parse(dateLayout, confirmationDate); err != nil {
		return nil, fmt.Errorf("failed to parse confirmation_date: %w", err)
	}

	return record, nil
}

func collectRecords(rows *sql.Rows) ([]*models.Confirmation, error) {
	defer func() {
		_ = rows.Close()
	}()

	var records []*models.Confirmation

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}
