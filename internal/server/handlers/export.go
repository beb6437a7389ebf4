package handlers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/faithingod1/parish-record/internal/server/storage"
)

// ExportHandler serves the CSV export and database backup downloads
type ExportHandler struct {
	logger  *slog.Logger
	records storage.RecordStorage
	backup  storage.Backuper
}

// NewExportHandler creates a new export handler
func NewExportHandler(logger *slog.Logger, records storage.RecordStorage, backup storage.Backuper) *ExportHandler {
	return &ExportHandler{
		logger:  logger,
		records: records,
		backup:  backup,
	}
}

// csvHeader matches the historical export column set
var csvHeader = []string{
	"ID",
	"Full Name",
	"Date of Birth",
	"Confirmation Date",
	"Church Name",
	"Priest Name",
	"Sponsor Name",
	"Remarks",
	"Created At",
}

// ExportCSV handles GET /backup/csv
// Streams all confirmation records ordered by ID
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.records.ListRecordsByID(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list records for export", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="confirmations_export.csv"`)

	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		h.logger.ErrorContext(ctx, "failed to write csv header", slog.Any("error", err))
		return
	}

	for _, record := range records {
		row := []string{
			strconv.FormatInt(record.ID, 10),
			record.FullName,
			record.DateOfBirth.Format("2006-01-02"),
			record.ConfirmationDate.Format("2006-01-02"),
			record.ChurchName,
			record.PriestName,
			record.SponsorName,
			record.Remarks,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			h.logger.ErrorContext(ctx, "failed to write csv row", slog.Any("error", err))
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.ErrorContext(ctx, "failed to flush csv", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "csv export served", slog.Int("records", len(records)))
}

// BackupDB handles GET /backup/db
// Serves a consistent snapshot of the database file
func (h *ExportHandler) BackupDB(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dir, err := os.MkdirTemp("", "parish-backup-*")
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create backup dir", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			h.logger.WarnContext(ctx, "failed to remove backup dir", slog.Any("error", err))
		}
	}()

	// VACUUM INTO refuses to overwrite, so the path must be fresh
	snapshot := filepath.Join(dir, "backup.db")

	if err := h.backup.BackupTo(ctx, snapshot); err != nil {
		h.logger.ErrorContext(ctx, "failed to snapshot database", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	file, err := os.Open(snapshot)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to open snapshot", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to stat snapshot", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="parish_records_backup.db"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))

	http.ServeContent(w, r, "parish_records_backup.db", info.ModTime(), file)

	h.logger.InfoContext(ctx, "database backup served", slog.Int64("bytes", info.Size()))
}
