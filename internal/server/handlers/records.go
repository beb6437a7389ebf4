package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/faithingod1/parish-record/internal/auth"
	"github.com/faithingod1/parish-record/internal/models"
	"github.com/faithingod1/parish-record/internal/server/storage"
	"github.com/faithingod1/parish-record/internal/validation"
)

// RecordsHandler serves confirmation record CRUD and search
type RecordsHandler struct {
	logger   *slog.Logger
	records  storage.RecordStorage
	sessions *auth.Sessions
	renderer *Renderer
}

// NewRecordsHandler creates a new handler for confirmation records
func NewRecordsHandler(logger *slog.Logger, records storage.RecordStorage, sessions *auth.Sessions, renderer *Renderer) *RecordsHandler {
	return &RecordsHandler{
		logger:   logger,
		records:  records,
		sessions: sessions,
		renderer: renderer,
	}
}

type recordListPageData struct {
	Username  string
	CSRFToken string
	Query     string
	Records   []*models.Confirmation
}

type recordFormPageData struct {
	Username  string
	CSRFToken string
	Action    string
	Error     string
	Record    *models.Confirmation
}

type recordDetailPageData struct {
	Username  string
	CSRFToken string
	Record    *models.Confirmation
}

// List handles GET /confirmations with optional ?q= substring search
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := GetIdentity(ctx)

	query := strings.TrimSpace(r.URL.Query().Get("q"))

	records, err := h.records.ListRecords(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list records", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "records_list.html", recordListPageData{
		Username:  id.Username,
		CSRFToken: h.sessions.CSRFToken(id.SessionID),
		Query:     query,
		Records:   records,
	})
}

// NewForm handles GET /confirmations/new
func (h *RecordsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	id, _ := GetIdentity(r.Context())

	h.renderer.Render(w, http.StatusOK, "record_form.html", recordFormPageData{
		Username:  id.Username,
		CSRFToken: h.sessions.CSRFToken(id.SessionID),
		Action:    "/confirmations/new",
	})
}

// Create handles POST /confirmations/new
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := GetIdentity(ctx)

	record, err := recordFromForm(r)
	if err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "record_form.html", recordFormPageData{
			Username:  id.Username,
			CSRFToken: h.sessions.CSRFToken(id.SessionID),
			Action:    "/confirmations/new",
			Error:     err.Error(),
		})
		return
	}

	record.CreatedAt = time.Now()

	if err := h.records.CreateRecord(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to create record", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "record created",
		slog.Int64("record_id", record.ID),
		slog.String("user_id", id.UserID))

	http.Redirect(w, r, "/confirmations", http.StatusSeeOther)
}

// View handles GET /confirmations/{id}
func (h *RecordsHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := GetIdentity(ctx)

	record, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	h.renderer.Render(w, http.StatusOK, "record_detail.html", recordDetailPageData{
		Username:  id.Username,
		CSRFToken: h.sessions.CSRFToken(id.SessionID),
		Record:    record,
	})
}

// EditForm handles GET /confirmations/{id}/edit
func (h *RecordsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, _ := GetIdentity(r.Context())

	record, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	h.renderer.Render(w, http.StatusOK, "record_form.html", recordFormPageData{
		Username:  id.Username,
		CSRFToken: h.sessions.CSRFToken(id.SessionID),
		Action:    fmt.Sprintf("/confirmations/%d/edit", record.ID),
		Record:    record,
	})
}

// Update handles POST /confirmations/{id}/edit
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := GetIdentity(ctx)

	existing, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	record, err := recordFromForm(r)
	if err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "record_form.html", recordFormPageData{
			Username:  id.Username,
			CSRFToken: h.sessions.CSRFToken(id.SessionID),
			Action:    fmt.Sprintf("/confirmations/%d/edit", existing.ID),
			Error:     err.Error(),
			Record:    existing,
		})
		return
	}

	record.ID = existing.ID

	if err := h.records.UpdateRecord(ctx, record); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update record", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "record updated",
		slog.Int64("record_id", record.ID),
		slog.String("user_id", id.UserID))

	http.Redirect(w, r, fmt.Sprintf("/confirmations/%d", record.ID), http.StatusSeeOther)
}

// Delete handles POST /confirmations/{id}/delete
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := GetIdentity(ctx)

	recordID, err := parseRecordID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.records.DeleteRecord(ctx, recordID); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete record", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "record deleted",
		slog.Int64("record_id", recordID),
		slog.String("user_id", id.UserID))

	http.Redirect(w, r, "/confirmations", http.StatusSeeOther)
}

// loadRecord fetches the record named by the {id} path value, writing
// a 404 when it doesn't exist
func (h *RecordsHandler) loadRecord(w http.ResponseWriter, r *http.Request) (*models.Confirmation, bool) {
	ctx := r.Context()

	recordID, err := parseRecordID(r)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	record, err := h.records.GetRecord(ctx, recordID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			http.NotFound(w, r)
			return nil, false
		}
		h.logger.ErrorContext(ctx, "failed to get record", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	return record, true
}

func parseRecordID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// recordFromForm builds a record from the submitted form, trimming
// text fields and validating required fields and date formats
func recordFromForm(r *http.Request) (*models.Confirmation, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form submission")
	}

	record := &models.Confirmation{
		FullName:    strings.TrimSpace(r.PostFormValue("full_name")),
		ChurchName:  strings.TrimSpace(r.PostFormValue("church_name")),
		PriestName:  strings.TrimSpace(r.PostFormValue("priest_name")),
		SponsorName: strings.TrimSpace(r.PostFormValue("sponsor_name")),
		Remarks:     strings.TrimSpace(r.PostFormValue("remarks")),
	}

	if record.FullName == "" || record.ChurchName == "" || record.PriestName == "" {
		return nil, fmt.Errorf("full name, church name and priest name are required")
	}

	var err error
	if record.DateOfBirth, err = validation.ParseDate(r.PostFormValue("date_of_birth"), "date_of_birth"); err != nil {
		return nil, err
	}
	if record.ConfirmationDate, err = validation.ParseDate(r.PostFormValue("confirmation_date"), "confirmation_date"); err != nil {
		return nil, err
	}

	return record, nil
}
