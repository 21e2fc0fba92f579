package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-portal/internal/domain"
	"github.com/spec-kit/hr-portal/internal/events"
	"github.com/spec-kit/hr-portal/internal/repository"
	"github.com/spec-kit/hr-portal/internal/storage"
	apperrors "github.com/spec-kit/hr-portal/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// StaffService orchestrates the staff record lifecycle: photo upload, URL
// resolution, row persistence and change events. Upload always happens
// strictly before insert; a persist failure after a successful upload
// leaves the photo in place (no cross-store rollback).
type StaffService struct {
	records    repository.StaffRecordRepository
	store      storage.ObjectStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	maxBytes   int64
	tempDir    string
}

// StaffDependencies encapsulates collaborators for the service.
type StaffDependencies struct {
	RecordRepo repository.StaffRecordRepository
	Store      storage.ObjectStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	// MaxPhotoBytes bounds accepted payloads; zero means 5 MiB.
	MaxPhotoBytes int64
	// TempDir stages uploads; empty means the OS temp directory.
	TempDir string
}

// NewStaffService constructs the service.
func NewStaffService(deps StaffDependencies) *StaffService {
	maxBytes := deps.MaxPhotoBytes
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &StaffService{
		records:    deps.RecordRepo,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		maxBytes:   maxBytes,
		tempDir:    deps.TempDir,
	}
}

// CreateStaffInput carries the intake form fields plus the photo payload.
type CreateStaffInput struct {
	FullName       string
	ResumptionDate string
	ExitDate       string
	Location       string
	Designation    string
	HiringOfficer  string
	Photo          domain.UploadableImage
}

// UpdateStaffInput carries the partial edit fields. Nil means unchanged.
type UpdateStaffInput struct {
	FullName    *string
	Designation *string
	Location    *string
	Photo       *domain.UploadableImage
}

// CreateStaffRecord validates the input, uploads the photo, then inserts
// the record and returns it with its store-assigned id and created_at.
func (s *StaffService) CreateStaffRecord(ctx context.Context, input CreateStaffInput) (*domain.StaffRecord, error) {
	exitDate, err := s.validateCreate(&input)
	if err != nil {
		return nil, err
	}

	key := photoObjectKey("", input.FullName, input.Photo.Filename, time.Now())
	pictureURL, err := s.uploadPhoto(ctx, key, input.Photo)
	if err != nil {
		return nil, err
	}

	record := &domain.StaffRecord{
		FullName:       input.FullName,
		ResumptionDate: input.ResumptionDate,
		ExitDate:       exitDate,
		Location:       input.Location,
		Designation:    input.Designation,
		HiringOfficer:  input.HiringOfficer,
		PictureURL:     pictureURL,
	}
	if err := s.records.Insert(ctx, record); err != nil {
		// the uploaded asset stays behind; documented inconsistency window
		s.logger.Warn("persist failed after upload; photo orphaned",
			zap.String("picture_url", pictureURL), zap.Error(err))
		return nil, apperrors.NewPersistError(err)
	}

	s.publish(ctx, events.EventStaffCreated, record.ID, events.StaffCreatedPayload{
		FullName:   record.FullName,
		PictureURL: record.PictureURL,
	})
	return record, nil
}

// UpdateStaffRecord applies a partial update, uploading a replacement photo
// under a fresh key when one is provided. The previous asset is left in
// storage.
func (s *StaffService) UpdateStaffRecord(ctx context.Context, id string, input UpdateStaffInput) (*domain.StaffRecord, error) {
	existing, err := s.records.SelectByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}

	patch := domain.StaffRecordPatch{
		FullName:    input.FullName,
		Designation: input.Designation,
		Location:    input.Location,
	}
	if input.FullName != nil && strings.TrimSpace(*input.FullName) == "" {
		return nil, apperrors.NewValidationError("full name cannot be empty", nil)
	}

	photoReplaced := false
	if input.Photo != nil {
		if err := s.validatePhoto(*input.Photo); err != nil {
			return nil, err
		}
		name := existing.FullName
		if input.FullName != nil {
			name = *input.FullName
		}
		key := photoObjectKey("updated_", name, input.Photo.Filename, time.Now())
		pictureURL, err := s.uploadPhoto(ctx, key, *input.Photo)
		if err != nil {
			return nil, err
		}
		patch.PictureURL = &pictureURL
		photoReplaced = true
	}

	updated, err := s.records.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff record", map[string]any{"id": id})
		}
		return nil, apperrors.NewPersistError(err)
	}

	s.publish(ctx, events.EventStaffUpdated, updated.ID, events.StaffUpdatedPayload{PhotoReplaced: photoReplaced})
	return updated, nil
}

// MarkExited sets the record's exit date.
func (s *StaffService) MarkExited(ctx context.Context, id, exitDate string) (*domain.StaffRecord, error) {
	exitDate = strings.TrimSpace(exitDate)
	if exitDate == "" {
		return nil, apperrors.NewValidationError("exit date is required", nil)
	}
	if _, err := time.Parse(dateLayout, exitDate); err != nil {
		return nil, apperrors.NewValidationError("exit date must be YYYY-MM-DD", nil)
	}

	existing, err := s.records.SelectByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	if resumption, err := time.Parse(dateLayout, existing.ResumptionDate); err == nil {
		if exit, err := time.Parse(dateLayout, exitDate); err == nil && exit.Before(resumption) {
			return nil, apperrors.NewValidationError("exit date cannot precede resumption date", nil)
		}
	}

	updated, err := s.records.Update(ctx, id, domain.StaffRecordPatch{ExitDate: &exitDate})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff record", map[string]any{"id": id})
		}
		return nil, apperrors.NewPersistError(err)
	}

	s.publish(ctx, events.EventStaffExited, updated.ID, events.StaffExitedPayload{ExitDate: exitDate})
	return updated, nil
}

// ListStaff returns all records, newest first. An empty slice is a valid
// result, not an error.
func (s *StaffService) ListStaff(ctx context.Context) ([]domain.StaffRecord, error) {
	records, err := s.records.SelectAll(ctx)
	if err != nil {
		return nil, apperrors.NewPersistError(err)
	}
	return records, nil
}

// GetStaffRecord fetches one record.
func (s *StaffService) GetStaffRecord(ctx context.Context, id string) (*domain.StaffRecord, error) {
	record, err := s.records.SelectByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return record, nil
}

// DeleteStaffRecord removes the row after a best-effort delete of the
// associated photo asset. Storage cleanup failures are logged and never
// block the record delete.
func (s *StaffService) DeleteStaffRecord(ctx context.Context, id string) error {
	existing, err := s.records.SelectByID(ctx, id)
	if err != nil {
		return mapLookupErr(err)
	}

	if existing.PictureURL != "" {
		if err := s.store.DeleteByPublicURL(ctx, existing.PictureURL); err != nil {
			s.logger.Warn("storage cleanup failed; continuing with record delete",
				zap.String("picture_url", existing.PictureURL), zap.Error(err))
		}
	}

	if err := s.records.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("staff record", map[string]any{"id": id})
		}
		return apperrors.NewPersistError(err)
	}

	s.publish(ctx, events.EventStaffDeleted, id, nil)
	return nil
}

func (s *StaffService) validateCreate(input *CreateStaffInput) (string, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	if input.FullName == "" {
		return "", apperrors.NewValidationError("full name is required", nil)
	}
	if strings.TrimSpace(input.Location) == "" {
		return "", apperrors.NewValidationError("location is required", nil)
	}
	if strings.TrimSpace(input.Designation) == "" {
		return "", apperrors.NewValidationError("designation is required", nil)
	}

	resumption, err := time.Parse(dateLayout, input.ResumptionDate)
	if err != nil {
		return "", apperrors.NewValidationError("resumption date must be YYYY-MM-DD", nil)
	}

	// empty or the legacy sentinel both mean "still working"
	exitDate := strings.TrimSpace(input.ExitDate)
	if exitDate == domain.StillWorkingSentinel {
		exitDate = ""
	}
	if exitDate != "" {
		exit, err := time.Parse(dateLayout, exitDate)
		if err != nil {
			return "", apperrors.NewValidationError("exit date must be YYYY-MM-DD", nil)
		}
		if exit.Before(resumption) {
			return "", apperrors.NewValidationError("exit date cannot precede resumption date", nil)
		}
	}

	if err := s.validatePhoto(input.Photo); err != nil {
		return "", err
	}
	return exitDate, nil
}

// validatePhoto runs the authoritative server-side checks before any
// storage call is attempted.
func (s *StaffService) validatePhoto(photo domain.UploadableImage) error {
	if len(photo.Bytes) == 0 {
		return apperrors.NewValidationError("picture required", nil)
	}
	if int64(len(photo.Bytes)) > s.maxBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("picture exceeds %d byte limit", s.maxBytes), nil)
	}
	if _, ok := allowedImageTypes[sniffImageType(photo.Bytes)]; !ok {
		return apperrors.NewValidationError("invalid file type, only JPG and PNG allowed", nil)
	}
	return nil
}

// uploadPhoto stages the payload in a local temp file, uploads it with
// no-overwrite semantics and resolves the public URL. The temp file is
// removed on every exit path.
func (s *StaffService) uploadPhoto(ctx context.Context, key string, photo domain.UploadableImage) (string, error) {
	tmp, err := os.CreateTemp(s.tempDir, "staff-upload-*")
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if removeErr := os.Remove(tmpPath); removeErr != nil {
			s.logger.Error("failed to remove staging temp file",
				zap.String("path", tmpPath), zap.Error(removeErr))
		}
	}()

	if _, err := tmp.Write(photo.Bytes); err != nil {
		_ = tmp.Close()
		return "", apperrors.NewInternalError(err)
	}
	if err := tmp.Close(); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	staged, err := os.Open(tmpPath)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	defer staged.Close()

	contentType := photo.ContentType
	if contentType == "" {
		contentType = sniffImageType(photo.Bytes)
	}
	if _, err := s.store.Upload(ctx, key, staged, contentType); err != nil {
		return "", apperrors.NewUploadError(err)
	}
	return s.store.PublicURL(key), nil
}

func (s *StaffService) publish(ctx context.Context, eventType events.EventType, recordID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		RecordID:  recordID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

func mapLookupErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("staff record", nil)
	}
	return apperrors.NewPersistError(err)
}

// photoObjectKey derives a storage key from the staff name: characters
// outside [a-zA-Z0-9] stripped, lowercased, a millisecond suffix for
// uniqueness and the original file extension (.jpg when unknown).
func photoObjectKey(prefix, fullName, filename string, at time.Time) string {
	var b strings.Builder
	for _, r := range fullName {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	sanitized := strings.ToLower(b.String())

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		ext = ".jpg"
	}
	return fmt.Sprintf("%s%s_%d%s", prefix, sanitized, at.UnixMilli(), ext)
}

// sniffImageType detects the payload type from its magic bytes; file
// extensions are not trusted.
func sniffImageType(data []byte) string {
	return http.DetectContentType(data)
}
