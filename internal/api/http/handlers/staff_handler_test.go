package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hr-portal/internal/api/http"
	"github.com/spec-kit/hr-portal/internal/api/http/handlers"
	"github.com/spec-kit/hr-portal/internal/config"
	"github.com/spec-kit/hr-portal/internal/domain"
	"github.com/spec-kit/hr-portal/internal/observability"
	"github.com/spec-kit/hr-portal/internal/service"
)

var jpegPayload = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x00}, 512)...)

type memRepo struct {
	records []domain.StaffRecord
	seq     int
	now     time.Time
}

func (m *memRepo) Insert(_ context.Context, record *domain.StaffRecord) error {
	m.seq++
	record.ID = fmt.Sprintf("id-%d", m.seq)
	if m.now.IsZero() {
		m.now = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	}
	m.now = m.now.Add(time.Minute)
	record.CreatedAt = m.now
	m.records = append(m.records, *record)
	return nil
}

func (m *memRepo) Update(_ context.Context, id string, patch domain.StaffRecordPatch) (*domain.StaffRecord, error) {
	for i := range m.records {
		if m.records[i].ID != id {
			continue
		}
		if patch.FullName != nil {
			m.records[i].FullName = *patch.FullName
		}
		if patch.Designation != nil {
			m.records[i].Designation = *patch.Designation
		}
		if patch.Location != nil {
			m.records[i].Location = *patch.Location
		}
		if patch.PictureURL != nil {
			m.records[i].PictureURL = *patch.PictureURL
		}
		if patch.ExitDate != nil {
			m.records[i].ExitDate = *patch.ExitDate
		}
		record := m.records[i]
		return &record, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memRepo) SelectAll(context.Context) ([]domain.StaffRecord, error) {
	result := append([]domain.StaffRecord{}, m.records...)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *memRepo) SelectByID(_ context.Context, id string) (*domain.StaffRecord, error) {
	for i := range m.records {
		if m.records[i].ID == id {
			record := m.records[i]
			return &record, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type memStore struct {
	objects map[string][]byte
}

func (m *memStore) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return key, nil
}

func (m *memStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (m *memStore) DeleteByPublicURL(_ context.Context, publicURL string) error {
	delete(m.objects, strings.TrimPrefix(publicURL, "https://cdn.example.com/"))
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *memRepo) {
	t.Helper()

	repo := &memRepo{}
	staffService := service.NewStaffService(service.StaffDependencies{
		RecordRepo: repo,
		Store:      &memStore{},
		Logger:     zap.NewNop(),
		TempDir:    t.TempDir(),
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	staffHandler := handlers.NewStaffHandler(staffService, 5*1024*1024)
	exportHandler := handlers.NewExportHandler(staffService, service.NewExportService())
	app.Post("/api/staff", staffHandler.Create)
	app.Get("/api/staff", staffHandler.List)
	app.Post("/api/staff/:id/exit", staffHandler.Exit)
	app.Get("/api/admin/export-excel", exportHandler.Export)

	return app, repo
}

func intakeRequest(t *testing.T, fields map[string]string, filename string, photo []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, val := range fields {
		require.NoError(t, writer.WriteField(key, val))
	}
	if filename != "" {
		part, err := writer.CreateFormFile(handlers.PhotoFieldName, filename)
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/staff", &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"fullName":       "Jane Doe",
		"resumptionDate": "2024-01-15",
		"location":       "HQ",
		"designation":    "Analyst",
		"hiringOfficer":  "R. Smith",
	}
}

func TestIntakeCreate(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(intakeRequest(t, validFields(), "jane.jpg", jpegPayload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload struct {
		Data struct {
			ID         string `json:"id"`
			FullName   string `json:"full_name"`
			Status     string `json:"status"`
			ExitDate   string `json:"exit_date"`
			PictureURL string `json:"picture_url"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.NotEmpty(t, payload.Data.ID)
	assert.Equal(t, "Jane Doe", payload.Data.FullName)
	assert.Equal(t, "Active", payload.Data.Status)
	assert.Equal(t, "", payload.Data.ExitDate)
	assert.Contains(t, payload.Data.PictureURL, "janedoe_")
}

func TestIntakeCreate_MissingPicture(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(intakeRequest(t, validFields(), "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "VALIDATION_FAILED", payload.Error.Code)
}

func TestIntakeCreate_MissingRequiredField(t *testing.T) {
	app, _ := newTestApp(t)

	fields := validFields()
	delete(fields, "fullName")

	resp, err := app.Test(intakeRequest(t, fields, "jane.jpg", jpegPayload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIntakeCreate_DisallowedFileType(t *testing.T) {
	app, _ := newTestApp(t)

	gif := append([]byte("GIF87a"), bytes.Repeat([]byte{0x00}, 64)...)
	resp, err := app.Test(intakeRequest(t, validFields(), "anim.gif", gif))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMarkExitedEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(intakeRequest(t, validFields(), "jane.jpg", jpegPayload))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	body := strings.NewReader(`{"exitDate":"2024-06-01"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/staff/"+created.Data.ID+"/exit", body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Data struct {
			Status   string `json:"status"`
			ExitDate string `json:"exit_date"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "Exited", updated.Data.Status)
	assert.Equal(t, "2024-06-01", updated.Data.ExitDate)
}

func TestExportEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(intakeRequest(t, validFields(), "jane.jpg", jpegPayload))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/export-excel", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, handlers.ExportContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename=Staff_Records.xlsx`, resp.Header.Get(fiber.HeaderContentDisposition))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestConfigEndpointNeverLeaksServiceKey(t *testing.T) {
	app := fiber.New()
	handler := handlers.NewConfigHandler(config.ClientConfig{
		PublicAPIURL: "https://hr.example.com",
		AnonKey:      "anon-key-123",
	})
	app.Get("/api/config", handler.Get)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/config", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "anon-key-123")
	assert.NotContains(t, string(data), "service-secret")
}
