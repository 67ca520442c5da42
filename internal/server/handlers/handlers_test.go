package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository/memory"
	"github.com/sebaaaap/Dashboard-prueba1/internal/service/ingestion"
	"github.com/sebaaaap/Dashboard-prueba1/internal/service/reporting"
	"github.com/sebaaaap/Dashboard-prueba1/internal/tabular"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(fmt.Errorf("%w: bad date", models.ErrValidation)))
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("wrapped: %w", models.ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(fmt.Errorf("%w: timeout", models.ErrStore)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

type brokenStore struct {
	*memory.Repository
}

func (brokenStore) FindDays(context.Context, repository.DayQuery) ([]models.OperatingDay, error) {
	return nil, fmt.Errorf("%w: connection refused", models.ErrStore)
}

func (brokenStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestStoreFailuresHideDetails(t *testing.T) {
	logger := zaptest.NewLogger(t)
	store := brokenStore{memory.NewRepository()}
	h := NewReportsHandler(reporting.NewService(store, time.UTC, logger), logger)

	r := gin.New()
	r.GET("/overview", h.Overview)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/overview", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"data":null,"error":"internal error"}`, rec.Body.String())
}

func TestHealthReportsDisconnectedStore(t *testing.T) {
	h := NewHealthHandler(brokenStore{memory.NewRepository()}, zaptest.NewLogger(t))

	r := gin.New()
	r.GET("/health", h.Health)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","database":"disconnected"}`, rec.Body.String())
}

type stubIngester struct {
	result models.IngestResult
	err    error
	rows   int
}

func (s *stubIngester) Ingest(_ context.Context, ds *tabular.Dataset) (models.IngestResult, error) {
	s.rows = len(ds.Rows)
	return s.result, s.err
}

func (s *stubIngester) SyncSheet(context.Context, ingestion.SheetSource) (models.IngestResult, error) {
	return s.result, s.err
}

type stubSheet struct{}

func (stubSheet) ReadOperations(context.Context) ([][]interface{}, error) { return nil, nil }

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(uploadField, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadFile(t *testing.T) {
	const csv = "fecha,dia_semana\n2024-01-15,Lunes\n2024-01-16,Martes\n"

	t.Run("passes parsed rows to ingestion", func(t *testing.T) {
		ing := &stubIngester{result: models.IngestResult{DaysInserted: 2}}
		h := NewUploadHandler(ing, nil, 1<<20, zaptest.NewLogger(t))
		r := gin.New()
		r.POST("/upload", h.UploadFile)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, "Registro.CSV", csv))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, ing.rows)
		assert.JSONEq(t, `{"message":"Archivo procesado correctamente","resultados":{"days_inserted":2,"services_inserted":0,"costs_inserted":0,"rows_skipped":0}}`, rec.Body.String())
	})

	t.Run("ingestion failure", func(t *testing.T) {
		ing := &stubIngester{err: context.Canceled}
		h := NewUploadHandler(ing, nil, 1<<20, zaptest.NewLogger(t))
		r := gin.New()
		r.POST("/upload", h.UploadFile)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, "registro.csv", csv))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error"`)
	})

	t.Run("legacy xls is rejected", func(t *testing.T) {
		ing := &stubIngester{}
		h := NewUploadHandler(ing, nil, 1<<20, zaptest.NewLogger(t))
		r := gin.New()
		r.POST("/upload", h.UploadFile)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, "registro.xls", csv))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, ing.rows)
	})
}

func TestSyncSheetHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"bad sheet", fmt.Errorf("%w: sheet: dataset is empty", models.ErrValidation), http.StatusBadRequest},
		{"api failure", errors.New("read sheet: 403"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUploadHandler(&stubIngester{err: tt.err}, stubSheet{}, 1<<20, zaptest.NewLogger(t))
			r := gin.New()
			r.POST("/sheet", h.SyncSheet)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sheet", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
