package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/service/ingestion"
	"github.com/sebaaaap/Dashboard-prueba1/internal/tabular"
)

const uploadField = "file"

// Ingester writes parsed spreadsheets into the store.
type Ingester interface {
	Ingest(ctx context.Context, ds *tabular.Dataset) (models.IngestResult, error)
	SyncSheet(ctx context.Context, src ingestion.SheetSource) (models.IngestResult, error)
}

// UploadHandler accepts spreadsheet uploads and on-demand sheet syncs.
type UploadHandler struct {
	ingester Ingester
	sheet    ingestion.SheetSource
	maxBytes int64
	logger   *zap.Logger
}

// NewUploadHandler constructs the upload handler. sheet may be nil when no Google Sheet is configured.
func NewUploadHandler(ingester Ingester, sheet ingestion.SheetSource, maxBytes int64, logger *zap.Logger) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{ingester: ingester, sheet: sheet, maxBytes: maxBytes, logger: logger}
}

// UploadFile serves POST /upload/excel with a multipart "file" field holding an .xlsx or .csv sheet.
func (h *UploadHandler) UploadFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the upload limit"})
			return
		}
		h.logger.Warn("upload without file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "a file field is required"})
		return
	}

	format, err := tabular.DetectFormat(header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El archivo debe ser Excel (.xlsx) o CSV"})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read the uploaded file"})
		return
	}
	defer file.Close()

	ds, err := tabular.Read(file, format)
	if err != nil {
		h.logger.Warn("unreadable upload", zap.String("filename", header.Filename), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error procesando archivo: " + err.Error()})
		return
	}

	result, err := h.ingester.Ingest(c.Request.Context(), ds)
	if err != nil {
		h.logger.Error("ingestion failed", zap.String("filename", header.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error procesando archivo"})
		return
	}

	h.logger.Info("upload processed", zap.String("filename", header.Filename), zap.Int("days_inserted", result.DaysInserted))
	c.JSON(http.StatusOK, gin.H{"message": "Archivo procesado correctamente", "resultados": result})
}

// SyncSheet serves POST /upload/sheet by ingesting the configured Google Sheet range.
func (h *UploadHandler) SyncSheet(c *gin.Context) {
	if h.sheet == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google sheet sync is not configured"})
		return
	}

	result, err := h.ingester.SyncSheet(c.Request.Context(), h.sheet)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			h.logger.Warn("sheet rejected", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("sheet sync failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sincronizando la hoja"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hoja sincronizada correctamente", "resultados": result})
}
