package ingestion

import (
	"context"
	"fmt"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/tabular"
)

// SheetSource yields the raw rows of a spreadsheet range, header first.
type SheetSource interface {
	ReadOperations(ctx context.Context) ([][]interface{}, error)
}

// SyncSheet ingests the rows currently held by src. Days already stored are
// rejected by the unique date constraint and counted as skipped rows.
func (s *Service) SyncSheet(ctx context.Context, src SheetSource) (models.IngestResult, error) {
	values, err := src.ReadOperations(ctx)
	if err != nil {
		return models.IngestResult{}, fmt.Errorf("read sheet: %w", err)
	}

	ds, err := tabular.FromValues(values)
	if err != nil {
		return models.IngestResult{}, fmt.Errorf("%w: sheet: %w", models.ErrValidation, err)
	}

	return s.Ingest(ctx, ds)
}
