package ingestion

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
	"github.com/sebaaaap/Dashboard-prueba1/internal/tabular"
)

// Spreadsheet columns read for every business day.
const (
	colDate        = "fecha"
	colWeekday     = "dia_semana"
	colOpening     = "hora_apertura"
	colClosing     = "hora_cierre"
	colServices    = "servicios_atendidos"
	colRevenue     = "ingresos_servicios"
	colNetProfit   = "ganancia_neta"
	quantityPrefix = "servicios_"
	revenuePrefix  = "ingresos_"
)

var costColumns = map[models.CostCategory]string{
	models.CostRawMaterials:  "costo_materia_prima",
	models.CostBasicSupplies: "insumos_basicos",
	models.CostPayroll:       "costo_sueldos",
	models.CostRent:          "arriendo_pagado",
}

// Recorder receives the outcome of every finished batch.
type Recorder interface {
	ObserveIngest(models.IngestResult)
}

// Service turns spreadsheet rows into operating days with their service and cost lines.
type Service struct {
	store    repository.Store
	logger   *zap.Logger
	recorder Recorder
}

// NewService wires a new ingestion pipeline.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// WithRecorder reports batch counts to r, including partial counts of interrupted batches.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// Ingest writes one operating day per row, followed by the row's service and cost lines.
// A row whose day cannot be built or stored is skipped entirely; a failing line only skips
// that line. Earlier inserts are never rolled back. The only error returned is a cancelled
// context, together with the counts reached so far.
func (s *Service) Ingest(ctx context.Context, ds *tabular.Dataset) (models.IngestResult, error) {
	var result models.IngestResult
	if ds == nil {
		return result, nil
	}

	if s.recorder != nil {
		defer func() { s.recorder.ObserveIngest(result) }()
	}

	batchID := uuid.NewString()
	logger := s.logger.With(zap.String("batch_id", batchID))
	logger.Info("ingestion started", zap.Int("rows", len(ds.Rows)))

	for _, row := range ds.Rows {
		if err := ctx.Err(); err != nil {
			logger.Warn("ingestion interrupted", zap.Error(err), zap.Int("line", row.Line))
			return result, err
		}

		day, err := buildDay(row)
		if err != nil {
			result.RowsSkipped++
			logger.Warn("skip row with invalid day", zap.Int("line", row.Line), zap.Error(err))
			continue
		}

		dayID, err := s.store.InsertDay(ctx, &day)
		if err != nil {
			result.RowsSkipped++
			logger.Warn("skip row whose day could not be stored", zap.Int("line", row.Line), zap.Error(err))
			continue
		}
		result.DaysInserted++

		result.ServicesInserted += s.insertServices(ctx, logger, row, day, dayID)
		result.CostsInserted += s.insertCosts(ctx, logger, row, day, dayID)
	}

	logger.Info("ingestion finished",
		zap.Int("days_inserted", result.DaysInserted),
		zap.Int("services_inserted", result.ServicesInserted),
		zap.Int("costs_inserted", result.CostsInserted),
		zap.Int("rows_skipped", result.RowsSkipped))

	return result, nil
}

func (s *Service) insertServices(ctx context.Context, logger *zap.Logger, row tabular.Row, day models.OperatingDay, dayID string) int {
	inserted := 0
	for _, serviceType := range models.ServiceTypes {
		line, ok, err := buildServiceLine(row, serviceType, day.Date, dayID)
		if err != nil {
			logger.Warn("skip service line", zap.Int("line", row.Line), zap.String("tipo_servicio", string(serviceType)), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		if _, err := s.store.InsertService(ctx, &line); err != nil {
			logger.Warn("service line not stored", zap.Int("line", row.Line), zap.String("tipo_servicio", string(serviceType)), zap.Error(err))
			continue
		}
		inserted++
	}
	return inserted
}

func (s *Service) insertCosts(ctx context.Context, logger *zap.Logger, row tabular.Row, day models.OperatingDay, dayID string) int {
	inserted := 0
	for _, category := range models.CostCategories {
		amount, err := row.FloatOrZero(costColumns[category])
		if err != nil {
			logger.Warn("skip cost line", zap.Int("line", row.Line), zap.String("tipo_costo", string(category)), zap.Error(err))
			continue
		}
		if amount <= 0 {
			continue
		}

		line := models.CostLine{
			DayID:       dayID,
			Date:        day.Date,
			Category:    category,
			Amount:      amount,
			Description: category.Description(),
		}
		if _, err := s.store.InsertCost(ctx, &line); err != nil {
			logger.Warn("cost line not stored", zap.Int("line", row.Line), zap.String("tipo_costo", string(category)), zap.Error(err))
			continue
		}
		inserted++
	}
	return inserted
}

func buildDay(row tabular.Row) (models.OperatingDay, error) {
	var day models.OperatingDay

	date, err := row.Date(colDate)
	if err != nil {
		return day, err
	}
	weekday, err := row.String(colWeekday)
	if err != nil {
		return day, err
	}
	opening, err := row.Clock(colOpening)
	if err != nil {
		return day, err
	}

	state := models.DayOpen
	schedule := models.Schedule{Opening: opening}
	if strings.EqualFold(opening, models.ClosedSentinel) {
		state = models.DayClosed
		schedule = models.Schedule{Opening: models.ClosedSentinel, Closing: models.ClosedSentinel}
	} else if schedule.Closing, err = row.Clock(colClosing); err != nil {
		return day, err
	}

	services, err := row.Int(colServices)
	if err != nil {
		return day, err
	}
	revenue, err := row.Float(colRevenue)
	if err != nil {
		return day, err
	}
	profit, err := row.Float(colNetProfit)
	if err != nil {
		return day, err
	}

	var totalCosts float64
	for _, category := range models.CostCategories {
		amount, err := row.FloatOrZero(costColumns[category])
		if err != nil {
			return day, err
		}
		totalCosts += amount
	}

	return models.OperatingDay{
		Date:          date,
		Weekday:       weekday,
		Schedule:      schedule,
		State:         state,
		ServicesCount: services,
		Revenue:       revenue,
		NetProfit:     profit,
		TotalCosts:    totalCosts,
	}, nil
}

// buildServiceLine returns ok=false when the row reports no activity for the type.
func buildServiceLine(row tabular.Row, serviceType models.ServiceType, date time.Time, dayID string) (models.ServiceLine, bool, error) {
	quantity, err := row.Int(quantityPrefix + string(serviceType))
	if err != nil {
		return models.ServiceLine{}, false, err
	}
	if quantity <= 0 {
		return models.ServiceLine{}, false, nil
	}

	revenue, err := row.Float(revenuePrefix + string(serviceType))
	if err != nil {
		return models.ServiceLine{}, false, err
	}

	return models.ServiceLine{
		DayID:     dayID,
		Date:      date,
		Type:      serviceType,
		Quantity:  quantity,
		Revenue:   revenue,
		UnitPrice: serviceType.ListPrice(),
	}, true, nil
}
