package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
)

const dateLayout = "2006-01-02"

// Service computes windowed business metrics from the record store. It never writes.
type Service struct {
	store  repository.Store
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service. Calendar days are evaluated in loc.
func NewService(store repository.Store, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, logger: logger, now: time.Now}
}

// totals accumulates operating days over a window.
type totals struct {
	revenue  float64
	profit   float64
	costs    float64
	services int
	days     int
}

func (t totals) averageTicket() float64 {
	return ratio(t.revenue, float64(t.services))
}

func sumDays(days []models.OperatingDay) totals {
	var t totals
	for _, d := range days {
		t.revenue += d.Revenue
		t.profit += d.NetProfit
		t.costs += d.TotalCosts
		t.services += d.ServicesCount
		t.days++
	}
	return t
}

// totalsFor is the single windowed query behind every period comparison.
func (s *Service) totalsFor(ctx context.Context, w Window) (totals, error) {
	days, err := s.daysIn(ctx, w.Range())
	if err != nil {
		return totals{}, err
	}
	return sumDays(days), nil
}

func (s *Service) daysIn(ctx context.Context, r repository.DateRange) ([]models.OperatingDay, error) {
	days, err := s.store.FindDays(ctx, repository.DayQuery{Range: r})
	if err != nil {
		s.logger.Error("load operating days failed", zap.Error(err))
		return nil, fmt.Errorf("load operating days: %w", err)
	}
	return days, nil
}

func (s *Service) servicesIn(ctx context.Context, r repository.DateRange) ([]models.ServiceLine, error) {
	lines, err := s.store.FindServices(ctx, repository.LineQuery{Range: r})
	if err != nil {
		s.logger.Error("load service lines failed", zap.Error(err))
		return nil, fmt.Errorf("load service lines: %w", err)
	}
	return lines, nil
}

func (s *Service) costsIn(ctx context.Context, r repository.DateRange) ([]models.CostLine, error) {
	lines, err := s.store.FindCosts(ctx, repository.LineQuery{Range: r})
	if err != nil {
		s.logger.Error("load cost lines failed", zap.Error(err))
		return nil, fmt.Errorf("load cost lines: %w", err)
	}
	return lines, nil
}

func (s *Service) serviceTotals(ctx context.Context, r repository.DateRange, byMonth bool) ([]repository.ServiceTotal, error) {
	totals, err := s.store.ServiceTotals(ctx, r, byMonth)
	if err != nil {
		s.logger.Error("aggregate service lines failed", zap.Error(err))
		return nil, fmt.Errorf("aggregate service lines: %w", err)
	}
	return totals, nil
}

func (s *Service) monthTotals(ctx context.Context, r repository.DateRange) ([]repository.MonthTotal, error) {
	totals, err := s.store.MonthTotals(ctx, r)
	if err != nil {
		s.logger.Error("aggregate operating days failed", zap.Error(err))
		return nil, fmt.Errorf("aggregate operating days: %w", err)
	}
	return totals, nil
}

// PercentChange is (actual-previous)/previous*100 rounded to two decimals, and 0 when previous is 0.
func PercentChange(actual, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	prev := decimal.NewFromFloat(previous)
	return decimal.NewFromFloat(actual).Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func share(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round2(part / total * 100)
}
