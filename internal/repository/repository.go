package repository

import (
	"context"
	"time"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
)

// Collection names shared by every Store implementation.
const (
	DaysCollection     = "dias_operacion"
	ServicesCollection = "servicios"
	CostsCollection    = "costos"
)

// DateRange is an inclusive range over the stored fecha field. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Between builds a closed range.
func Between(from, to time.Time) DateRange {
	return DateRange{From: &from, To: &to}
}

// Since builds a range without an upper bound.
func Since(from time.Time) DateRange {
	return DateRange{From: &from}
}

// Contains reports whether t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// DaySort selects the order of FindDays results.
type DaySort int

const (
	SortByDateAsc DaySort = iota
	SortByRevenueDesc
)

// DayQuery filters operating days.
type DayQuery struct {
	Range DateRange
	State models.DayState
	Sort  DaySort
	Limit int
}

// LineQuery filters service and cost lines. Results are ordered by date.
type LineQuery struct {
	Range DateRange
	DayID string
}

// ServiceTotal sums service lines of one type. Month is zero unless the totals were
// grouped by calendar month, in which case every year's lines for that month are merged.
type ServiceTotal struct {
	Type     models.ServiceType
	Month    time.Month
	Quantity int
	Revenue  float64
}

// MonthTotal sums the operating days of one calendar month.
type MonthTotal struct {
	Year     int
	Month    time.Month
	Revenue  float64
	Costs    float64
	Profit   float64
	Services int
	Days     int
}

// Store persists operating days together with their service and cost lines.
type Store interface {
	InsertDay(ctx context.Context, day *models.OperatingDay) (string, error)
	InsertService(ctx context.Context, line *models.ServiceLine) (string, error)
	InsertCost(ctx context.Context, line *models.CostLine) (string, error)
	FindDays(ctx context.Context, q DayQuery) ([]models.OperatingDay, error)
	FindServices(ctx context.Context, q LineQuery) ([]models.ServiceLine, error)
	FindCosts(ctx context.Context, q LineQuery) ([]models.CostLine, error)
	// ServiceTotals groups service lines by type, and by month when byMonth is set.
	// Results are ordered by type, then month.
	ServiceTotals(ctx context.Context, r DateRange, byMonth bool) ([]ServiceTotal, error)
	// MonthTotals groups operating days by calendar month, oldest first.
	MonthTotals(ctx context.Context, r DateRange) ([]MonthTotal, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
