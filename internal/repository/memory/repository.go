package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
)

// Repository is an in-process repository.Store. It mirrors the MongoDB
// implementation, including the unique date constraint on days.
type Repository struct {
	mu       sync.RWMutex
	days     []models.OperatingDay
	services []models.ServiceLine
	costs    []models.CostLine
}

var _ repository.Store = (*Repository)(nil)

// NewRepository returns an empty store.
func NewRepository() *Repository {
	return &Repository{}
}

// InsertDay stores a copy of day and returns its generated identifier.
func (r *Repository) InsertDay(ctx context.Context, day *models.OperatingDay) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrStore, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.days {
		if existing.Date.Equal(day.Date) {
			return "", fmt.Errorf("%w: day %s already stored", models.ErrValidation, day.Date.Format("2006-01-02"))
		}
	}

	stored := *day
	stored.ID = primitive.NewObjectID()
	r.days = append(r.days, stored)
	return stored.ID.Hex(), nil
}

// InsertService stores a copy of line.
func (r *Repository) InsertService(ctx context.Context, line *models.ServiceLine) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrStore, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *line
	stored.ID = primitive.NewObjectID()
	r.services = append(r.services, stored)
	return stored.ID.Hex(), nil
}

// InsertCost stores a copy of line.
func (r *Repository) InsertCost(ctx context.Context, line *models.CostLine) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrStore, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *line
	stored.ID = primitive.NewObjectID()
	r.costs = append(r.costs, stored)
	return stored.ID.Hex(), nil
}

// FindDays filters, sorts and limits days like the MongoDB query does.
func (r *Repository) FindDays(ctx context.Context, q repository.DayQuery) ([]models.OperatingDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStore, err)
	}

	r.mu.RLock()
	out := make([]models.OperatingDay, 0, len(r.days))
	for _, d := range r.days {
		if !q.Range.Contains(d.Date) {
			continue
		}
		if q.State != "" && d.State != q.State {
			continue
		}
		out = append(out, d)
	}
	r.mu.RUnlock()

	switch q.Sort {
	case repository.SortByRevenueDesc:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Revenue != out[j].Revenue {
				return out[i].Revenue > out[j].Revenue
			}
			return out[i].Date.Before(out[j].Date)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// FindServices returns matching service lines ordered by date.
func (r *Repository) FindServices(ctx context.Context, q repository.LineQuery) ([]models.ServiceLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStore, err)
	}

	r.mu.RLock()
	out := make([]models.ServiceLine, 0)
	for _, l := range r.services {
		if q.Range.Contains(l.Date) && (q.DayID == "" || l.DayID == q.DayID) {
			out = append(out, l)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// FindCosts returns matching cost lines ordered by date.
func (r *Repository) FindCosts(ctx context.Context, q repository.LineQuery) ([]models.CostLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStore, err)
	}

	r.mu.RLock()
	out := make([]models.CostLine, 0)
	for _, l := range r.costs {
		if q.Range.Contains(l.Date) && (q.DayID == "" || l.DayID == q.DayID) {
			out = append(out, l)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ServiceTotals groups service lines by type, and by month when byMonth is set.
func (r *Repository) ServiceTotals(ctx context.Context, dr repository.DateRange, byMonth bool) ([]repository.ServiceTotal, error) {
	lines, err := r.FindServices(ctx, repository.LineQuery{Range: dr})
	if err != nil {
		return nil, err
	}

	type key struct {
		typ   models.ServiceType
		month time.Month
	}
	index := make(map[key]int)
	out := make([]repository.ServiceTotal, 0)
	for _, l := range lines {
		k := key{typ: l.Type}
		if byMonth {
			k.month = l.Date.Month()
		}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, repository.ServiceTotal{Type: k.typ, Month: k.month})
		}
		out[i].Quantity += l.Quantity
		out[i].Revenue += l.Revenue
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

// MonthTotals groups operating days by calendar month, oldest first.
func (r *Repository) MonthTotals(ctx context.Context, dr repository.DateRange) ([]repository.MonthTotal, error) {
	days, err := r.FindDays(ctx, repository.DayQuery{Range: dr})
	if err != nil {
		return nil, err
	}

	out := make([]repository.MonthTotal, 0)
	for _, d := range days {
		n := len(out)
		if n == 0 || out[n-1].Year != d.Date.Year() || out[n-1].Month != d.Date.Month() {
			out = append(out, repository.MonthTotal{Year: d.Date.Year(), Month: d.Date.Month()})
			n++
		}
		m := &out[n-1]
		m.Revenue += d.Revenue
		m.Costs += d.TotalCosts
		m.Profit += d.NetProfit
		m.Services += d.ServicesCount
		m.Days++
	}
	return out, nil
}

// Ping always succeeds.
func (r *Repository) Ping(context.Context) error { return nil }

// Close is a no-op.
func (r *Repository) Close(context.Context) error { return nil }
