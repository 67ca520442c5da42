package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
)

const (
	defaultTopDays = 5
	maxTopDays     = 100
)

// MonthlySummary aggregates every stored record: revenue and quantity per service type,
// services and revenue per day, total profit and the average number of services per day.
func (s *Service) MonthlySummary(ctx context.Context) (models.MonthlySummary, error) {
	out := models.MonthlySummary{
		RevenueByType:  map[string]float64{},
		QuantityByType: map[string]int{},
		ServicesByDay:  []models.DayGroup{},
	}

	totals, err := s.serviceTotals(ctx, repository.DateRange{}, false)
	if err != nil {
		return out, err
	}
	for _, t := range totals {
		out.RevenueByType[string(t.Type)] += t.Revenue
		out.QuantityByType[string(t.Type)] += t.Quantity
	}

	days, err := s.daysIn(ctx, repository.DateRange{})
	if err != nil {
		return out, err
	}

	type dayKey struct {
		date    time.Time
		weekday string
	}
	index := make(map[dayKey]int)
	for _, d := range days {
		key := dayKey{date: d.Date, weekday: d.Weekday}
		i, ok := index[key]
		if !ok {
			i = len(out.ServicesByDay)
			index[key] = i
			out.ServicesByDay = append(out.ServicesByDay, models.DayGroup{Date: d.Date, Weekday: d.Weekday})
		}
		out.ServicesByDay[i].ServicesCount += d.ServicesCount
		out.ServicesByDay[i].Revenue += d.Revenue
	}
	sort.SliceStable(out.ServicesByDay, func(i, j int) bool {
		return out.ServicesByDay[i].Date.Before(out.ServicesByDay[j].Date)
	})

	t := sumDays(days)
	out.TotalProfit = t.profit
	out.AverageServicesDay = ratio(float64(t.services), float64(t.days))
	return out, nil
}

// DateRangeBreakdown sums services, revenue and profit per date between start and end inclusive.
func (s *Service) DateRangeBreakdown(ctx context.Context, start, end time.Time) ([]models.DateBreakdown, error) {
	w, err := NewWindow(start, end)
	if err != nil {
		return nil, err
	}

	days, err := s.daysIn(ctx, w.Range())
	if err != nil {
		return nil, err
	}

	index := make(map[time.Time]int)
	out := make([]models.DateBreakdown, 0, len(days))
	for _, d := range days {
		i, ok := index[d.Date]
		if !ok {
			i = len(out)
			index[d.Date] = i
			out = append(out, models.DateBreakdown{Date: d.Date})
		}
		out[i].ServicesCount += d.ServicesCount
		out[i].Revenue += d.Revenue
		out[i].NetProfit += d.NetProfit
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// TopDays returns the n open days with the highest revenue. n <= 0 selects the default of 5.
func (s *Service) TopDays(ctx context.Context, n int) ([]models.RankedDay, error) {
	if n <= 0 {
		n = defaultTopDays
	}
	if n > maxTopDays {
		n = maxTopDays
	}

	days, err := s.store.FindDays(ctx, repository.DayQuery{
		State: models.DayOpen,
		Sort:  repository.SortByRevenueDesc,
		Limit: n,
	})
	if err != nil {
		return nil, fmt.Errorf("load top days: %w", err)
	}

	out := make([]models.RankedDay, 0, len(days))
	for _, d := range days {
		out = append(out, models.RankedDay{
			Date:          d.Date,
			Weekday:       d.Weekday,
			ServicesCount: d.ServicesCount,
			Revenue:       d.Revenue,
			NetProfit:     d.NetProfit,
		})
	}
	return out, nil
}

// DayDetail returns the day stored for date together with the lines linked to it.
func (s *Service) DayDetail(ctx context.Context, date time.Time) (models.DayDetail, error) {
	date = truncateDay(date)
	days, err := s.daysIn(ctx, repository.Between(date, date))
	if err != nil {
		return models.DayDetail{}, err
	}
	if len(days) == 0 {
		return models.DayDetail{}, fmt.Errorf("%w: no operating day stored for %s", models.ErrNotFound, date.Format(dateLayout))
	}

	day := days[0]
	services, err := s.store.FindServices(ctx, repository.LineQuery{DayID: day.ID.Hex()})
	if err != nil {
		return models.DayDetail{}, fmt.Errorf("load service lines: %w", err)
	}
	costs, err := s.store.FindCosts(ctx, repository.LineQuery{DayID: day.ID.Hex()})
	if err != nil {
		return models.DayDetail{}, fmt.Errorf("load cost lines: %w", err)
	}

	return models.DayDetail{Day: day, Services: services, Costs: costs}, nil
}
