package reporting

import (
	"context"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
)

// PeriodRevenue sums revenue, services and profit over the requested period.
func (s *Service) PeriodRevenue(ctx context.Context, req PeriodRequest) (models.PeriodRevenue, error) {
	w, label, err := s.ResolvePeriod(req)
	if err != nil {
		return models.PeriodRevenue{}, err
	}

	t, err := s.totalsFor(ctx, w)
	if err != nil {
		return models.PeriodRevenue{}, err
	}

	return models.PeriodRevenue{
		Period:        label,
		Start:         w.Start.Format(dateLayout),
		End:           w.End.Format(dateLayout),
		Revenue:       t.revenue,
		ServicesCount: t.services,
		NetProfit:     t.profit,
		AverageTicket: round2(t.averageTicket()),
	}, nil
}

// PeriodServiceDetail breaks the requested period down by service type and by day.
func (s *Service) PeriodServiceDetail(ctx context.Context, req PeriodRequest) (models.PeriodServiceDetail, error) {
	w, label, err := s.ResolvePeriod(req)
	if err != nil {
		return models.PeriodServiceDetail{}, err
	}

	days, err := s.daysIn(ctx, w.Range())
	if err != nil {
		return models.PeriodServiceDetail{}, err
	}
	lines, err := s.servicesIn(ctx, w.Range())
	if err != nil {
		return models.PeriodServiceDetail{}, err
	}

	t := sumDays(days)
	out := models.PeriodServiceDetail{
		Period: label,
		Start:  w.Start.Format(dateLayout),
		End:    w.End.Format(dateLayout),
		Totals: models.PeriodTotals{
			ServicesCount:      t.services,
			Revenue:            t.revenue,
			NetProfit:          t.profit,
			Costs:              t.costs,
			Days:               t.days,
			AverageServicesDay: round2(ratio(float64(t.services), float64(t.days))),
			AverageTicket:      round2(t.averageTicket()),
		},
		Distribution:  []models.ServiceShare{},
		Evolution:     make([]models.DayEvolution, 0, len(days)),
		DatesWithData: make([]string, 0, len(days)),
	}

	groups := groupByType(lines)
	var quantity int
	for _, g := range groups {
		quantity += g.quantity
	}
	for _, g := range groups {
		out.Distribution = append(out.Distribution, models.ServiceShare{
			Type:         g.serviceType,
			Name:         g.serviceType.Label(),
			Quantity:     g.quantity,
			Revenue:      g.revenue,
			AveragePrice: round2(ratio(g.revenue, float64(g.quantity))),
			SharePct:     share(float64(g.quantity), float64(quantity)),
		})
	}
	if len(out.Distribution) > 0 {
		top := out.Distribution[0]
		out.TopService = &top
	}

	for _, d := range days {
		date := d.Date.Format(dateLayout)
		out.Evolution = append(out.Evolution, models.DayEvolution{
			Date:          date,
			Weekday:       d.Weekday,
			ServicesCount: d.ServicesCount,
			Revenue:       d.Revenue,
			NetProfit:     d.NetProfit,
		})
		out.DatesWithData = append(out.DatesWithData, date)
	}

	return out, nil
}
