package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
)

const (
	revenueLookbackDays    = 6
	popularityLookbackDays = 7
	alertLookback          = 7 * 24 * time.Hour
	lowActivityThreshold   = 5
	highActivityThreshold  = 15
	maxAlerts              = 10
)

// DashboardOverview reports today, this week and this month, and compares the week with the previous one.
func (s *Service) DashboardOverview(ctx context.Context) (models.DashboardOverview, error) {
	var out models.DashboardOverview

	today, err := s.totalsFor(ctx, s.todayWindow())
	if err != nil {
		return out, err
	}
	week, err := s.totalsFor(ctx, s.thisWeek())
	if err != nil {
		return out, err
	}
	month, err := s.totalsFor(ctx, s.thisMonth())
	if err != nil {
		return out, err
	}
	previous, err := s.totalsFor(ctx, s.previousWeek())
	if err != nil {
		return out, err
	}

	ticket := week.averageTicket()
	previousTicket := previous.averageTicket()

	return models.DashboardOverview{
		RevenueToday:        today.revenue,
		RevenueWeek:         week.revenue,
		RevenueMonth:        month.revenue,
		CustomersToday:      today.services,
		CustomersWeek:       week.services,
		CustomersMonth:      month.services,
		AverageTicket:       round2(ticket),
		RevenueChangePct:    PercentChange(week.revenue, previous.revenue),
		CustomersChangePct:  PercentChange(float64(week.services), float64(previous.services)),
		AverageTicketChange: PercentChange(ticket, previousTicket),
	}, nil
}

// WeeklyRevenue lists each day's revenue in w, or over the last 7 calendar days when w is nil.
func (s *Service) WeeklyRevenue(ctx context.Context, w *Window) ([]models.RevenuePoint, error) {
	window := s.lookback(revenueLookbackDays)
	if w != nil {
		window = *w
	}

	days, err := s.daysIn(ctx, window.Range())
	if err != nil {
		return nil, err
	}

	out := make([]models.RevenuePoint, 0, len(days))
	for _, d := range days {
		out = append(out, models.RevenuePoint{Name: shortName(d.Weekday), Revenue: d.Revenue})
	}
	return out, nil
}

// PopularServices ranks service types by quantity in w, or over [today-7, today] when w is nil.
func (s *Service) PopularServices(ctx context.Context, w *Window) ([]models.ServicePopularity, error) {
	window := s.lookback(popularityLookbackDays)
	if w != nil {
		window = *w
	}

	lines, err := s.servicesIn(ctx, window.Range())
	if err != nil {
		return nil, err
	}

	groups := groupByType(lines)
	out := make([]models.ServicePopularity, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.ServicePopularity{Name: g.serviceType.Label(), Quantity: g.quantity, Revenue: g.revenue})
	}
	return out, nil
}

// Alerts flags days of the last week with fewer than 5 or more than 15 services, newest first.
func (s *Service) Alerts(ctx context.Context) ([]models.Alert, error) {
	days, err := s.daysIn(ctx, repository.Since(s.wallClock().Add(-alertLookback)))
	if err != nil {
		return nil, err
	}

	var low, high []models.Alert
	for _, d := range days {
		switch {
		case d.ServicesCount < lowActivityThreshold:
			low = append(low, models.Alert{
				ID:          "baja_" + d.Date.Format("20060102"),
				Kind:        models.AlertWarning,
				Title:       fmt.Sprintf("Baja actividad el %s", d.Weekday),
				Description: fmt.Sprintf("Solo %d servicios atendidos", d.ServicesCount),
				Date:        d.Date,
			})
		case d.ServicesCount > highActivityThreshold:
			high = append(high, models.Alert{
				ID:          "alta_" + d.Date.Format("20060102"),
				Kind:        models.AlertSuccess,
				Title:       fmt.Sprintf("Alta actividad el %s", d.Weekday),
				Description: fmt.Sprintf("Excelente: %d servicios atendidos", d.ServicesCount),
				Date:        d.Date,
			})
		}
	}

	alerts := append(low, high...)
	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].Date.After(alerts[j].Date) })
	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	return alerts, nil
}

// AlertDigest renders Alerts as a short text message.
func (s *Service) AlertDigest(ctx context.Context) (string, error) {
	alerts, err := s.Alerts(ctx)
	if err != nil {
		return "", err
	}
	if len(alerts) == 0 {
		return "Lavadero: sin alertas en los últimos 7 días.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Lavadero: %d alertas en los últimos 7 días", len(alerts))
	for _, a := range alerts {
		fmt.Fprintf(&b, "\n- %s %s: %s", a.Date.Format(dateLayout), a.Title, a.Description)
	}
	return b.String(), nil
}

func shortName(weekday string) string {
	runes := []rune(weekday)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

type typeGroup struct {
	serviceType models.ServiceType
	quantity    int
	revenue     float64
}

// groupByType sums lines per service type, largest quantity first.
func groupByType(lines []models.ServiceLine) []typeGroup {
	index := make(map[models.ServiceType]int)
	var groups []typeGroup
	for _, l := range lines {
		i, ok := index[l.Type]
		if !ok {
			i = len(groups)
			index[l.Type] = i
			groups = append(groups, typeGroup{serviceType: l.Type})
		}
		groups[i].quantity += l.Quantity
		groups[i].revenue += l.Revenue
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].quantity != groups[j].quantity {
			return groups[i].quantity > groups[j].quantity
		}
		return groups[i].serviceType < groups[j].serviceType
	})
	return groups
}
