package reporting

import (
	"context"
	"strings"
	"time"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
)

const financeMonths = 6

var monthAbbreviations = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// QuarterlyEvolution reports quantities per service type for January to March.
// Other months are not represented.
func (s *Service) QuarterlyEvolution(ctx context.Context) ([]models.QuarterlyService, error) {
	totals, err := s.serviceTotals(ctx, repository.DateRange{}, true)
	if err != nil {
		return nil, err
	}

	out := make([]models.QuarterlyService, 0)
	for _, t := range totals {
		n := len(out)
		if n == 0 || out[n-1].Service != t.Type.Label() {
			out = append(out, models.QuarterlyService{Service: t.Type.Label(), Price: referencePrice(t.Type)})
			n++
		}
		rec := &out[n-1]
		switch t.Month {
		case time.January:
			rec.January += t.Quantity
		case time.February:
			rec.February += t.Quantity
		case time.March:
			rec.March += t.Quantity
		}
	}
	return out, nil
}

// referencePrice infers a price from the type name, so full_premium matches "premium".
func referencePrice(t models.ServiceType) float64 {
	name := string(t)
	switch {
	case strings.Contains(name, "normal"):
		return 15000
	case strings.Contains(name, "premium"):
		return 25000
	default:
		return 35000
	}
}

// MonthlyFinance sums revenue, costs and profit per calendar month for the 6 most recent months with data.
func (s *Service) MonthlyFinance(ctx context.Context) ([]models.MonthlyFinance, error) {
	totals, err := s.monthTotals(ctx, repository.DateRange{})
	if err != nil {
		return nil, err
	}
	if len(totals) > financeMonths {
		totals = totals[len(totals)-financeMonths:]
	}

	out := make([]models.MonthlyFinance, 0, len(totals))
	for _, m := range totals {
		out = append(out, models.MonthlyFinance{
			Month:    monthAbbreviations[m.Month-1],
			Year:     m.Year,
			Revenue:  m.Revenue,
			Expenses: m.Costs,
			Profit:   m.Profit,
		})
	}
	return out, nil
}

// ExpenseDistribution reports each display category's percentage of all positive expenses.
func (s *Service) ExpenseDistribution(ctx context.Context) ([]models.ExpenseShare, error) {
	lines, err := s.costsIn(ctx, repository.DateRange{})
	if err != nil {
		return nil, err
	}

	amounts := make(map[string]float64)
	var total float64
	for _, l := range lines {
		if l.Amount <= 0 {
			continue
		}
		amounts[l.Category.DisplayCategory()] += l.Amount
		total += l.Amount
	}

	out := make([]models.ExpenseShare, 0, len(amounts))
	for _, category := range models.DisplayCategories {
		amount, ok := amounts[category]
		if !ok {
			continue
		}
		out = append(out, models.ExpenseShare{Name: category, Value: share(amount, total)})
	}
	return out, nil
}
