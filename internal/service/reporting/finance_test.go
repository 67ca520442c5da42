package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
)

func TestQuarterlyEvolution(t *testing.T) {
	f := newFixture(t)
	jan := f.day(date(time.January, 10), "Miércoles", 0, 0, 0, 0)
	feb := f.day(date(time.February, 10), "Sábado", 0, 0, 0, 0)
	apr := f.day(date(time.April, 10), "Miércoles", 0, 0, 0, 0)
	f.service(jan, date(time.January, 10), models.ServiceNormal, 4, 60000)
	f.service(feb, date(time.February, 10), models.ServiceNormal, 2, 30000)
	f.service(feb, date(time.February, 10), models.ServiceFullPremium, 1, 35000)
	f.service(apr, date(time.April, 10), models.ServiceNormal, 9, 135000)

	got, err := f.svc.QuarterlyEvolution(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.QuarterlyService{
		{Service: "Full Premium", February: 1, Price: 25000},
		{Service: "Normal", January: 4, February: 2, Price: 15000},
	}, got)
}

func TestReferencePrice(t *testing.T) {
	assert.Equal(t, 15000.0, referencePrice(models.ServiceNormal))
	assert.Equal(t, 25000.0, referencePrice(models.ServicePremium))
	assert.Equal(t, 25000.0, referencePrice(models.ServiceFullPremium))
	assert.Equal(t, 35000.0, referencePrice("encerado"))
}

func TestMonthlyFinanceKeepsSixMostRecentMonths(t *testing.T) {
	f := newFixture(t)
	for m := time.January; m <= time.July; m++ {
		f.day(time.Date(2024, m, 5, 0, 0, 0, 0, time.UTC), "Dia", 1, float64(m)*1000, float64(m)*400, float64(m)*600)
	}
	f.day(date(time.July, 6), "Dia", 1, 500, 200, 300)
	f.day(time.Date(2023, time.December, 5, 0, 0, 0, 0, time.UTC), "Dia", 1, 1, 1, 0)

	got, err := f.svc.MonthlyFinance(f.ctx)
	require.NoError(t, err)
	require.Len(t, got, 6)

	assert.Equal(t, models.MonthlyFinance{Month: "Feb", Year: 2024, Revenue: 2000, Expenses: 1200, Profit: 800}, got[0])
	assert.Equal(t, models.MonthlyFinance{Month: "Jul", Year: 2024, Revenue: 7500, Expenses: 4500, Profit: 3000}, got[5])
}

func TestExpenseDistribution(t *testing.T) {
	f := newFixture(t)
	id := f.day(date(time.January, 15), "Lunes", 0, 0, 0, 0)
	f.cost(id, date(time.January, 15), models.CostPayroll, 30)
	f.cost(id, date(time.January, 15), models.CostRent, 70)
	f.cost(id, date(time.January, 15), models.CostRawMaterials, 0)

	got, err := f.svc.ExpenseDistribution(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ExpenseShare{
		{Name: models.DisplayStaff, Value: 30},
		{Name: models.DisplayRent, Value: 70},
	}, got)

	t.Run("unknown categories collapse into other", func(t *testing.T) {
		f.cost(id, date(time.January, 15), "lavado_alfombras", 100)
		got, err := f.svc.ExpenseDistribution(f.ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, models.ExpenseShare{Name: models.DisplayOther, Value: 50}, got[2])
	})
}

func TestExpenseDistributionEmpty(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.ExpenseDistribution(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
