package models

import "time"

// DayGroup is one (date, weekday) bucket of the monthly summary.
type DayGroup struct {
	Date          time.Time `json:"fecha"`
	Weekday       string    `json:"dia_semana"`
	ServicesCount int       `json:"servicios_atendidos"`
	Revenue       float64   `json:"ingresos_totales"`
}

// MonthlySummary is the all-time overview of services, days and profit.
type MonthlySummary struct {
	RevenueByType      map[string]float64 `json:"ingresos_por_tipo"`
	QuantityByType     map[string]int     `json:"servicios_por_tipo"`
	ServicesByDay      []DayGroup         `json:"servicios_por_dia"`
	TotalProfit        float64            `json:"ganancias_totales"`
	AverageServicesDay float64            `json:"promedio_servicios_dia"`
}

// DateBreakdown is one day of a date-range breakdown.
type DateBreakdown struct {
	Date          time.Time `json:"fecha"`
	ServicesCount int       `json:"total_servicios"`
	Revenue       float64   `json:"ingresos_totales"`
	NetProfit     float64   `json:"ganancia_neta"`
}

// RankedDay is a projection of an operating day without its identifier.
type RankedDay struct {
	Date          time.Time `json:"fecha"`
	Weekday       string    `json:"dia_semana"`
	ServicesCount int       `json:"servicios_atendidos"`
	Revenue       float64   `json:"ingresos_totales"`
	NetProfit     float64   `json:"ganancia_neta"`
}

// DashboardOverview compares the current week with the previous one.
type DashboardOverview struct {
	RevenueToday        float64 `json:"ingresos_hoy"`
	RevenueWeek         float64 `json:"ingresos_semana"`
	RevenueMonth        float64 `json:"ingresos_mes"`
	CustomersToday      int     `json:"clientes_hoy"`
	CustomersWeek       int     `json:"clientes_semana"`
	CustomersMonth      int     `json:"clientes_mes"`
	AverageTicket       float64 `json:"ticket_promedio"`
	RevenueChangePct    float64 `json:"cambio_porcentual_ingresos"`
	CustomersChangePct  float64 `json:"cambio_porcentual_clientes"`
	AverageTicketChange float64 `json:"cambio_porcentual_ticket"`
}

// RevenuePoint is one bar of the weekly revenue chart.
type RevenuePoint struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"ingresos"`
}

// ServicePopularity aggregates one service type over a window.
type ServicePopularity struct {
	Name     string  `json:"name"`
	Quantity int     `json:"cantidad"`
	Revenue  float64 `json:"ingresos"`
}

// Alert severities.
const (
	AlertWarning = "warning"
	AlertSuccess = "success"
)

// Alert flags an unusually quiet or busy day.
type Alert struct {
	ID          string    `json:"id"`
	Kind        string    `json:"tipo"`
	Title       string    `json:"titulo"`
	Description string    `json:"descripcion"`
	Date        time.Time `json:"fecha"`
}

// QuarterlyService holds quantities per month of the first quarter for one service type.
type QuarterlyService struct {
	Service  string  `json:"servicio"`
	January  int     `json:"enero"`
	February int     `json:"febrero"`
	March    int     `json:"marzo"`
	Price    float64 `json:"precio"`
}

// MonthlyFinance sums one calendar month of operating days.
type MonthlyFinance struct {
	Month    string  `json:"mes"`
	Year     int     `json:"anio"`
	Revenue  float64 `json:"ingresos"`
	Expenses float64 `json:"gastos"`
	Profit   float64 `json:"utilidad"`
}

// ExpenseShare is a display category's share of all expenses, in percent.
type ExpenseShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// PeriodRevenue summarizes revenue over a resolved window.
type PeriodRevenue struct {
	Period        string  `json:"periodo"`
	Start         string  `json:"fecha_inicio"`
	End           string  `json:"fecha_fin"`
	Revenue       float64 `json:"ingresos_totales"`
	ServicesCount int     `json:"servicios_totales"`
	NetProfit     float64 `json:"ganancia_neta"`
	AverageTicket float64 `json:"ticket_promedio"`
}

// PeriodTotals are the aggregate figures of a service detail report.
type PeriodTotals struct {
	ServicesCount      int     `json:"servicios_totales"`
	Revenue            float64 `json:"ingresos_totales"`
	NetProfit          float64 `json:"ganancia_neta"`
	Costs              float64 `json:"costos_totales"`
	Days               int     `json:"dias_con_datos"`
	AverageServicesDay float64 `json:"promedio_servicios_dia"`
	AverageTicket      float64 `json:"ticket_promedio"`
}

// ServiceShare is one service type's slice of a period.
type ServiceShare struct {
	Type         ServiceType `json:"tipo"`
	Name         string      `json:"nombre"`
	Quantity     int         `json:"cantidad"`
	Revenue      float64     `json:"ingresos"`
	AveragePrice float64     `json:"precio_promedio"`
	SharePct     float64     `json:"porcentaje"`
}

// DayEvolution is one day of a period's evolution.
type DayEvolution struct {
	Date          string  `json:"fecha"`
	Weekday       string  `json:"dia_semana"`
	ServicesCount int     `json:"servicios"`
	Revenue       float64 `json:"ingresos"`
	NetProfit     float64 `json:"ganancia"`
}

// PeriodServiceDetail breaks a period down by service type and day.
type PeriodServiceDetail struct {
	Period        string         `json:"periodo"`
	Start         string         `json:"fecha_inicio"`
	End           string         `json:"fecha_fin"`
	Totals        PeriodTotals   `json:"resumen"`
	Distribution  []ServiceShare `json:"distribucion"`
	Evolution     []DayEvolution `json:"evolucion"`
	TopService    *ServiceShare  `json:"servicio_top"`
	DatesWithData []string       `json:"fechas_con_datos"`
}

// DayDetail is a stored day with the lines that reference it.
type DayDetail struct {
	Day      OperatingDay  `json:"dia"`
	Services []ServiceLine `json:"servicios"`
	Costs    []CostLine    `json:"costos"`
}
