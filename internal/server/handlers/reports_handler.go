package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/service/reporting"
)

// ReportsHandler exposes the reporting service over HTTP.
type ReportsHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportsHandler constructs the HTTP handler adapter.
func NewReportsHandler(svc *reporting.Service, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{svc: svc, logger: logger}
}

// MonthlySummary serves GET /analytics/resumen-mensual.
func (h *ReportsHandler) MonthlySummary(c *gin.Context) {
	out, err := h.svc.MonthlySummary(c.Request.Context())
	h.reply(c, out, err)
}

// DateRangeBreakdown serves GET /analytics/servicios-por-fecha. Both dates are required.
func (h *ReportsHandler) DateRangeBreakdown(c *gin.Context) {
	start, err := requiredDate(c, "fecha_inicio")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	end, err := requiredDate(c, "fecha_fin")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out, err := h.svc.DateRangeBreakdown(c.Request.Context(), start, end)
	h.reply(c, out, err)
}

// TopDays serves GET /analytics/top-dias.
func (h *ReportsHandler) TopDays(c *gin.Context) {
	n := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, h.logger, fmt.Errorf("%w: limit %q is not an integer", models.ErrValidation, raw))
			return
		}
		n = v
	}

	out, err := h.svc.TopDays(c.Request.Context(), n)
	h.reply(c, out, err)
}

// DayDetail serves GET /analytics/dias/:fecha.
func (h *ReportsHandler) DayDetail(c *gin.Context) {
	date, err := reporting.ParseDate(c.Param("fecha"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out, err := h.svc.DayDetail(c.Request.Context(), date)
	h.reply(c, out, err)
}

// Overview serves GET /api/dashboard/overview.
func (h *ReportsHandler) Overview(c *gin.Context) {
	out, err := h.svc.DashboardOverview(c.Request.Context())
	h.reply(c, out, err)
}

// WeeklyRevenue serves GET /api/dashboard/revenue-weekly.
func (h *ReportsHandler) WeeklyRevenue(c *gin.Context) {
	w, err := optionalWindow(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out, err := h.svc.WeeklyRevenue(c.Request.Context(), w)
	h.reply(c, out, err)
}

// PopularServices serves GET /api/dashboard/services-popular.
func (h *ReportsHandler) PopularServices(c *gin.Context) {
	w, err := optionalWindow(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out, err := h.svc.PopularServices(c.Request.Context(), w)
	h.reply(c, out, err)
}

// Alerts serves GET /api/dashboard/alerts.
func (h *ReportsHandler) Alerts(c *gin.Context) {
	out, err := h.svc.Alerts(c.Request.Context())
	h.reply(c, out, err)
}

// QuarterlyEvolution serves GET /api/servicios/evolucion-trimestral.
func (h *ReportsHandler) QuarterlyEvolution(c *gin.Context) {
	out, err := h.svc.QuarterlyEvolution(c.Request.Context())
	h.reply(c, out, err)
}

// MonthlyFinance serves GET /api/finanzas/mensual.
func (h *ReportsHandler) MonthlyFinance(c *gin.Context) {
	out, err := h.svc.MonthlyFinance(c.Request.Context())
	h.reply(c, out, err)
}

// ExpenseDistribution serves GET /api/finanzas/gastos-distribucion.
func (h *ReportsHandler) ExpenseDistribution(c *gin.Context) {
	out, err := h.svc.ExpenseDistribution(c.Request.Context())
	h.reply(c, out, err)
}

// PeriodRevenue serves GET /api/ingresos/resumen.
func (h *ReportsHandler) PeriodRevenue(c *gin.Context) {
	req, err := periodRequest(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out, err := h.svc.PeriodRevenue(c.Request.Context(), req)
	h.reply(c, out, err)
}

// PeriodServiceDetail serves GET /api/servicios/detalle.
func (h *ReportsHandler) PeriodServiceDetail(c *gin.Context) {
	req, err := periodRequest(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out, err := h.svc.PeriodServiceDetail(c.Request.Context(), req)
	h.reply(c, out, err)
}

func (h *ReportsHandler) reply(c *gin.Context, data any, err error) {
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, data)
}

func requiredDate(c *gin.Context, key string) (time.Time, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", models.ErrValidation, key)
	}
	return reporting.ParseDate(raw)
}

func optionalDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := reporting.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// optionalWindow returns nil unless both dates are given, letting the service pick its default.
func optionalWindow(c *gin.Context) (*reporting.Window, error) {
	start, err := optionalDate(c, "fecha_inicio")
	if err != nil {
		return nil, err
	}
	end, err := optionalDate(c, "fecha_fin")
	if err != nil {
		return nil, err
	}

	if start == nil || end == nil {
		return nil, nil
	}

	w, err := reporting.NewWindow(*start, *end)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func periodRequest(c *gin.Context) (reporting.PeriodRequest, error) {
	start, err := optionalDate(c, "fecha_inicio")
	if err != nil {
		return reporting.PeriodRequest{}, err
	}
	end, err := optionalDate(c, "fecha_fin")
	if err != nil {
		return reporting.PeriodRequest{}, err
	}
	return reporting.PeriodRequest{Period: c.Query("periodo"), Start: start, End: end}, nil
}
