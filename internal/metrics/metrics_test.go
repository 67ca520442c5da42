package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
)

func TestObserveIngest(t *testing.T) {
	m := New()
	m.ObserveIngest(models.IngestResult{DaysInserted: 2, ServicesInserted: 4, CostsInserted: 3, RowsSkipped: 1})
	m.ObserveIngest(models.IngestResult{DaysInserted: 1})

	assert.Equal(t, 3.0, testutil.ToFloat64(m.records.WithLabelValues("day")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.records.WithLabelValues("service")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.records.WithLabelValues("skipped_row")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/analytics/dias/:fecha", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/analytics/dias/2024-01-15", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/analytics/dias/:fecha", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unmatched", "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "carwash_http_requests_total")
}
