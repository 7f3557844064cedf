package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/api/health", "200"))
	unmatchedBefore := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "unmatched", "404"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/api/health", "200")))
	assert.Equal(t, unmatchedBefore+1, testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestPrometheusHandlerExposesLessonMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()
	Init()

	QuestionsGenerated.WithLabelValues("mcq").Inc()
	PersistFailures.WithLabelValues("file").Inc()

	r := gin.New()
	r.GET("/metrics", PrometheusHandler())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(body, `lesson_questions_generated_total{type="mcq"}`))
	assert.True(t, strings.Contains(body, `lesson_persist_failures_total{backend="file"}`))
}
