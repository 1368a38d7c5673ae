package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTransition(t *testing.T) {
	before := testutil.ToFloat64(transitions.WithLabelValues("MECHANIC", "ACEPTADO", "EN_CAMINO", OutcomeOK))
	ObserveTransition("MECHANIC", "ACEPTADO", "EN_CAMINO", OutcomeOK)
	after := testutil.ToFloat64(transitions.WithLabelValues("MECHANIC", "ACEPTADO", "EN_CAMINO", OutcomeOK))
	assert.Equal(t, before+1, after)
}

func TestObserveAssignmentAndNotification(t *testing.T) {
	a := testutil.ToFloat64(assignments.WithLabelValues(OutcomeRejected))
	n := testutil.ToFloat64(notifications.WithLabelValues(OutcomeDropped))
	ObserveAssignment(OutcomeRejected)
	ObserveNotification(OutcomeDropped)
	assert.Equal(t, a+1, testutil.ToFloat64(assignments.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, n+1, testutil.ToFloat64(notifications.WithLabelValues(OutcomeDropped)))
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/v1/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, testutil.CollectAndCount(requestDuration, namespace+"_http_request_duration_seconds"))
}
