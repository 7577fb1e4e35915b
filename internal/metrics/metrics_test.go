package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Calculations.Inc()
	m.Updates.WithLabelValues("message").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calculations))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Updates.WithLabelValues("message")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "provisionbot_calculations_total 1")
	assert.Contains(t, string(body), `provisionbot_updates_total{kind="message"} 2`)
}
