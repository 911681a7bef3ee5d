package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiterPerHost(t *testing.T) {
	cl := NewClientLimiter(0.001, 1)
	assert.True(t, cl.Allow("10.0.0.1:5000"))
	assert.False(t, cl.Allow("10.0.0.1:5001"), "same host, new port")
	assert.True(t, cl.Allow("10.0.0.2:5000"))
	assert.True(t, cl.Allow("no-port"))
}

func TestLimitedEndpointsReturn429(t *testing.T) {
	e := newEnv(t, NewClientLimiter(0.001, 1))

	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/charts/country/mean_compensation.svg", "").Code)
	rec := e.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// the JSON API is not throttled
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/api/summary", "").Code)
}

func TestNilLimiterPassesThrough(t *testing.T) {
	var cl *ClientLimiter
	called := false
	cl.Limit(func(http.ResponseWriter, *http.Request) { called = true })(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
