package httpapi

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"salary-dashboard/internal/app"
	"salary-dashboard/internal/config"
	"salary-dashboard/internal/store"
)

func loggedChain(t *testing.T, h http.HandlerFunc) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)
	return Chain(h, RequestID, AccessLog(log), Recover(log)), logs
}

func TestWriteAppError(t *testing.T) {
	t.Run("not loaded is 503", func(t *testing.T) {
		h, logs := loggedChain(t, func(w http.ResponseWriter, r *http.Request) {
			writeAppError(w, r, app.ErrNotLoaded)
		})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/view", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		got := decode[APIError](t, rec.Body.Bytes())
		assert.Equal(t, "not_loaded", got.Error.Code)
		assert.NotEmpty(t, got.Error.RequestID)
		assert.Zero(t, logs.FilterMessage("dashboard").Len())
	})

	t.Run("anything else is a logged 500", func(t *testing.T) {
		h, logs := loggedChain(t, func(w http.ResponseWriter, r *http.Request) {
			writeAppError(w, r, errors.New("disk on fire"))
		})
		req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
		req.Header.Set("X-Request-ID", "req-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal_error", decode[APIError](t, rec.Body.Bytes()).Error.Code)
		assert.NotContains(t, rec.Body.String(), "disk on fire")

		entries := logs.FilterMessage("dashboard").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	})
}

func TestWriteJSONEncodeFailureIsLogged500(t *testing.T) {
	h, logs := loggedChain(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, map[string]float64{"mean": math.Inf(1)})
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/aggregate", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "encode_failed", decode[APIError](t, rec.Body.Bytes()).Error.Code)
	assert.Equal(t, 1, logs.FilterMessage("encode response").Len())
}

func TestLoggerFromOutsideChainIsNop(t *testing.T) {
	assert.NotNil(t, LoggerFrom(context.Background()))
}

func TestEndpointsBeforeLoadAre503(t *testing.T) {
	a := app.New(store.NewDataSource("unused.db", 1000, nil), nil)
	d := Deps{App: a, Session: app.NewSession(a), Cfg: config.Defaults()}
	h := NewHandler(d, NewMux(d))

	for _, target := range []string{
		"/",
		"/api/view",
		"/charts/country/mean_compensation.svg",
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.Equal(t, "not_loaded", decode[APIError](t, rec.Body.Bytes()).Error.Code, target)
	}
}
