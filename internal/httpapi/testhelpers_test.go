package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"salary-dashboard/internal/app"
	"salary-dashboard/internal/config"
	"salary-dashboard/internal/store"
	"salary-dashboard/internal/store/storetest"
)

type env struct {
	app     *app.App
	session *app.Session
	handler http.Handler
}

func newEnv(t *testing.T, limiter *ClientLimiter) env {
	t.Helper()
	path := storetest.Create(t, storetest.Scenario())
	a := app.New(store.NewDataSource(path, 1000, nil), nil)
	require.NoError(t, a.Load(context.Background()))
	s := app.NewSession(a)

	d := Deps{App: a, Session: s, Cfg: config.Defaults(), Limiter: limiter}
	return env{app: a, session: s, handler: NewHandler(d, NewMux(d))}
}

func (e env) do(t *testing.T, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, stringsReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}
