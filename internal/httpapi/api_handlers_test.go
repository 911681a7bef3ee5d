package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salary-dashboard/internal/app"
)

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestSummary(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(t, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[summaryResp](t, rec.Body.Bytes())
	assert.Equal(t, 3, got.TotalEmployees)
	assert.Equal(t, []string{"Engineer", "Manager"}, got.JobTitles)
	assert.Equal(t, []string{"US", "CA"}, got.Countries)
}

func TestAggregate(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(t, http.MethodGet, "/api/aggregate?axis=country&value=US", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[aggregateResp](t, rec.Body.Bytes())
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "US", got.Rows[0].Category)
	require.NotNil(t, got.Rows[0].MeanCompensation)
	assert.Equal(t, 110000.0, *got.Rows[0].MeanCompensation)
	assert.Equal(t, 2, got.Rows[0].DistinctEmployeeCount)

	// session selection is used without value params
	rec = e.do(t, http.MethodGet, "/api/aggregate?axis=job_title", "")
	got = decode[aggregateResp](t, rec.Body.Bytes())
	assert.Len(t, got.Rows, 2)
	assert.Contains(t, rec.Body.String(), `"meanCompensation":null`)
}

func TestAggregateEmptySelectionIsNotAnError(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(t, http.MethodGet, "/api/aggregate?axis=job_title&submitted=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[aggregateResp](t, rec.Body.Bytes())
	assert.Empty(t, got.Rows)
	assert.Equal(t, "empty selection", got.Warning)
}

func TestAggregateBadAxis(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(t, http.MethodGet, "/api/aggregate?axis=office", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	got := decode[APIError](t, rec.Body.Bytes())
	assert.Equal(t, "bad_axis", got.Error.Code)
	assert.NotEmpty(t, got.Error.RequestID)
}

func TestSelectionLifecycle(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(t, http.MethodPut, "/api/selection/country", `{"values":["CA","Narnia"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"axis":"country","selection":["CA"]}`, rec.Body.String())

	v := decode[app.View](t, e.do(t, http.MethodGet, "/api/view", "").Body.Bytes())
	require.Len(t, v.Sections, 2)
	assert.Equal(t, []string{"CA"}, v.Sections[1].SelectedValues())
	require.Len(t, v.Sections[1].Panels, 2)
	assert.Equal(t, "CA", v.Sections[1].Panels[1].Rows[0].Category)

	rec = e.do(t, http.MethodPut, "/api/selection/country", `{"values":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v = decode[app.View](t, e.do(t, http.MethodGet, "/api/view", "").Body.Bytes())
	assert.Equal(t, "Please select at least one country.", v.Sections[1].Warning)

	rec = e.do(t, http.MethodDelete, "/api/selection", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 2, e.session.Selections()["country"].Len())
}

func TestPutSelectionErrors(t *testing.T) {
	e := newEnv(t, nil)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPut, "/api/selection/office", `{"values":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPut, "/api/selection/country", `{"vals":[]}`).Code)
}

func TestMethodNotAllowed(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(t, http.MethodPost, "/api/summary", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", decode[APIError](t, rec.Body.Bytes()).Error.Code)
}

func TestHealthAndConfig(t *testing.T) {
	e := newEnv(t, nil)
	assert.JSONEq(t, `{"ok":true,"state":"loaded"}`, e.do(t, http.MethodGet, "/health", "").Body.String())

	rec := e.do(t, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "utsc-exercise.db")

	rec = e.do(t, http.MethodGet, "/config/validate", "")
	assert.Contains(t, rec.Body.String(), `"errors":null`)
}
