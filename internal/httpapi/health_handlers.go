package httpapi

import (
	"net/http"

	"salary-dashboard/internal/app"
)

type HealthHandler struct {
	App *app.App
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.App.State()
	writeJSON(w, r, map[string]any{
		"ok":    st != app.Init,
		"state": st.String(),
	})
}
