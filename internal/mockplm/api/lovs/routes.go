package lovs

import (
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/store"
)

// RegisterRoutes registers list-of-values routes on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{lovs: s.LOVs}

	mux.HandleFunc("POST /api/workspaces/{workspaceId}/lovs", h.Create)
	mux.HandleFunc("GET /api/workspaces/{workspaceId}/lovs/{name}", h.Get)
}
