package changes

import (
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/store"
)

// RegisterRoutes registers change item routes on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{changes: s.Changes}

	mux.HandleFunc("POST /api/workspaces/{workspaceId}/changes/requests", h.CreateRequest)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/changes/issues", h.CreateIssue)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/changes/orders", h.CreateOrder)
}
