package workflows

import (
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/store"
)

// RegisterRoutes registers role and workflow template routes on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{workflows: s.Workflows}

	mux.HandleFunc("POST /api/workspaces/{workspaceId}/roles", h.CreateRole)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/workflows", h.Create)
	mux.HandleFunc("GET /api/workspaces/{workspaceId}/workflows", h.List)
	mux.HandleFunc("GET /api/workspaces/{workspaceId}/workflows/{workflowId}", h.Get)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/workflows/{workflowId}/acl", h.UpdateACL)
}
