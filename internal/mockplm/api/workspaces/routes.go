package workspaces

import (
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/store"
)

// RegisterRoutes registers workspace, membership, folder, tag and milestone
// routes on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{workspaces: s.Workspaces}

	mux.HandleFunc("POST /api/workspaces", h.Create)
	mux.HandleFunc("DELETE /api/workspaces/{workspaceId}", h.Delete)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/users", h.AddUser)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/users/enable", h.EnableUser)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/users/access", h.SetUserAccess)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/groups", h.CreateGroup)
	mux.HandleFunc("GET /api/workspaces/{workspaceId}/groups", h.Groups)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/group-access", h.SetGroupAccess)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/folders", h.CreateFolder)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/tags", h.CreateTags)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/milestones", h.CreateMilestone)
	mux.HandleFunc("GET /api/workspaces/{workspaceId}/milestones", h.Milestones)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/milestones/{milestoneId}/acl", h.UpdateMilestoneACL)
}
