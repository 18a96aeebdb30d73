package parts

import (
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/store"
)

// RegisterRoutes registers part template, part and conversion routes on the
// mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{parts: s.Parts}

	mux.HandleFunc("POST /api/workspaces/{workspaceId}/part-templates", h.CreateTemplate)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/parts", h.Create)
	mux.HandleFunc("GET /api/workspaces/{workspaceId}/parts/search", h.Search)
	mux.HandleFunc("GET /api/workspaces/{workspaceId}/parts/{number}/{version}", h.GetRevision)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/parts/{number}/{version}/{iteration}", h.UpdateIteration)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/parts/{number}/{version}/checkin", h.CheckIn)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/parts/{number}/{version}/checkout", h.CheckOut)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/parts/{number}/{version}/{iteration}/files", h.UploadFile)
	mux.HandleFunc("GET /api/workspaces/{workspaceId}/parts/{number}/{version}/{iteration}/conversion", h.Conversion)
}
