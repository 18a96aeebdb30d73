package documents

import (
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/store"
)

// RegisterRoutes registers document template and document routes on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{documents: s.Documents}

	mux.HandleFunc("POST /api/workspaces/{workspaceId}/document-templates", h.CreateTemplate)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/documents", h.Create)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/documents/{documentId}/{version}/{iteration}", h.UpdateIteration)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/documents/{documentId}/{version}/checkin", h.CheckIn)
	mux.HandleFunc("PUT /api/workspaces/{workspaceId}/documents/{documentId}/{version}/checkout", h.CheckOut)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/documents/{documentId}/{version}/{iteration}/files", h.UploadFile)
}
