package products

import (
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/store"
)

// RegisterRoutes registers configuration item, baseline and product instance
// routes on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{products: s.Products}

	mux.HandleFunc("POST /api/workspaces/{workspaceId}/products", h.Create)
	mux.HandleFunc("GET /api/workspaces/{workspaceId}/products/{productId}/structure", h.Structure)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/products/{productId}/path-to-path-links", h.CreatePathToPathLink)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/products/{productId}/baselines", h.CreateBaseline)
	mux.HandleFunc("GET /api/workspaces/{workspaceId}/products/{productId}/baselines", h.Baselines)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/products/{productId}/product-instances", h.CreateInstance)
	mux.HandleFunc("POST /api/workspaces/{workspaceId}/product-configurations", h.CreateConfiguration)
}
