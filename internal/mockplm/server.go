// Package mockplm is an in-memory stand-in for a PLM server. It implements
// the REST surface the seeding client talks to, backed by SQLite, so demos
// and tests can run without a real server.
package mockplm

import (
	"fmt"
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/api"
	"github.com/openplm/plmseed/internal/mockplm/api/accounts"
	"github.com/openplm/plmseed/internal/mockplm/api/auth"
	"github.com/openplm/plmseed/internal/mockplm/api/changes"
	"github.com/openplm/plmseed/internal/mockplm/api/documents"
	"github.com/openplm/plmseed/internal/mockplm/api/lovs"
	"github.com/openplm/plmseed/internal/mockplm/api/parts"
	"github.com/openplm/plmseed/internal/mockplm/api/products"
	"github.com/openplm/plmseed/internal/mockplm/api/workflows"
	"github.com/openplm/plmseed/internal/mockplm/api/workspaces"
	"github.com/openplm/plmseed/internal/mockplm/store"
)

// NewHandler builds the full HTTP handler: all routes plus the middleware
// chain.
func NewHandler(s *store.Store) http.Handler {
	mux := http.NewServeMux()

	auth.RegisterRoutes(mux, s)
	accounts.RegisterRoutes(mux, s)
	workspaces.RegisterRoutes(mux, s)
	lovs.RegisterRoutes(mux, s)
	documents.RegisterRoutes(mux, s)
	parts.RegisterRoutes(mux, s)
	products.RegisterRoutes(mux, s)
	workflows.RegisterRoutes(mux, s)
	changes.RegisterRoutes(mux, s)

	// Catch-all: return 404 in the error envelope.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	return api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Auth(s.Accounts.ValidateToken),
		api.JSONContentType(),
		api.Logging(),
	)
}
