package accounts

import (
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/store"
)

// RegisterRoutes registers account routes on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{accounts: s.Accounts}

	mux.HandleFunc("POST /api/accounts", h.Create)
}
