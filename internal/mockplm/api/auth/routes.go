package auth

import (
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/store"
)

// RegisterRoutes registers authentication routes on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{accounts: s.Accounts}

	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/languages", h.Languages)
}
