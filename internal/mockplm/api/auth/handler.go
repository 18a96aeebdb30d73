package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/api"
	"github.com/openplm/plmseed/internal/mockplm/store"
)

// Handler handles authentication HTTP requests.
type Handler struct {
	accounts store.AccountStore
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login verifies credentials and returns a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if req.Login == "" || req.Password == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing login or password", corrID))
		return
	}

	token, err := h.accounts.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrBadCredential) {
			api.WriteError(w, http.StatusUnauthorized, &api.Error{
				Status:        "error",
				Message:       "Bad credentials",
				CorrelationID: corrID,
				Category:      api.CategoryUnauthorized,
			})
			return
		}
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}
	api.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

// Languages returns the server's supported languages. It doubles as an
// unauthenticated liveness probe.
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, []string{"en", "fr"})
}
