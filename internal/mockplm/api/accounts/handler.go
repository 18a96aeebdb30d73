package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/api"
	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

// Handler handles account HTTP requests.
type Handler struct {
	accounts store.AccountStore
}

// Create registers a new server account. An existing login answers 409.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var account plm.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if account.Login == "" || account.Password == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing login or password", corrID))
		return
	}

	if err := h.accounts.Create(r.Context(), account); err != nil {
		if errors.Is(err, store.ErrConflict) {
			api.WriteError(w, http.StatusConflict, api.NewConflictError(err.Error(), corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	account.Password = ""
	api.WriteJSON(w, http.StatusCreated, account)
}
