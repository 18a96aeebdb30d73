package changes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/api"
	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

// Handler handles change request, issue and order HTTP requests.
type Handler struct {
	changes store.ChangeStore
}

// CreateRequest adds a change request.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var request plm.ChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if request.Name == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing name", corrID))
		return
	}

	created, err := h.changes.CreateRequest(r.Context(), workspaceID, request)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

// CreateIssue adds a change issue.
func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var issue plm.ChangeIssue
	if err := json.NewDecoder(r.Body).Decode(&issue); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if issue.Name == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing name", corrID))
		return
	}

	created, err := h.changes.CreateIssue(r.Context(), workspaceID, issue)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

// CreateOrder adds a change order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var order plm.ChangeOrder
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if order.Name == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing name", corrID))
		return
	}

	created, err := h.changes.CreateOrder(r.Context(), workspaceID, order)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	corrID := api.CorrelationID(r.Context())
	switch {
	case errors.Is(err, store.ErrNotFound):
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(err.Error(), corrID))
	case errors.Is(err, store.ErrConflict):
		api.WriteError(w, http.StatusConflict, api.NewConflictError(err.Error(), corrID))
	default:
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
	}
}
