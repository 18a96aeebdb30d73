package lovs

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/api"
	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

// Handler handles list-of-values HTTP requests.
type Handler struct {
	lovs store.LOVStore
}

// Create registers a named list of values.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var lov plm.ListOfValues
	if err := json.NewDecoder(r.Body).Decode(&lov); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if lov.Name == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing lov name", corrID))
		return
	}

	if err := h.lovs.Create(r.Context(), workspaceID, lov); err != nil {
		fail(w, r, err)
		return
	}
	lov.WorkspaceID = workspaceID
	api.WriteJSON(w, http.StatusCreated, lov)
}

// Get fetches one list of values by name.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	lov, err := h.lovs.Get(r.Context(), r.PathValue("workspaceId"), r.PathValue("name"))
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, lov)
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
