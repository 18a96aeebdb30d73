package workflows

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/api"
	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

// Handler handles role and workflow template HTTP requests.
type Handler struct {
	workflows store.WorkflowStore
}

// CreateRole registers a role.
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var role plm.Role
	if err := json.NewDecoder(r.Body).Decode(&role); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if role.Name == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing role name", corrID))
		return
	}

	created, err := h.workflows.CreateRole(r.Context(), workspaceID, role)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

// Create registers a workflow template.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var model plm.WorkflowModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if model.ID == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing workflow id", corrID))
		return
	}

	if err := h.workflows.CreateWorkflow(r.Context(), workspaceID, model); err != nil {
		fail(w, r, err)
		return
	}
	model.WorkspaceID = workspaceID
	api.WriteJSON(w, http.StatusCreated, model)
}

// List returns the workspace's workflow templates.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	models, err := h.workflows.Workflows(r.Context(), r.PathValue("workspaceId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, models)
}

// Get fetches one workflow template by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	model, err := h.workflows.GetWorkflow(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("workflowId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, model)
}

// UpdateACL replaces a workflow template's access control list.
func (h *Handler) UpdateACL(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var acl plm.ACL
	if err := json.NewDecoder(r.Body).Decode(&acl); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	err := h.workflows.UpdateWorkflowACL(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("workflowId"), acl)
	if err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
