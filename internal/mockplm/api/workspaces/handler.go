package workspaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/openplm/plmseed/internal/mockplm/api"
	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

// Handler handles workspace, membership, folder, tag and milestone HTTP
// requests.
type Handler struct {
	workspaces store.WorkspaceStore
}

// Create adds a new workspace administered by the userLogin query parameter,
// defaulting to the calling identity.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var workspace plm.Workspace
	if err := json.NewDecoder(r.Body).Decode(&workspace); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if workspace.ID == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing workspace id", corrID))
		return
	}

	admin := r.URL.Query().Get("userLogin")
	if admin == "" {
		admin = api.CurrentUser(r.Context())
	}
	if err := h.workspaces.Create(r.Context(), workspace, admin); err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, workspace)
}

// Delete removes a workspace and everything scoped to it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.workspaces.Delete(r.Context(), r.PathValue("workspaceId")); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddUser enrolls an account in the workspace, optionally into a group.
func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var user plm.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if user.Login == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing login", corrID))
		return
	}

	group := r.URL.Query().Get("group")
	if err := h.workspaces.AddUser(r.Context(), workspaceID, user, group); err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, user)
}

// EnableUser activates a workspace member.
func (h *Handler) EnableUser(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var user plm.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if err := h.workspaces.EnableUser(r.Context(), workspaceID, user.Login); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetUserAccess updates a member's workspace-level access.
func (h *Handler) SetUserAccess(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var user plm.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if err := h.workspaces.SetUserAccess(r.Context(), workspaceID, user); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateGroup adds an empty user group.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var group plm.UserGroup
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if group.ID == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing group id", corrID))
		return
	}
	if err := h.workspaces.CreateGroup(r.Context(), workspaceID, group); err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, group)
}

// Groups lists the workspace's groups.
func (h *Handler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.workspaces.Groups(r.Context(), r.PathValue("workspaceId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, groups)
}

// SetGroupAccess records a group's workspace-level access.
func (h *Handler) SetGroupAccess(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var membership plm.GroupMembership
	if err := json.NewDecoder(r.Body).Decode(&membership); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	membership.WorkspaceID = r.PathValue("workspaceId")
	if err := h.workspaces.SetGroupAccess(r.Context(), membership); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateFolder adds a folder under the workspace root.
func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var folder plm.Folder
	if err := json.NewDecoder(r.Body).Decode(&folder); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if folder.Name == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing folder name", corrID))
		return
	}
	if err := h.workspaces.CreateFolder(r.Context(), workspaceID, folder.Name); err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, folder)
}

type tagList struct {
	Tags []plm.Tag `json:"tags"`
}

// CreateTags adds workspace tags in one batch.
func (h *Handler) CreateTags(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var list tagList
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if err := h.workspaces.CreateTags(r.Context(), workspaceID, list.Tags); err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, list)
}

// CreateMilestone adds a milestone.
func (h *Handler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var m plm.Milestone
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	created, err := h.workspaces.CreateMilestone(r.Context(), workspaceID, m)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

// Milestones lists the workspace's milestones.
func (h *Handler) Milestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := h.workspaces.Milestones(r.Context(), r.PathValue("workspaceId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, milestones)
}

// UpdateMilestoneACL replaces a milestone's access control list.
func (h *Handler) UpdateMilestoneACL(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	milestoneID, err := strconv.Atoi(r.PathValue("milestoneId"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid milestone id", corrID))
		return
	}

	var acl plm.ACL
	if err := json.NewDecoder(r.Body).Decode(&acl); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if err := h.workspaces.UpdateMilestoneACL(r.Context(), workspaceID, milestoneID, acl); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps store errors onto the error envelope.
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
