package parts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/openplm/plmseed/internal/mockplm/api"
	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

// Handler handles part template, part and conversion HTTP requests.
type Handler struct {
	parts store.PartStore
}

// CreateTemplate registers a part template.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var template plm.PartTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if template.Reference == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing template reference", corrID))
		return
	}

	if err := h.parts.CreateTemplate(r.Context(), workspaceID, template); err != nil {
		fail(w, r, err)
		return
	}
	template.WorkspaceID = workspaceID
	api.WriteJSON(w, http.StatusCreated, template)
}

// Create adds a part master and returns the new revision.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var part plm.PartCreation
	if err := json.NewDecoder(r.Body).Decode(&part); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if part.Number == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing part number", corrID))
		return
	}

	revision, err := h.parts.Create(r.Context(), workspaceID, api.CurrentUser(r.Context()), part)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, revision)
}

// Search looks up part masters by number.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.PathValue("workspaceId")
	number := r.URL.Query().Get("number")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	masters, err := h.parts.Search(r.Context(), workspaceID, number, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, masters)
}

// GetRevision fetches one part revision with all its iterations.
func (h *Handler) GetRevision(w http.ResponseWriter, r *http.Request) {
	revision, err := h.parts.GetRevision(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("number"), r.PathValue("version"))
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, revision)
}

// UpdateIteration replaces the attributes, components and links of one
// iteration.
func (h *Handler) UpdateIteration(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	iteration, err := strconv.Atoi(r.PathValue("iteration"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid iteration", corrID))
		return
	}

	var it plm.PartIteration
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	it.WorkspaceID = r.PathValue("workspaceId")
	it.Number = r.PathValue("number")
	it.Version = r.PathValue("version")
	it.Iteration = iteration

	if err := h.parts.UpdateIteration(r.Context(), it.WorkspaceID, api.CurrentUser(r.Context()), it); err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, it)
}

// CheckIn checks in a part revision.
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	err := h.parts.CheckIn(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("number"), r.PathValue("version"),
		api.CurrentUser(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckOut checks out a part revision for the calling identity.
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	err := h.parts.CheckOut(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("number"), r.PathValue("version"),
		api.CurrentUser(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadFile attaches a file to one iteration. A nativecad upload starts a
// simulated conversion.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	iteration, err := strconv.Atoi(r.PathValue("iteration"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid iteration", corrID))
		return
	}

	file, header, err := r.FormFile("upload")
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing upload", corrID))
		return
	}
	_ = file.Close()

	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = "attached"
	}
	err = h.parts.AddFile(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("number"), r.PathValue("version"),
		iteration, kind, header.Filename, header.Size)
	if err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Conversion reports the conversion state of one iteration's native CAD file.
func (h *Handler) Conversion(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	iteration, err := strconv.Atoi(r.PathValue("iteration"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid iteration", corrID))
		return
	}

	status, err := h.parts.ConversionStatus(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("number"), r.PathValue("version"), iteration)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, status)
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	corrID := api.CorrelationID(r.Context())
	switch {
	case errors.Is(err, store.ErrNotFound):
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(err.Error(), corrID))
	case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrCheckedOut):
		api.WriteError(w, http.StatusConflict, api.NewConflictError(err.Error(), corrID))
	case errors.Is(err, store.ErrNotCheckedOut):
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(err.Error(), corrID))
	default:
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
	}
}
