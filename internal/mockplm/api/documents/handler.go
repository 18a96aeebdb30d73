package documents

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/openplm/plmseed/internal/mockplm/api"
	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

// Handler handles document template and document HTTP requests.
type Handler struct {
	documents store.DocumentStore
}

// CreateTemplate registers a document template.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var template plm.DocumentTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if template.Reference == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing template reference", corrID))
		return
	}

	if err := h.documents.CreateTemplate(r.Context(), workspaceID, template); err != nil {
		fail(w, r, err)
		return
	}
	template.WorkspaceID = workspaceID
	api.WriteJSON(w, http.StatusCreated, template)
}

// Create adds a document master in the folder named by the query parameter
// and returns the new revision.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var doc plm.DocumentCreation
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if doc.Reference == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing document reference", corrID))
		return
	}

	folder := r.URL.Query().Get("folder")
	revision, err := h.documents.Create(r.Context(), workspaceID, folder, api.CurrentUser(r.Context()), doc)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, revision)
}

// UpdateIteration replaces the attributes, links and note of one iteration.
func (h *Handler) UpdateIteration(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	iteration, err := strconv.Atoi(r.PathValue("iteration"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid iteration", corrID))
		return
	}

	var it plm.DocumentIteration
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	it.WorkspaceID = r.PathValue("workspaceId")
	it.DocumentID = r.PathValue("documentId")
	it.Version = r.PathValue("version")
	it.Iteration = iteration

	if err := h.documents.UpdateIteration(r.Context(), it.WorkspaceID, api.CurrentUser(r.Context()), it); err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, it)
}

// CheckIn checks in a document revision.
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	err := h.documents.CheckIn(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("documentId"), r.PathValue("version"),
		api.CurrentUser(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckOut checks out a document revision for the calling identity.
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	err := h.documents.CheckOut(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("documentId"), r.PathValue("version"),
		api.CurrentUser(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadFile attaches a file to one iteration.
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

	err = h.documents.AddFile(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("documentId"), r.PathValue("version"),
		iteration, header.Filename, header.Size)
	if err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
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
