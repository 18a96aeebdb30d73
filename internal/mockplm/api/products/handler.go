package products

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openplm/plmseed/internal/mockplm/api"
	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

// Handler handles configuration item, baseline and product instance HTTP
// requests.
type Handler struct {
	products store.ProductStore
}

// Create adds a configuration item bound to its root part.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var item plm.ConfigurationItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if item.ID == "" || item.DesignItemNumber == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing product id or root part", corrID))
		return
	}

	if err := h.products.Create(r.Context(), workspaceID, item); err != nil {
		fail(w, r, err)
		return
	}
	item.WorkspaceID = workspaceID
	api.WriteJSON(w, http.StatusCreated, item)
}

// Structure returns the product's expanded bill of materials.
func (h *Handler) Structure(w http.ResponseWriter, r *http.Request) {
	root, err := h.products.Structure(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("productId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, root)
}

// CreatePathToPathLink adds a typed link between two structure paths.
func (h *Handler) CreatePathToPathLink(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var link plm.PathToPathLink
	if err := json.NewDecoder(r.Body).Decode(&link); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if link.SourcePath == "" || link.TargetPath == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing source or target path", corrID))
		return
	}

	err := h.products.CreatePathToPathLink(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("productId"), link)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, link)
}

// CreateBaseline snapshots the product structure.
func (h *Handler) CreateBaseline(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var baseline plm.Baseline
	if err := json.NewDecoder(r.Body).Decode(&baseline); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	baseline.ConfigurationItemID = r.PathValue("productId")

	created, err := h.products.CreateBaseline(r.Context(), r.PathValue("workspaceId"), baseline)
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

// Baselines lists the baselines of one product.
func (h *Handler) Baselines(w http.ResponseWriter, r *http.Request) {
	baselines, err := h.products.Baselines(r.Context(),
		r.PathValue("workspaceId"), r.PathValue("productId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, baselines)
}

// CreateInstance creates a serial-numbered product instance.
func (h *Handler) CreateInstance(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var instance plm.ProductInstance
	if err := json.NewDecoder(r.Body).Decode(&instance); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	instance.ConfigurationItemID = r.PathValue("productId")
	if instance.SerialNumber == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing serial number", corrID))
		return
	}

	if err := h.products.CreateInstance(r.Context(), r.PathValue("workspaceId"), instance); err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, instance)
}

// CreateConfiguration records a named optional-link selection.
func (h *Handler) CreateConfiguration(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	workspaceID := r.PathValue("workspaceId")

	var cfg plm.ProductConfiguration
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID))
		return
	}
	if cfg.Name == "" || cfg.ConfigurationItemID == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Missing configuration name or product", corrID))
		return
	}

	if err := h.products.CreateConfiguration(r.Context(), workspaceID, cfg); err != nil {
		fail(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, cfg)
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
