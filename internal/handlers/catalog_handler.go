package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/RGianluca98/Stycly/internal/middleware"
	"github.com/RGianluca98/Stycly/internal/models"
	"github.com/RGianluca98/Stycly/internal/service"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves the public product catalog
type CatalogHandler struct {
	carts *service.CartService
	log   *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(carts *service.CartService, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{carts: carts, log: log}
}

// ListProducts handles GET /api/products
// The listing is cart-aware: stock is reduced by the session's cart and
// items with nothing left for this session are omitted.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := models.CatalogFilter{
		Destination: r.URL.Query().Get("destination"),
		Category:    r.URL.Query().Get("category"),
		Size:        r.URL.Query().Get("size"),
		AgeRange:    r.URL.Query().Get("age_range"),
		Color:       r.URL.Query().Get("color"),
		Condition:   r.URL.Query().Get("condition"),
	}

	catalog, err := h.carts.ListCatalog(ctx, middleware.SessionID(ctx), filter)
	if err != nil {
		h.log.Error("failed to list catalog", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, catalog, h.log)
}

// GetProduct handles GET /api/products/{itemID}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemID := chi.URLParam(r, "itemID")

	item, err := h.carts.GetCatalogItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			WriteError(w, http.StatusNotFound, "Item not found", h.log)
			return
		}
		h.log.Error("failed to get item", "item_id", itemID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.log)
}

// GetFilters handles GET /api/filters
// Returns the facet values present across public items.
func (h *CatalogHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	facets, err := h.carts.FilterFacets(r.Context())
	if err != nil {
		h.log.Error("failed to collect filter facets", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, facets, h.log)
}
