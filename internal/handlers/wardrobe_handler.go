package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RGianluca98/Stycly/internal/middleware"
	"github.com/RGianluca98/Stycly/internal/service"
	"github.com/go-chi/chi/v5"
)

// WardrobeHandler handles the owner-only wardrobe CRUD endpoints
type WardrobeHandler struct {
	wardrobe *service.WardrobeService
	log      *slog.Logger
}

// NewWardrobeHandler creates a new wardrobe handler
func NewWardrobeHandler(wardrobe *service.WardrobeService, log *slog.Logger) *WardrobeHandler {
	return &WardrobeHandler{wardrobe: wardrobe, log: log}
}

// List handles GET /api/wardrobe
func (h *WardrobeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.wardrobe.List(ctx, middleware.UserID(ctx))
	if err != nil {
		h.log.Error("failed to list wardrobe", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.log)
}

// Add handles POST /api/wardrobe
func (h *WardrobeHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input service.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	ctx := r.Context()
	item, err := h.wardrobe.Add(ctx, middleware.UserID(ctx), input)
	if err != nil {
		h.writeWardrobeError(w, err, "add item")
		return
	}

	WriteJSON(w, http.StatusCreated, item, h.log)
}

// Edit handles PUT /api/wardrobe/{itemID}
func (h *WardrobeHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var input service.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	ctx := r.Context()
	item, err := h.wardrobe.Edit(ctx, middleware.UserID(ctx), chi.URLParam(r, "itemID"), input)
	if err != nil {
		h.writeWardrobeError(w, err, "edit item")
		return
	}

	WriteJSON(w, http.StatusOK, item, h.log)
}

// Delete handles DELETE /api/wardrobe/{itemID}
func (h *WardrobeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.wardrobe.Delete(ctx, middleware.UserID(ctx), chi.URLParam(r, "itemID")); err != nil {
		h.writeWardrobeError(w, err, "delete item")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"success": true}, h.log)
}

// DeleteAll handles DELETE /api/wardrobe
func (h *WardrobeHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.wardrobe.DeleteAll(ctx, middleware.UserID(ctx)); err != nil {
		h.writeWardrobeError(w, err, "delete wardrobe")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"success": true}, h.log)
}

func (h *WardrobeHandler) writeWardrobeError(w http.ResponseWriter, err error, op string) {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		WriteValidationErrors(w, verrs, h.log)
	case errors.Is(err, service.ErrItemNotFound):
		WriteError(w, http.StatusNotFound, "Item not found", h.log)
	default:
		h.log.Error("wardrobe operation failed", "op", op, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
