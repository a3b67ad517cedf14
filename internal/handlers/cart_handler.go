package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RGianluca98/Stycly/internal/middleware"
	"github.com/RGianluca98/Stycly/internal/service"
)

// CartHandler handles cart mutation and read endpoints
type CartHandler struct {
	carts *service.CartService
	log   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, log: log}
}

type cartMutationRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Add handles POST /api/cart/add
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeMutation(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.Add(r.Context(), middleware.SessionID(r.Context()), req.ItemID)
	if err != nil {
		h.writeCartError(w, err, "add to cart")
		return
	}

	WriteJSON(w, http.StatusOK, CartResponse{
		Success:   true,
		Message:   "Item added to cart",
		CartCount: cart.Count(),
	}, h.log)
}

// Update handles POST /api/cart/update
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeMutation(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.SetQuantity(r.Context(), middleware.SessionID(r.Context()), req.ItemID, req.Quantity)
	if err != nil {
		h.writeCartError(w, err, "update cart")
		return
	}

	WriteJSON(w, http.StatusOK, CartResponse{
		Success:   true,
		Message:   "Cart updated",
		CartCount: cart.Count(),
	}, h.log)
}

// Remove handles POST /api/cart/remove
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeMutation(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.Remove(r.Context(), middleware.SessionID(r.Context()), req.ItemID)
	if err != nil {
		h.writeCartError(w, err, "remove from cart")
		return
	}

	WriteJSON(w, http.StatusOK, CartResponse{
		Success:   true,
		Message:   "Item removed from cart",
		CartCount: cart.Count(),
	}, h.log)
}

// Clear handles POST /api/cart/clear
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), middleware.SessionID(r.Context())); err != nil {
		h.writeCartError(w, err, "clear cart")
		return
	}

	WriteJSON(w, http.StatusOK, CartResponse{
		Success: true,
		Message: "Cart cleared",
	}, h.log)
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.carts.Get(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.log.Error("failed to read cart", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.log)
}

func (h *CartHandler) decodeMutation(w http.ResponseWriter, r *http.Request) (cartMutationRequest, bool) {
	var req cartMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, CartResponse{
			Success: false,
			Message: "Invalid request body",
		}, h.log)
		return req, false
	}

	if req.ItemID == "" {
		WriteJSON(w, http.StatusBadRequest, CartResponse{
			Success: false,
			Message: "Item ID required",
		}, h.log)
		return req, false
	}
	return req, true
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		WriteJSON(w, http.StatusNotFound, CartResponse{
			Success: false,
			Message: "Item not found",
		}, h.log)
	case errors.Is(err, service.ErrStockExceeded):
		WriteJSON(w, http.StatusBadRequest, CartResponse{
			Success: false,
			Message: "Maximum stock reached",
		}, h.log)
	default:
		h.log.Error("cart operation failed", "op", op, "error", err)
		WriteJSON(w, http.StatusInternalServerError, CartResponse{
			Success: false,
			Message: "Internal server error",
		}, h.log)
	}
}
