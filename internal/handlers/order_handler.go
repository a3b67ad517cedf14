package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RGianluca98/Stycly/internal/middleware"
	"github.com/RGianluca98/Stycly/internal/models"
	"github.com/RGianluca98/Stycly/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrderHandler handles rental request submission and confirmation lookup
type OrderHandler struct {
	orders *service.OrderService
	log    *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// Submit handles POST /api/orders
// Validation failures come back as the full accumulated list (422); a
// storage failure is a single generic message and the cart is preserved.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	ctx := r.Context()
	order, err := h.orders.Submit(ctx, middleware.SessionID(ctx), middleware.UserID(ctx), req)
	if err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			WriteValidationErrors(w, verrs, h.log)
			return
		}
		if errors.Is(err, service.ErrOrderPersistence) {
			WriteError(w, http.StatusInternalServerError,
				"An error occurred while processing your request. Please try again.", h.log)
			return
		}
		h.log.Error("failed to submit order", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, order, h.log)
}

// GetOrder handles GET /api/orders/{orderID}
// Orders linked to a user are only visible to that user.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "orderID")

	order, err := h.orders.GetOrder(ctx, orderID, middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
			return
		}
		h.log.Error("failed to get order", "order_id", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}
