package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/RGianluca98/Stycly/internal/mailer"
	"github.com/RGianluca98/Stycly/internal/models"
	"github.com/RGianluca98/Stycly/internal/repository"
	"github.com/RGianluca98/Stycly/internal/session"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// OrderService turns a validated cart plus checkout form into a persisted
// order, dispatches the two notification emails, and clears the cart.
type OrderService struct {
	items       repository.ItemRepository
	orders      repository.OrderRepository
	sessions    session.Store
	dispatcher  mailer.Dispatcher
	ordersEmail string
	log         *slog.Logger
}

// NewOrderService creates a new order service. ordersEmail is the internal
// operations address that receives a copy of every rental request.
func NewOrderService(
	items repository.ItemRepository,
	orders repository.OrderRepository,
	sessions session.Store,
	dispatcher mailer.Dispatcher,
	ordersEmail string,
	log *slog.Logger,
) *OrderService {
	return &OrderService{
		items:       items,
		orders:      orders,
		sessions:    sessions,
		dispatcher:  dispatcher,
		ordersEmail: ordersEmail,
		log:         log,
	}
}

// Submit validates the checkout form against the session's cart and, on
// success, persists the order, sends both notifications best-effort, and
// clears the cart. Validation collects every failure before reporting; a
// persistence failure leaves the cart untouched so the customer can retry.
// userID may be empty: guest checkout is permitted.
func (s *OrderService) Submit(ctx context.Context, sessionID, userID string, req models.SubmitOrderRequest) (*models.Order, error) {
	cart, err := s.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Notes = strings.TrimSpace(req.Notes)

	startDate, endDate, verrs := validateSubmission(cart, req)
	if len(verrs) > 0 {
		return nil, verrs
	}

	order := &models.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
		Items:     make([]models.OrderItem, 0, len(cart)),
	}

	// Items deleted from the catalog since they were carted are skipped
	// silently; the order keeps whatever lines still resolve.
	for _, itemID := range sortedIDs(cart) {
		item, err := s.items.GetByID(ctx, itemID)
		if errors.Is(err, repository.ErrItemNotFound) {
			continue
		}
		if err != nil {
			s.log.Error("failed to resolve cart item", "item_id", itemID, "error", err)
			return nil, ErrOrderPersistence
		}

		order.Items = append(order.Items, models.OrderItem{
			ItemID:     item.ID,
			Title:      item.Title,
			Size:       item.Size,
			AgeRange:   item.AgeRange,
			Quantity:   cart.Quantity(itemID),
			DailyPrice: item.DailyPrice,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.log.Error("failed to persist order", "order_id", order.ID, "error", err)
		return nil, ErrOrderPersistence
	}

	s.notify(ctx, order)

	if err := s.sessions.SetCart(ctx, sessionID, models.NewCart()); err != nil {
		s.log.Warn("failed to clear cart after checkout",
			"order_id", order.ID, "error", err)
	}

	s.log.Info("order submitted",
		"order_id", order.ID,
		"lines", len(order.Items),
		"total_days", order.TotalDays(),
	)
	return order, nil
}

// GetOrder returns an order for the confirmation page. Orders linked to a
// user are only visible to that user; guest orders are reachable by ID.
func (s *OrderService) GetOrder(ctx context.Context, orderID, viewerUserID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if order.UserID != "" && order.UserID != viewerUserID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// notify sends the customer confirmation and the operations notification.
// Dispatch outcomes are logged only; the order is already placed.
func (s *OrderService) notify(ctx context.Context, order *models.Order) {
	subject, body := mailer.BuildOrderConfirmation(order)
	if !s.dispatcher.Send(ctx, order.Email, subject, body) {
		s.log.Warn("order confirmation email not delivered",
			"order_id", order.ID, "to", order.Email)
	}

	subject, body = mailer.BuildOrderNotification(order)
	if !s.dispatcher.Send(ctx, s.ordersEmail, subject, body) {
		s.log.Warn("order notification email not delivered",
			"order_id", order.ID, "to", s.ordersEmail)
	}
}

// validateSubmission runs every check and reports the full list of
// failures. A date parse failure short-circuits only the two ordering
// checks that depend on the parsed values.
func validateSubmission(cart models.Cart, req models.SubmitOrderRequest) (time.Time, time.Time, ValidationErrors) {
	var verrs ValidationErrors

	if len(cart) == 0 {
		verrs.add(CodeCartEmpty, "Your cart is empty.")
	}
	if req.Name == "" {
		verrs.add(CodeMissingField, "Full name is required.")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		verrs.add(CodeInvalidEmail, "Valid email is required.")
	}
	if !req.PrivacyAccepted {
		verrs.add(CodeConsentRequired, "You must accept the privacy policy and terms.")
	}

	startDate, startErr := time.Parse(dateLayout, req.StartDate)
	endDate, endErr := time.Parse(dateLayout, req.EndDate)
	if startErr != nil || endErr != nil {
		verrs.add(CodeInvalidDate, "Invalid dates provided.")
		return time.Time{}, time.Time{}, verrs
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if startDate.Before(today) {
		verrs.add(CodeDateInPast, "Start date cannot be in the past.")
	}
	if endDate.Before(startDate) {
		verrs.add(CodeDateOrderInvalid, "End date must be after start date.")
	}

	return startDate, endDate, verrs
}
