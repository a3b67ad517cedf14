package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a persisted rental request. UserID is empty for guest checkouts.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id,omitempty"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// OrderItem is a snapshot line. Title, Size, AgeRange and DailyPrice are
// copied from the item at order time so later catalog edits never change
// historical orders.
type OrderItem struct {
	ItemID     string          `json:"item_id"`
	Title      string          `json:"title"`
	Size       string          `json:"size"`
	AgeRange   string          `json:"age_range"`
	Quantity   int             `json:"quantity"`
	DailyPrice decimal.Decimal `json:"daily_price"`
}

// TotalDays returns the length of the rental window in days.
func (o *Order) TotalDays() int {
	return int(o.EndDate.Sub(o.StartDate).Hours() / 24)
}

// TotalPrice prices the whole rental window: the sum of every line's
// daily price times quantity, multiplied by the window length.
func (o *Order) TotalPrice() decimal.Decimal {
	perDay := decimal.Zero
	for _, item := range o.Items {
		perDay = perDay.Add(item.DailyPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return perDay.Mul(decimal.NewFromInt(int64(o.TotalDays())))
}

// Subtotal returns the line's cost over the given number of rental days.
func (i OrderItem) Subtotal(days int) decimal.Decimal {
	return i.DailyPrice.
		Mul(decimal.NewFromInt(int64(i.Quantity))).
		Mul(decimal.NewFromInt(int64(days)))
}

// SubmitOrderRequest carries the checkout form fields.
type SubmitOrderRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Notes           string `json:"notes"`
	PrivacyAccepted bool   `json:"privacy_accepted"`
}
