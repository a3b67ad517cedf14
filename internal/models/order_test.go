package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOrder_TotalDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{name: "three day window", start: date(2026, 9, 1), end: date(2026, 9, 4), want: 3},
		{name: "same day", start: date(2026, 9, 1), end: date(2026, 9, 1), want: 0},
		{name: "across month boundary", start: date(2026, 8, 30), end: date(2026, 9, 2), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{StartDate: tt.start, EndDate: tt.end}
			if got := o.TotalDays(); got != tt.want {
				t.Errorf("expected %d days, got %d", tt.want, got)
			}
		})
	}
}

func TestOrder_TotalPrice(t *testing.T) {
	o := Order{
		StartDate: date(2026, 9, 1),
		EndDate:   date(2026, 9, 4),
		Items: []OrderItem{
			{ItemID: "a", Quantity: 2, DailyPrice: decimal.NewFromFloat(10.00)},
			{ItemID: "b", Quantity: 1, DailyPrice: decimal.NewFromFloat(4.50)},
		},
	}

	// (10.00×2 + 4.50×1) × 3 days = 73.50: the whole window is priced,
	// not each line independently.
	want := decimal.NewFromFloat(73.50)
	if got := o.TotalPrice(); !got.Equal(want) {
		t.Errorf("expected total %s, got %s", want, got)
	}
}

func TestOrderItem_Subtotal(t *testing.T) {
	item := OrderItem{Quantity: 2, DailyPrice: decimal.NewFromFloat(9.00)}

	want := decimal.NewFromFloat(54.00)
	if got := item.Subtotal(3); !got.Equal(want) {
		t.Errorf("expected subtotal %s, got %s", want, got)
	}
}

func TestCart_SetAndCount(t *testing.T) {
	cart := NewCart()

	cart.Set("a", 2)
	cart.Set("b", 1)
	if got := cart.Count(); got != 3 {
		t.Errorf("expected count 3, got %d", got)
	}

	cart.Set("a", 0)
	if _, present := cart["a"]; present {
		t.Error("setting quantity zero must delete the entry")
	}

	cart.Set("b", -5)
	if len(cart) != 0 {
		t.Errorf("negative quantity must delete the entry, cart: %v", cart)
	}
}
