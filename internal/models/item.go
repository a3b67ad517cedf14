package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a listable wardrobe item owned by one user. Stock is the total
// number of units owned; IsPublic gates catalog visibility.
type Item struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Destination string          `json:"destination"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	AgeRange    string          `json:"age_range"`
	Color       string          `json:"color"`
	Condition   string          `json:"condition"`
	DailyPrice  decimal.Decimal `json:"daily_price"`
	Stock       int             `json:"stock"`
	IsPublic    bool            `json:"is_public"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CatalogItem is an item rendered for the public catalog. Stock here is the
// stock still available to the viewing session, not the total owned.
type CatalogItem struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Destination string          `json:"destination"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	AgeRange    string          `json:"age_range"`
	Color       string          `json:"color"`
	Condition   string          `json:"condition"`
	DailyPrice  decimal.Decimal `json:"daily_price"`
	Stock       int             `json:"stock"`
}

// CatalogFilter narrows the public listing. Zero values match everything.
type CatalogFilter struct {
	Destination string
	Category    string
	Size        string
	AgeRange    string
	Color       string
	Condition   string
}

// Matches reports whether the item satisfies every set field of the filter.
func (f CatalogFilter) Matches(item Item) bool {
	if f.Destination != "" && f.Destination != item.Destination {
		return false
	}
	if f.Category != "" && f.Category != item.Category {
		return false
	}
	if f.Size != "" && f.Size != item.Size {
		return false
	}
	if f.AgeRange != "" && f.AgeRange != item.AgeRange {
		return false
	}
	if f.Color != "" && f.Color != item.Color {
		return false
	}
	if f.Condition != "" && f.Condition != item.Condition {
		return false
	}
	return true
}

// FilterFacets lists the distinct values present across public items,
// sorted, one slice per filterable field.
type FilterFacets struct {
	Categories   []string `json:"categories"`
	Destinations []string `json:"destinations"`
	Sizes        []string `json:"sizes"`
	AgeRanges    []string `json:"age_ranges"`
	Colors       []string `json:"colors"`
	Conditions   []string `json:"conditions"`
}
