package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/RGianluca98/Stycly/internal/models"
	"github.com/RGianluca98/Stycly/internal/repository"
	"github.com/RGianluca98/Stycly/internal/session"
)

// CartService maintains the per-session cart and validates every mutation
// against current catalog stock. Stock reads are point reads: two sessions
// can each pass validation for the last unit, so oversell across sessions
// is possible and accepted.
type CartService struct {
	items    repository.ItemRepository
	sessions session.Store
}

// NewCartService creates a new cart service
func NewCartService(items repository.ItemRepository, sessions session.Store) *CartService {
	return &CartService{
		items:    items,
		sessions: sessions,
	}
}

// Add puts one more unit of the item into the session's cart.
// Returns ErrItemNotFound when the item is missing or not public, and
// ErrStockExceeded when the cart already holds the item's full stock.
func (s *CartService) Add(ctx context.Context, sessionID, itemID string) (models.Cart, error) {
	item, err := s.lookupItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsPublic {
		return nil, ErrItemNotFound
	}

	cart, err := s.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	current := cart.Quantity(itemID)
	if current >= item.Stock {
		return nil, ErrStockExceeded
	}

	cart.Set(itemID, current+1)
	if err := s.sessions.SetCart(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// SetQuantity overwrites the requested quantity for the item. Negative
// quantities clamp to zero and zero removes the entry entirely.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (models.Cart, error) {
	if quantity < 0 {
		quantity = 0
	}

	item, err := s.lookupItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if quantity > item.Stock {
		return nil, ErrStockExceeded
	}

	cart, err := s.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart.Set(itemID, quantity)
	if err := s.sessions.SetCart(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Remove deletes the item's entry if present. Removing an absent item is
// not an error.
func (s *CartService) Remove(ctx context.Context, sessionID, itemID string) (models.Cart, error) {
	cart, err := s.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart.Remove(itemID)
	if err := s.sessions.SetCart(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Clear empties the session's cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.sessions.SetCart(ctx, sessionID, models.NewCart()); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Get returns the cart merged with live item data. Entries whose item no
// longer exists or is no longer public are dropped from the view without
// error so catalog edits never break existing carts.
func (s *CartService) Get(ctx context.Context, sessionID string) (*models.CartView, error) {
	cart, err := s.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	view := &models.CartView{Items: make([]models.CartLine, 0, len(cart))}
	for _, itemID := range sortedIDs(cart) {
		item, err := s.lookupItem(ctx, itemID)
		if errors.Is(err, ErrItemNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !item.IsPublic {
			continue
		}

		quantity := cart.Quantity(itemID)
		view.Items = append(view.Items, models.CartLine{
			ItemID:     item.ID,
			Title:      item.Title,
			Size:       item.Size,
			AgeRange:   item.AgeRange,
			Quantity:   quantity,
			DailyPrice: item.DailyPrice,
			Available:  item.Stock - quantity,
		})
		view.TotalItems += quantity
	}
	return view, nil
}

// ListCatalog returns the public items still available to this session.
// Available stock is total stock minus the session's cart quantity; items
// whose available stock reaches zero are omitted entirely, not shown as
// sold out.
func (s *CartService) ListCatalog(ctx context.Context, sessionID string, filter models.CatalogFilter) ([]models.CatalogItem, error) {
	items, err := s.items.GetPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public items: %w", err)
	}

	cart, err := s.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	catalog := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if !filter.Matches(item) {
			continue
		}

		available := item.Stock - cart.Quantity(item.ID)
		if available <= 0 {
			continue
		}

		catalog = append(catalog, models.CatalogItem{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Destination: item.Destination,
			Category:    item.Category,
			Size:        item.Size,
			AgeRange:    item.AgeRange,
			Color:       item.Color,
			Condition:   item.Condition,
			DailyPrice:  item.DailyPrice,
			Stock:       available,
		})
	}
	return catalog, nil
}

// GetCatalogItem returns one public item, without cart adjustment.
func (s *CartService) GetCatalogItem(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := s.lookupItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsPublic {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// FilterFacets collects the distinct values of every filterable field
// across public items.
func (s *CartService) FilterFacets(ctx context.Context) (*models.FilterFacets, error) {
	items, err := s.items.GetPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public items: %w", err)
	}

	categories := make(map[string]bool)
	destinations := make(map[string]bool)
	sizes := make(map[string]bool)
	ageRanges := make(map[string]bool)
	colors := make(map[string]bool)
	conditions := make(map[string]bool)

	for _, item := range items {
		markFacet(categories, item.Category)
		markFacet(destinations, item.Destination)
		markFacet(sizes, item.Size)
		markFacet(ageRanges, item.AgeRange)
		markFacet(colors, item.Color)
		markFacet(conditions, item.Condition)
	}

	return &models.FilterFacets{
		Categories:   sortedFacet(categories),
		Destinations: sortedFacet(destinations),
		Sizes:        sortedFacet(sizes),
		AgeRanges:    sortedFacet(ageRanges),
		Colors:       sortedFacet(colors),
		Conditions:   sortedFacet(conditions),
	}, nil
}

func (s *CartService) lookupItem(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if errors.Is(err, repository.ErrItemNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func sortedIDs(cart models.Cart) []string {
	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func markFacet(set map[string]bool, value string) {
	if value != "" {
		set[value] = true
	}
}

func sortedFacet(set map[string]bool) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
