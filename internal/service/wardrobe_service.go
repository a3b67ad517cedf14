package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RGianluca98/Stycly/internal/models"
	"github.com/RGianluca98/Stycly/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WardrobeService manages a user's own items. Every mutation is scoped to
// the owner: touching another user's item reports ErrItemNotFound rather
// than revealing it exists.
type WardrobeService struct {
	items repository.ItemRepository
}

// NewWardrobeService creates a new wardrobe service
func NewWardrobeService(items repository.ItemRepository) *WardrobeService {
	return &WardrobeService{items: items}
}

// ItemInput carries the editable fields of a wardrobe item.
type ItemInput struct {
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
}

// List returns the owner's items, newest catalog order.
func (s *WardrobeService) List(ctx context.Context, ownerID string) ([]models.Item, error) {
	items, err := s.items.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wardrobe: %w", err)
	}
	return items, nil
}

// Add creates a new item in the owner's wardrobe.
func (s *WardrobeService) Add(ctx context.Context, ownerID string, input ItemInput) (*models.Item, error) {
	input.Title = strings.TrimSpace(input.Title)
	if verrs := validateItemInput(input); len(verrs) > 0 {
		return nil, verrs
	}

	now := time.Now().UTC()
	item := &models.Item{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Destination: input.Destination,
		Category:    input.Category,
		Size:        input.Size,
		AgeRange:    input.AgeRange,
		Color:       input.Color,
		Condition:   input.Condition,
		DailyPrice:  input.DailyPrice,
		Stock:       input.Stock,
		IsPublic:    input.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// Edit updates an item the owner holds.
func (s *WardrobeService) Edit(ctx context.Context, ownerID, itemID string, input ItemInput) (*models.Item, error) {
	input.Title = strings.TrimSpace(input.Title)
	if verrs := validateItemInput(input); len(verrs) > 0 {
		return nil, verrs
	}

	item, err := s.ownedItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	item.Title = input.Title
	item.Description = input.Description
	item.Destination = input.Destination
	item.Category = input.Category
	item.Size = input.Size
	item.AgeRange = input.AgeRange
	item.Color = input.Color
	item.Condition = input.Condition
	item.DailyPrice = input.DailyPrice
	item.Stock = input.Stock
	item.IsPublic = input.IsPublic
	item.UpdatedAt = time.Now().UTC()

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// Delete removes one of the owner's items. Existing order lines keep their
// snapshot; deleting an item never touches historical orders.
func (s *WardrobeService) Delete(ctx context.Context, ownerID, itemID string) error {
	if _, err := s.ownedItem(ctx, ownerID, itemID); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// DeleteAll empties the owner's wardrobe.
func (s *WardrobeService) DeleteAll(ctx context.Context, ownerID string) error {
	if err := s.items.DeleteByOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("delete wardrobe: %w", err)
	}
	return nil
}

func (s *WardrobeService) ownedItem(ctx context.Context, ownerID, itemID string) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if errors.Is(err, repository.ErrItemNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item.OwnerID != ownerID {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func validateItemInput(input ItemInput) ValidationErrors {
	var verrs ValidationErrors

	if input.Title == "" {
		verrs.add(CodeMissingField, "Title is required.")
	}
	if input.DailyPrice.IsNegative() {
		verrs.add(CodeInvalidPrice, "Daily price must be positive.")
	}
	if input.Stock < 0 {
		verrs.add(CodeInvalidStock, "Stock must be positive.")
	}

	return verrs
}
