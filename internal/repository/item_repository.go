package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/RGianluca98/Stycly/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound = errors.New("item not found")
)

// ItemRepository defines the interface for wardrobe item data access
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*models.Item, error)
	GetPublic(ctx context.Context) ([]models.Item, error)
	GetByOwner(ctx context.Context, ownerID string) ([]models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// InMemoryItemRepository implements ItemRepository with in-memory storage
type InMemoryItemRepository struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

// NewInMemoryItemRepository creates an empty in-memory item repository
func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items: make(map[string]models.Item),
	}
}

// NewSeededItemRepository creates an in-memory repository populated with the
// sample wardrobe used for local development and tests
func NewSeededItemRepository() *InMemoryItemRepository {
	repo := NewInMemoryItemRepository()
	now := time.Now().UTC()

	seed := []models.Item{
		{ID: "1", OwnerID: "admin", Title: "Vestito Elegante Rosa", Destination: "Bambina", Category: "Camicie", Size: "M (4-5A)", AgeRange: "4-5 anni", Color: "Pink", Condition: "Excellent", DailyPrice: decimal.NewFromFloat(8.50), Stock: 1, IsPublic: true},
		{ID: "2", OwnerID: "admin", Title: "Completo Elegante Blu", Destination: "Bambino", Category: "Bambino", Size: "L (6-7A)", AgeRange: "6-7 anni", Color: "Blue", Condition: "Like New", DailyPrice: decimal.NewFromFloat(10.00), Stock: 2, IsPublic: true},
		{ID: "3", OwnerID: "admin", Title: "Vestito Vintage Beige", Destination: "Bambina", Category: "Camicie", Size: "S (2-3A)", AgeRange: "2-3 anni", Color: "Beige", Condition: "Vintage", DailyPrice: decimal.NewFromFloat(7.00), Stock: 1, IsPublic: true},
		{ID: "4", OwnerID: "admin", Title: "Camicia Bianca Formale", Destination: "Bambino", Category: "Camicie", Size: "M (4-5A)", AgeRange: "4-5 anni", Color: "White", Condition: "New without Tags", DailyPrice: decimal.NewFromFloat(6.50), Stock: 3, IsPublic: true},
		{ID: "5", OwnerID: "admin", Title: "Accessorio Props - Cappello", Destination: "Stycly props", Category: "Props", Size: "Unica", AgeRange: "2-8 anni", Color: "Brown", Condition: "Good", DailyPrice: decimal.NewFromFloat(3.00), Stock: 2, IsPublic: true},
	}

	for _, item := range seed {
		item.CreatedAt = now
		item.UpdatedAt = now
		repo.items[item.ID] = item
	}

	return repo
}

// GetByID returns an item by its ID
func (r *InMemoryItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

// GetPublic returns all items visible in the public catalog, sorted by ID
func (r *InMemoryItemRepository) GetPublic(ctx context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		if item.IsPublic {
			items = append(items, item)
		}
	}
	sortItems(items)
	return items, nil
}

// GetByOwner returns all items belonging to one wardrobe owner, sorted by ID
func (r *InMemoryItemRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0)
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	sortItems(items)
	return items, nil
}

// Create stores a new item
func (r *InMemoryItemRepository) Create(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = *item
	return nil
}

// Update overwrites an existing item
func (r *InMemoryItemRepository) Update(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return ErrItemNotFound
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes an item by ID
func (r *InMemoryItemRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// DeleteByOwner removes every item belonging to the owner
func (r *InMemoryItemRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.OwnerID == ownerID {
			delete(r.items, id)
		}
	}
	return nil
}

func sortItems(items []models.Item) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}
