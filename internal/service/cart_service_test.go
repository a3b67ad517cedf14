package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RGianluca98/Stycly/internal/models"
	"github.com/RGianluca98/Stycly/internal/repository"
	"github.com/RGianluca98/Stycly/internal/session"
	"github.com/shopspring/decimal"
)

const testSession = "session-1"

func newCartService() (*CartService, *repository.InMemoryItemRepository, *session.MemoryStore) {
	repo := repository.NewSeededItemRepository()
	sessions := session.NewMemoryStore()
	return NewCartService(repo, sessions), repo, sessions
}

func addTestItem(t *testing.T, repo *repository.InMemoryItemRepository, id string, stock int, public bool) {
	t.Helper()
	now := time.Now().UTC()
	err := repo.Create(context.Background(), &models.Item{
		ID:         id,
		OwnerID:    "owner-1",
		Title:      "Test Item " + id,
		Size:       "M (4-5A)",
		AgeRange:   "4-5 anni",
		DailyPrice: decimal.NewFromFloat(10.00),
		Stock:      stock,
		IsPublic:   public,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
}

func TestCartService_Add_UpToStockThenFails(t *testing.T) {
	svc, repo, _ := newCartService()
	ctx := context.Background()

	const stock = 3
	addTestItem(t, repo, "stocked", stock, true)

	// Adding succeeds exactly stock times.
	for i := 1; i <= stock; i++ {
		cart, err := svc.Add(ctx, testSession, "stocked")
		if err != nil {
			t.Fatalf("add %d: unexpected error: %v", i, err)
		}
		if got := cart.Quantity("stocked"); got != i {
			t.Errorf("add %d: expected quantity %d, got %d", i, i, got)
		}
	}

	// The (stock+1)th add fails with StockExceeded.
	if _, err := svc.Add(ctx, testSession, "stocked"); !errors.Is(err, ErrStockExceeded) {
		t.Errorf("expected ErrStockExceeded, got %v", err)
	}
}

func TestCartService_Add_Errors(t *testing.T) {
	svc, repo, _ := newCartService()
	ctx := context.Background()

	addTestItem(t, repo, "private", 5, false)

	tests := []struct {
		name    string
		itemID  string
		wantErr error
	}{
		{name: "unknown item", itemID: "missing", wantErr: ErrItemNotFound},
		{name: "private item", itemID: "private", wantErr: ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Add(ctx, testSession, tt.itemID); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCartService_SetQuantity(t *testing.T) {
	svc, repo, _ := newCartService()
	ctx := context.Background()

	addTestItem(t, repo, "item", 4, true)

	tests := []struct {
		name     string
		quantity int
		wantErr  error
		wantQty  int
	}{
		{name: "within stock", quantity: 3, wantQty: 3},
		{name: "exactly stock", quantity: 4, wantQty: 4},
		{name: "above stock", quantity: 5, wantErr: ErrStockExceeded},
		{name: "zero removes entry", quantity: 0, wantQty: 0},
		{name: "negative clamps to zero", quantity: -2, wantQty: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, err := svc.SetQuantity(ctx, testSession, "item", tt.quantity)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := cart.Quantity("item"); got != tt.wantQty {
				t.Errorf("expected quantity %d, got %d", tt.wantQty, got)
			}
			if tt.wantQty == 0 {
				if _, present := cart["item"]; present {
					t.Error("zero-quantity entry should not persist")
				}
			}
		})
	}
}

func TestCartService_SetQuantity_UnknownItem(t *testing.T) {
	svc, _, _ := newCartService()

	if _, err := svc.SetQuantity(context.Background(), testSession, "missing", 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCartService_Remove_Idempotent(t *testing.T) {
	svc, repo, _ := newCartService()
	ctx := context.Background()

	addTestItem(t, repo, "item", 2, true)

	if _, err := svc.Add(ctx, testSession, "item"); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err := svc.Remove(ctx, testSession, "item")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if cart.Quantity("item") != 0 {
		t.Error("expected item removed from cart")
	}

	// Removing again is not an error.
	if _, err := svc.Remove(ctx, testSession, "item"); err != nil {
		t.Errorf("second remove should be a no-op, got %v", err)
	}
}

func TestCartService_Get_DropsVanishedAndPrivateItems(t *testing.T) {
	svc, repo, _ := newCartService()
	ctx := context.Background()

	addTestItem(t, repo, "keep", 3, true)
	addTestItem(t, repo, "gone", 3, true)
	addTestItem(t, repo, "hidden", 3, true)

	for _, id := range []string{"keep", "gone", "hidden"} {
		if _, err := svc.Add(ctx, testSession, id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	// Delete one item and make another private behind the cart's back.
	if err := repo.Delete(ctx, "gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	hidden, err := repo.GetByID(ctx, "hidden")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	hidden.IsPublic = false
	if err := repo.Update(ctx, hidden); err != nil {
		t.Fatalf("update: %v", err)
	}

	view, err := svc.Get(ctx, testSession)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}

	if len(view.Items) != 1 {
		t.Fatalf("expected 1 line after tombstone cleanup, got %d", len(view.Items))
	}
	line := view.Items[0]
	if line.ItemID != "keep" {
		t.Errorf("expected surviving line to be 'keep', got %s", line.ItemID)
	}
	if line.Available != 2 {
		t.Errorf("expected stock headroom 2, got %d", line.Available)
	}
	if view.TotalItems != 1 {
		t.Errorf("expected total items 1, got %d", view.TotalItems)
	}
}

func TestCartService_ListCatalog_CartAwareStock(t *testing.T) {
	svc, repo, _ := newCartService()
	ctx := context.Background()

	addTestItem(t, repo, "limited", 2, true)

	findLimited := func(catalog []models.CatalogItem) *models.CatalogItem {
		for i := range catalog {
			if catalog[i].ID == "limited" {
				return &catalog[i]
			}
		}
		return nil
	}

	catalog, err := svc.ListCatalog(ctx, testSession, models.CatalogFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := findLimited(catalog); got == nil || got.Stock != 2 {
		t.Fatalf("expected 'limited' with available stock 2, got %+v", got)
	}

	if _, err := svc.Add(ctx, testSession, "limited"); err != nil {
		t.Fatalf("add: %v", err)
	}

	catalog, err = svc.ListCatalog(ctx, testSession, models.CatalogFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := findLimited(catalog); got == nil || got.Stock != 1 {
		t.Fatalf("expected available stock 1 with one unit carted, got %+v", got)
	}

	if _, err := svc.Add(ctx, testSession, "limited"); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Fully carted items disappear from the listing entirely.
	catalog, err = svc.ListCatalog(ctx, testSession, models.CatalogFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := findLimited(catalog); got != nil {
		t.Errorf("expected fully carted item omitted from listing, got %+v", got)
	}

	// Another session still sees the full stock.
	other, err := svc.ListCatalog(ctx, "session-2", models.CatalogFilter{})
	if err != nil {
		t.Fatalf("list other session: %v", err)
	}
	if got := findLimited(other); got == nil || got.Stock != 2 {
		t.Fatalf("expected other session to see stock 2, got %+v", got)
	}
}

func TestCartService_ListCatalog_Filter(t *testing.T) {
	svc, _, _ := newCartService()
	ctx := context.Background()

	catalog, err := svc.ListCatalog(ctx, testSession, models.CatalogFilter{Destination: "Bambina"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(catalog) == 0 {
		t.Fatal("expected filtered results")
	}
	for _, item := range catalog {
		if item.Destination != "Bambina" {
			t.Errorf("filter leaked item with destination %q", item.Destination)
		}
	}
}

func TestCartService_FilterFacets(t *testing.T) {
	svc, _, _ := newCartService()

	facets, err := svc.FilterFacets(context.Background())
	if err != nil {
		t.Fatalf("facets: %v", err)
	}

	assertSortedUnique := func(name string, values []string) {
		seen := make(map[string]bool)
		for i, v := range values {
			if seen[v] {
				t.Errorf("%s contains duplicate %q", name, v)
			}
			seen[v] = true
			if i > 0 && values[i-1] > v {
				t.Errorf("%s not sorted at %q", name, v)
			}
		}
	}

	if len(facets.Categories) == 0 {
		t.Error("expected categories facet")
	}
	assertSortedUnique("categories", facets.Categories)
	assertSortedUnique("destinations", facets.Destinations)
	assertSortedUnique("sizes", facets.Sizes)
	assertSortedUnique("age_ranges", facets.AgeRanges)
	assertSortedUnique("colors", facets.Colors)
	assertSortedUnique("conditions", facets.Conditions)
}
