package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RGianluca98/Stycly/internal/middleware"
	"github.com/RGianluca98/Stycly/internal/models"
	"github.com/RGianluca98/Stycly/internal/repository"
	"github.com/RGianluca98/Stycly/internal/service"
	"github.com/RGianluca98/Stycly/internal/session"
	"github.com/RGianluca98/Stycly/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const testCookie = "stycly_session"

func newCartRouter() (chi.Router, *repository.InMemoryItemRepository) {
	repo := repository.NewSeededItemRepository()
	sessions := session.NewMemoryStore()
	log := logger.New("error")

	cartService := service.NewCartService(repo, sessions)
	cartHandler := NewCartHandler(cartService, log)
	catalogHandler := NewCatalogHandler(cartService, log)

	r := chi.NewRouter()
	r.Use(middleware.Session(testCookie))
	r.Get("/api/cart", cartHandler.Get)
	r.Post("/api/cart/add", cartHandler.Add)
	r.Post("/api/cart/update", cartHandler.Update)
	r.Post("/api/cart/remove", cartHandler.Remove)
	r.Post("/api/cart/clear", cartHandler.Clear)
	r.Get("/api/products", catalogHandler.ListProducts)

	return r, repo
}

func sessionRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "test-session"})
	return req
}

func decodeCartResponse(t *testing.T, w *httptest.ResponseRecorder) CartResponse {
	t.Helper()
	var resp CartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestCartHandler_AddAndCount(t *testing.T) {
	r, _ := newCartRouter()

	// Seeded item "2" has stock 2: two adds succeed, the third is rejected.
	for i := 1; i <= 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, sessionRequest(http.MethodPost, "/api/cart/add", `{"item_id":"2"}`))

		if w.Code != http.StatusOK {
			t.Fatalf("add %d: expected status 200, got %d", i, w.Code)
		}
		resp := decodeCartResponse(t, w)
		if !resp.Success {
			t.Fatalf("add %d: expected success", i)
		}
		if resp.CartCount != i {
			t.Errorf("add %d: expected cart count %d, got %d", i, i, resp.CartCount)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodPost, "/api/cart/add", `{"item_id":"2"}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 on exhausted stock, got %d", w.Code)
	}
	resp := decodeCartResponse(t, w)
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Message != "Maximum stock reached" {
		t.Errorf("expected stock message, got %q", resp.Message)
	}
}

func TestCartHandler_Add_UnknownItem(t *testing.T) {
	r, _ := newCartRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodPost, "/api/cart/add", `{"item_id":"999"}`))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestCartHandler_Add_MissingItemID(t *testing.T) {
	r, _ := newCartRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodPost, "/api/cart/add", `{}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	resp := decodeCartResponse(t, w)
	if resp.Message != "Item ID required" {
		t.Errorf("expected item id message, got %q", resp.Message)
	}
}

func TestCartHandler_UpdateToZeroRemovesLine(t *testing.T) {
	r, _ := newCartRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodPost, "/api/cart/add", `{"item_id":"4"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodPost, "/api/cart/update", `{"item_id":"4","quantity":0}`))
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", w.Code)
	}
	if resp := decodeCartResponse(t, w); resp.CartCount != 0 {
		t.Errorf("expected empty cart, got count %d", resp.CartCount)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodGet, "/api/cart", ""))

	var view models.CartView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decode cart view: %v", err)
	}
	if len(view.Items) != 0 {
		t.Errorf("expected no lines after zero-quantity update, got %d", len(view.Items))
	}
}

func TestCartHandler_RemoveIsIdempotent(t *testing.T) {
	r, _ := newCartRouter()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, sessionRequest(http.MethodPost, "/api/cart/remove", `{"item_id":"4"}`))
		if w.Code != http.StatusOK {
			t.Errorf("remove %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestCartHandler_CatalogOmitsFullyCartedItems(t *testing.T) {
	r, _ := newCartRouter()

	// Seeded item "1" has stock 1; cart it fully.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodPost, "/api/cart/add", `{"item_id":"1"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodGet, "/api/products", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}

	var catalog []models.CatalogItem
	if err := json.NewDecoder(w.Body).Decode(&catalog); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	for _, item := range catalog {
		if item.ID == "1" {
			t.Errorf("fully carted item should be omitted, got %+v", item)
		}
	}

	// A different session still sees it.
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "other-session"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	catalog = nil
	if err := json.NewDecoder(w.Body).Decode(&catalog); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	found := false
	for _, item := range catalog {
		if item.ID == "1" {
			found = true
		}
	}
	if !found {
		t.Error("other session should still see the item")
	}
}

func TestCartHandler_ClearEmptiesCart(t *testing.T) {
	r, _ := newCartRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodPost, "/api/cart/add", `{"item_id":"4"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodPost, "/api/cart/clear", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, sessionRequest(http.MethodGet, "/api/cart", ""))

	var view models.CartView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decode cart view: %v", err)
	}
	if view.TotalItems != 0 {
		t.Errorf("expected empty cart, got %d items", view.TotalItems)
	}
}
