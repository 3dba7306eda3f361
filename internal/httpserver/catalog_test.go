package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hk-storefront/internal/domain"
	"hk-storefront/internal/shopify"
)

type stubCatalog struct {
	products    []shopify.Product
	product     *shopify.Product
	collection  *shopify.Collection
	err         error
	lastFirst   int
	lastHandle  string
	lastHandles []string
}

func (s *stubCatalog) Products(_ context.Context, first int) ([]shopify.Product, error) {
	s.lastFirst = first
	return s.products, s.err
}

func (s *stubCatalog) ProductByHandle(_ context.Context, handle string) (*shopify.Product, error) {
	s.lastHandle = handle
	return s.product, s.err
}

func (s *stubCatalog) ProductsByHandles(_ context.Context, handles []string) ([]shopify.Product, error) {
	s.lastHandles = handles
	return s.products, s.err
}

func (s *stubCatalog) CollectionByHandle(_ context.Context, handle string, first int) (*shopify.Collection, error) {
	s.lastHandle = handle
	s.lastFirst = first
	return s.collection, s.err
}

func TestListProducts(t *testing.T) {
	cat := &stubCatalog{products: []shopify.Product{{Handle: "boerewors", Title: "Boerewors"}}}
	router := testRouter(Deps{Catalog: cat})

	req := httptest.NewRequest(http.MethodGet, "/api/shopify/products?first=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if cat.lastFirst != 5 {
		t.Fatalf("first query param not forwarded, got %d", cat.lastFirst)
	}
	if !strings.Contains(rec.Body.String(), "boerewors") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestProductByHandleNotFound(t *testing.T) {
	router := testRouter(Deps{Catalog: &stubCatalog{err: domain.ErrNotFound}})

	req := httptest.NewRequest(http.MethodGet, "/api/shopify/products/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestProductsByHandlesValidation(t *testing.T) {
	router := testRouter(Deps{Catalog: &stubCatalog{}})

	for _, body := range []string{`{}`, `{"handles":[]}`} {
		rec := postJSON(router, "/api/shopify/products/by-handles", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %s, got %d", body, rec.Code)
		}
	}
}

func TestProductsByHandles(t *testing.T) {
	cat := &stubCatalog{products: []shopify.Product{{Handle: "biltong"}, {Handle: "droewors"}}}
	router := testRouter(Deps{Catalog: cat})

	rec := postJSON(router, "/api/shopify/products/by-handles", `{"handles":["biltong","droewors","missing"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(cat.lastHandles) != 3 {
		t.Fatalf("handles not forwarded: %v", cat.lastHandles)
	}
}

func TestCollectionByHandle(t *testing.T) {
	cat := &stubCatalog{collection: &shopify.Collection{Handle: "braai-packs", Title: "Braai Packs"}}
	router := testRouter(Deps{Catalog: cat})

	req := httptest.NewRequest(http.MethodGet, "/api/shopify/collections/braai-packs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if cat.lastHandle != "braai-packs" {
		t.Fatalf("handle not forwarded, got %q", cat.lastHandle)
	}
}
