package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	cartsvc "hk-storefront/internal/cart"
	"hk-storefront/internal/domain"
	"hk-storefront/internal/shopify"
)

type stubCartService struct {
	summary  domain.CartSummary
	identity domain.CartIdentity
	raw      *shopify.Cart
	err      error

	lastIdentity *domain.CartIdentity
	lastLines    []cartsvc.LineRequest
	lastCartID   string
	lastUpdates  []cartsvc.LineUpdateRequest
	lastRemove   []string
}

func (s *stubCartService) GetOrCreate(_ context.Context, identity *domain.CartIdentity) (domain.CartSummary, domain.CartIdentity, error) {
	s.lastIdentity = identity
	return s.summary, s.identity, s.err
}

func (s *stubCartService) Bootstrap(_ context.Context, cartID string) (*shopify.Cart, domain.CartIdentity, error) {
	s.lastCartID = cartID
	return s.raw, s.identity, s.err
}

func (s *stubCartService) AddLines(_ context.Context, identity *domain.CartIdentity, lines []cartsvc.LineRequest) (domain.CartSummary, domain.CartIdentity, error) {
	s.lastIdentity = identity
	s.lastLines = lines
	return s.summary, s.identity, s.err
}

func (s *stubCartService) Update(_ context.Context, cartID string, updates []cartsvc.LineUpdateRequest, removeLineIDs []string) (domain.CartSummary, domain.CartIdentity, error) {
	s.lastCartID = cartID
	s.lastUpdates = updates
	s.lastRemove = removeLineIDs
	return s.summary, s.identity, s.err
}

func (s *stubCartService) Clear(_ context.Context, cartID string) (domain.CartSummary, domain.CartIdentity, error) {
	s.lastCartID = cartID
	return s.summary, s.identity, s.err
}

func testRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return buildRouter(log.New(io.Discard, "", 0), deps)
}

func strPtr(v string) *string {
	return &v
}

func TestAddToCartEndToEnd(t *testing.T) {
	svc := &stubCartService{
		summary: domain.CartSummary{
			CartID:         strPtr("gid://shopify/Cart/new"),
			LineCount:      1,
			ItemCount:      2,
			SubtotalAmount: 17900,
			CurrencyCode:   "ZAR",
			Lines:          []domain.CartLine{{ID: "l1", Quantity: 2, UnitPrice: 8950, LineAmount: 17900}},
		},
		identity: domain.CartIdentity{ID: "gid://shopify/Cart/new", Key: "k1"},
	}
	router := testRouter(Deps{CartSvc: svc})

	body := bytes.NewBufferString(`{"variantId":"123","quantity":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/shopify/cart/add", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got domain.CartSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.CartID == nil || *got.CartID != "gid://shopify/Cart/new" {
		t.Fatalf("unexpected cartId %v", got.CartID)
	}
	if got.ItemCount != 2 || got.LineCount != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}

	if len(svc.lastLines) != 1 || svc.lastLines[0].VariantID != "123" || svc.lastLines[0].Quantity != 2 {
		t.Fatalf("single-line shorthand not forwarded: %+v", svc.lastLines)
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, cookie := range cookies {
		if cookie.Name != cartsvc.CookieName {
			continue
		}
		found = true
		identity := cartsvc.DecodeIdentity(cookie.Value)
		if identity == nil || identity.ID != "gid://shopify/Cart/new" {
			t.Fatalf("cookie does not encode the new cart id: %+v", identity)
		}
	}
	if !found {
		t.Fatalf("expected a %s Set-Cookie header", cartsvc.CookieName)
	}
}

func TestAddToCartReadsIdentityCookie(t *testing.T) {
	svc := &stubCartService{
		summary:  domain.CartSummary{CartID: strPtr("c1"), Lines: []domain.CartLine{}},
		identity: domain.CartIdentity{ID: "c1", Key: "k1"},
	}
	router := testRouter(Deps{CartSvc: svc})

	body := bytes.NewBufferString(`{"lines":[{"variantId":"v1","quantity":1}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/shopify/cart/add", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cartsvc.EncodeIdentity(domain.CartIdentity{ID: "c1", Key: "k1"}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastIdentity == nil || svc.lastIdentity.ID != "c1" || svc.lastIdentity.Key != "k1" {
		t.Fatalf("cookie identity not forwarded: %+v", svc.lastIdentity)
	}
}

func TestAddToCartNoLines(t *testing.T) {
	svc := &stubCartService{err: domain.ErrNoLines}
	router := testRouter(Deps{CartSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/api/shopify/cart/add", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetCartSetsCookie(t *testing.T) {
	svc := &stubCartService{
		summary:  domain.CartSummary{CartID: strPtr("c1"), CurrencyCode: "ZAR", Lines: []domain.CartLine{}},
		identity: domain.CartIdentity{ID: "c1", Key: "k1"},
	}
	router := testRouter(Deps{CartSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/shopify/cart/get", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), cartsvc.CookieName) {
		t.Fatalf("expected identity cookie to be rewritten")
	}
}

func TestCreateCartResponseShape(t *testing.T) {
	raw := &shopify.Cart{ID: "c1", CheckoutURL: "https://shop.example/checkouts/c1"}
	svc := &stubCartService{raw: raw, identity: domain.CartIdentity{ID: "c1", Key: "k1"}}
	router := testRouter(Deps{CartSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/api/shopify/cart/create", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got struct {
		CartID      string `json:"cartId"`
		CheckoutURL string `json:"checkoutUrl"`
		HasLines    bool   `json:"hasLines"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.CartID != "c1" || got.HasLines {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestUpdateCartValidation(t *testing.T) {
	router := testRouter(Deps{CartSvc: &stubCartService{}})

	for name, body := range map[string]string{
		"missing cartId":  `{"lines":[{"id":"l1","quantity":2}]}`,
		"missing batches": `{"cartId":"c1"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/shopify/cart/update", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", name, rec.Code)
		}
	}
}

func TestUpdateCartForwardsBatches(t *testing.T) {
	svc := &stubCartService{
		summary:  domain.CartSummary{CartID: strPtr("c1"), Lines: []domain.CartLine{}},
		identity: domain.CartIdentity{ID: "c1", Key: "k1"},
	}
	router := testRouter(Deps{CartSvc: svc})

	body := `{"cartId":"c1","lines":[{"id":"l1","quantity":2}],"removeLineIds":["l2"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/shopify/cart/update", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastCartID != "c1" || len(svc.lastUpdates) != 1 || len(svc.lastRemove) != 1 {
		t.Fatalf("batches not forwarded: cartID=%q updates=%v remove=%v", svc.lastCartID, svc.lastUpdates, svc.lastRemove)
	}
}

func TestClearCartRequiresResolvableCart(t *testing.T) {
	router := testRouter(Deps{CartSvc: &stubCartService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/shopify/cart/clear", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestClearCartUnknownRemote(t *testing.T) {
	svc := &stubCartService{err: domain.ErrNotFound}
	router := testRouter(Deps{CartSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/api/shopify/cart/clear", bytes.NewBufferString(`{"cartId":"gone"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestClearCartFallsBackToCookie(t *testing.T) {
	svc := &stubCartService{
		summary:  domain.CartSummary{CartID: strPtr("c1"), Lines: []domain.CartLine{}},
		identity: domain.CartIdentity{ID: "c1", Key: "k1"},
	}
	router := testRouter(Deps{CartSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/api/shopify/cart/clear", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cartsvc.EncodeIdentity(domain.CartIdentity{ID: "c1"}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastCartID != "c1" {
		t.Fatalf("cookie cart id not used, got %q", svc.lastCartID)
	}
}

func TestCartRemoteUnavailable(t *testing.T) {
	svc := &stubCartService{err: domain.ErrRemoteUnavailable}
	router := testRouter(Deps{CartSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/shopify/cart/get", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}
