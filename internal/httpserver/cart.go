package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "hk-storefront/internal/cart"
	"hk-storefront/internal/domain"
)

// readIdentity pulls the cart identity out of the request cookie. The raw
// (still URL-encoded) value is read from the request directly because the
// codec owns the unescaping.
func readIdentity(c *gin.Context) *domain.CartIdentity {
	cookie, err := c.Request.Cookie(cartsvc.CookieName)
	if err != nil {
		return nil
	}
	return cartsvc.DecodeIdentity(cookie.Value)
}

// writeIdentity persists the (possibly new) identity back to the client.
func writeIdentity(c *gin.Context, identity domain.CartIdentity) {
	http.SetCookie(c.Writer, cartsvc.EncodeIdentity(identity))
}

func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no cart resolvable"})
	case errors.Is(err, domain.ErrNoLines):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no resolvable lines"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
	case errors.Is(err, domain.ErrRemoteUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commerce backend unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart operation failed"})
	}
}

type createCartRequest struct {
	CartID string `json:"cartId"`
}

func createCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createCartRequest
		_ = c.ShouldBindJSON(&req) // body optional

		cartID := req.CartID
		if cartID == "" {
			if identity := readIdentity(c); identity != nil {
				cartID = identity.ID
			}
		}

		raw, identity, err := svc.Bootstrap(c.Request.Context(), cartID)
		if err != nil {
			cartError(c, err)
			return
		}
		writeIdentity(c, identity)
		c.JSON(http.StatusOK, gin.H{
			"cartId":      raw.ID,
			"checkoutUrl": raw.CheckoutURL,
			"hasLines":    len(raw.LineNodes()) > 0,
			"cart":        raw,
		})
	}
}

type getCartRequest struct {
	CartID string `json:"cartId"`
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := readIdentity(c)

		var req getCartRequest
		_ = c.ShouldBindJSON(&req) // body optional
		if req.CartID != "" {
			override := domain.CartIdentity{ID: req.CartID}
			if identity != nil {
				override.Key = identity.Key
			}
			identity = &override
		}

		summary, newIdentity, err := svc.GetOrCreate(c.Request.Context(), identity)
		if err != nil {
			cartError(c, err)
			return
		}
		writeIdentity(c, newIdentity)
		c.JSON(http.StatusOK, summary)
	}
}

type addToCartRequest struct {
	CartID string                `json:"cartId"`
	Lines  []cartsvc.LineRequest `json:"lines"`

	// Single-line shorthand accepted alongside the batch form.
	VariantID  string             `json:"variantId"`
	Quantity   int                `json:"quantity"`
	Attributes []domain.Attribute `json:"attributes"`
}

func addToCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		lines := req.Lines
		if len(lines) == 0 && req.VariantID != "" {
			lines = []cartsvc.LineRequest{{
				VariantID:  req.VariantID,
				Quantity:   req.Quantity,
				Attributes: req.Attributes,
			}}
		}

		identity := readIdentity(c)
		if req.CartID != "" {
			override := domain.CartIdentity{ID: req.CartID}
			if identity != nil {
				override.Key = identity.Key
			}
			identity = &override
		}

		summary, newIdentity, err := svc.AddLines(c.Request.Context(), identity, lines)
		if err != nil {
			cartError(c, err)
			return
		}
		writeIdentity(c, newIdentity)
		c.JSON(http.StatusOK, summary)
	}
}

type updateCartRequest struct {
	CartID        string                      `json:"cartId"`
	Lines         []cartsvc.LineUpdateRequest `json:"lines"`
	RemoveLineIDs []string                    `json:"removeLineIds"`
}

func updateCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.CartID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cartId required"})
			return
		}
		if len(req.Lines) == 0 && len(req.RemoveLineIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lines or removeLineIds required"})
			return
		}

		summary, identity, err := svc.Update(c.Request.Context(), req.CartID, req.Lines, req.RemoveLineIDs)
		if err != nil {
			cartError(c, err)
			return
		}
		writeIdentity(c, identity)
		c.JSON(http.StatusOK, summary)
	}
}

type clearCartRequest struct {
	CartID string `json:"cartId"`
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req clearCartRequest
		_ = c.ShouldBindJSON(&req) // body optional

		cartID := req.CartID
		if cartID == "" {
			if identity := readIdentity(c); identity != nil {
				cartID = identity.ID
			}
		}
		if cartID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no cart resolvable"})
			return
		}

		summary, identity, err := svc.Clear(c.Request.Context(), cartID)
		if err != nil {
			cartError(c, err)
			return
		}
		writeIdentity(c, identity)
		c.JSON(http.StatusOK, summary)
	}
}
