package cart

import (
	"encoding/json"
	"net/http"
	"net/url"

	"hk-storefront/internal/domain"
)

// CookieName is the cookie carrying the cart identity. The value is
// URL-encoded JSON so the existing frontend can read it as-is.
const CookieName = "hk_shopify_cart"

const cookieMaxAgeSeconds = 30 * 24 * 60 * 60

// EncodeIdentity serializes an identity into the cart cookie.
func EncodeIdentity(identity domain.CartIdentity) *http.Cookie {
	raw, _ := json.Marshal(identity)
	return &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(raw)),
		Path:     "/",
		MaxAge:   cookieMaxAgeSeconds,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// DecodeIdentity is the inverse of EncodeIdentity. It fails soft: any parse
// problem, or an identity without an id, yields nil rather than an error.
func DecodeIdentity(value string) *domain.CartIdentity {
	if value == "" {
		return nil
	}
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return nil
	}
	var identity domain.CartIdentity
	if err := json.Unmarshal([]byte(decoded), &identity); err != nil {
		return nil
	}
	if identity.ID == "" {
		return nil
	}
	return &identity
}
