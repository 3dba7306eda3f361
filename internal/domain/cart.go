package domain

// CartIdentity is the client-held reference to a remote cart. It is the only
// durable record of which cart belongs to a browser and lives in a cookie;
// the remote backend owns the cart contents themselves.
type CartIdentity struct {
	ID          string `json:"id"`
	Key         string `json:"key,omitempty"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}

// Attribute is a free-form key/value pair attached to a cart line.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CartLine is the canonical, UI-facing line shape. Money is integer minor
// units; LineAmount is always UnitPrice * Quantity exactly.
type CartLine struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	VariantID     string      `json:"variantId"`
	Quantity      int         `json:"quantity"`
	UnitPrice     int64       `json:"unitPrice"`
	LineAmount    int64       `json:"lineAmount"`
	ImageURL      string      `json:"imageUrl,omitempty"`
	ProductHandle string      `json:"productHandle,omitempty"`
	Attributes    []Attribute `json:"attributes"`
	WeightKg      *float64    `json:"weightKg,omitempty"`
	WeightUnit    string      `json:"weightUnit,omitempty"`
}

// CartSummary is the only cart shape callers outside this module may depend
// on; it isolates them from the backend's native cart schema.
type CartSummary struct {
	CartID         *string    `json:"cartId"`
	CheckoutURL    string     `json:"checkoutUrl,omitempty"`
	LineCount      int        `json:"lineCount"`
	ItemCount      int        `json:"itemCount"`
	SubtotalAmount int64      `json:"subtotalAmount"`
	CurrencyCode   string     `json:"currencyCode"`
	Lines          []CartLine `json:"lines"`
}
