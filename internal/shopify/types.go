package shopify

// Wire shapes for the Storefront GraphQL API. These mirror the backend's
// schema and are read-only from this service's perspective; everything
// UI-facing goes through the canonical mapping in internal/cart.

type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ProductRef is the parent product seen through a cart line's merchandise.
type ProductRef struct {
	Title         string `json:"title"`
	Handle        string `json:"handle"`
	FeaturedImage *Image `json:"featuredImage"`
}

// Merchandise is the product variant referenced by a cart line.
type Merchandise struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Price      Money      `json:"price"`
	Weight     *float64   `json:"weight"`
	WeightUnit string     `json:"weightUnit"`
	Image      *Image     `json:"image"`
	Product    ProductRef `json:"product"`
}

type CartLine struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Attributes  []Attribute `json:"attributes"`
	Merchandise Merchandise `json:"merchandise"`
}

type CartLineEdge struct {
	Node CartLine `json:"node"`
}

type CartCost struct {
	SubtotalAmount Money `json:"subtotalAmount"`
}

type Cart struct {
	ID            string   `json:"id"`
	CheckoutURL   string   `json:"checkoutUrl"`
	TotalQuantity int      `json:"totalQuantity"`
	Cost          CartCost `json:"cost"`
	Lines         struct {
		Edges []CartLineEdge `json:"edges"`
	} `json:"lines"`
}

// LineNodes flattens the lines connection.
func (c *Cart) LineNodes() []CartLine {
	if c == nil {
		return nil
	}
	out := make([]CartLine, 0, len(c.Lines.Edges))
	for _, edge := range c.Lines.Edges {
		out = append(out, edge.Node)
	}
	return out
}

// LineInput seeds or extends a cart.
type LineInput struct {
	MerchandiseID string      `json:"merchandiseId"`
	Quantity      int         `json:"quantity"`
	Attributes    []Attribute `json:"attributes,omitempty"`
}

// LineUpdateInput changes the quantity of an existing line.
type LineUpdateInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type Variant struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Price            Money  `json:"price"`
	AvailableForSale bool   `json:"availableForSale"`
	Image            *Image `json:"image"`
}

type VariantEdge struct {
	Node Variant `json:"node"`
}

type Product struct {
	ID            string `json:"id"`
	Handle        string `json:"handle"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	FeaturedImage *Image `json:"featuredImage"`
	PriceRange    struct {
		MinVariantPrice Money `json:"minVariantPrice"`
	} `json:"priceRange"`
	Variants struct {
		Edges []VariantEdge `json:"edges"`
	} `json:"variants"`
}

// VariantNodes flattens the variants connection.
func (p *Product) VariantNodes() []Variant {
	if p == nil {
		return nil
	}
	out := make([]Variant, 0, len(p.Variants.Edges))
	for _, edge := range p.Variants.Edges {
		out = append(out, edge.Node)
	}
	return out
}

type ProductEdge struct {
	Node Product `json:"node"`
}

type Collection struct {
	ID       string `json:"id"`
	Handle   string `json:"handle"`
	Title    string `json:"title"`
	Products struct {
		Edges []ProductEdge `json:"edges"`
	} `json:"products"`
}

// ProductNodes flattens the collection's products connection.
func (c *Collection) ProductNodes() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, 0, len(c.Products.Edges))
	for _, edge := range c.Products.Edges {
		out = append(out, edge.Node)
	}
	return out
}

type userError struct {
	Field   []string `json:"field"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
}
