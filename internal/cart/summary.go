package cart

import (
	"math"
	"strings"

	"hk-storefront/internal/domain"
	"hk-storefront/internal/shopify"
)

const defaultCurrency = "ZAR"

// defaultVariantTitle is what the backend reports for single-variant products.
const defaultVariantTitle = "Default Title"

// ToSummary maps a raw remote cart into the canonical summary. A nil cart
// yields the zero-value summary so callers never need a nil check.
func ToSummary(raw *shopify.Cart) domain.CartSummary {
	summary := domain.CartSummary{
		CurrencyCode: defaultCurrency,
		Lines:        []domain.CartLine{},
	}
	if raw == nil {
		return summary
	}

	summary.CartID = &raw.ID
	summary.CheckoutURL = raw.CheckoutURL
	if code := raw.Cost.SubtotalAmount.CurrencyCode; code != "" {
		summary.CurrencyCode = code
	}

	for _, node := range raw.LineNodes() {
		line := toLine(node)
		summary.Lines = append(summary.Lines, line)
		summary.ItemCount += line.Quantity
		summary.SubtotalAmount += line.LineAmount
	}
	summary.LineCount = len(summary.Lines)
	return summary
}

func toLine(node shopify.CartLine) domain.CartLine {
	pricing := NormalizeLine(node)

	quantity := node.Quantity
	if quantity < 1 {
		quantity = 1
	}
	unitPrice := toMinorUnits(pricing.UnitBasis)

	line := domain.CartLine{
		ID:            node.ID,
		Title:         composeTitle(node.Merchandise.Product.Title, node.Merchandise.Title),
		VariantID:     node.Merchandise.ID,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		LineAmount:    unitPrice * int64(quantity),
		ProductHandle: node.Merchandise.Product.Handle,
		Attributes:    toAttributes(node.Attributes),
	}
	if node.Merchandise.Image != nil {
		line.ImageURL = node.Merchandise.Image.URL
	} else if node.Merchandise.Product.FeaturedImage != nil {
		line.ImageURL = node.Merchandise.Product.FeaturedImage.URL
	}
	if pricing.Mode == PerWeight {
		weight := pricing.WeightKg
		line.WeightKg = &weight
		line.WeightUnit = "kg"
	}
	return line
}

// composeTitle joins product and variant titles, dropping the backend's
// placeholder variant title for single-variant products.
func composeTitle(productTitle, variantTitle string) string {
	title := strings.TrimSpace(productTitle)
	variant := strings.TrimSpace(variantTitle)
	if variant == "" || variant == defaultVariantTitle {
		return title
	}
	if title == "" {
		return variant
	}
	return title + " - " + variant
}

func toAttributes(attrs []shopify.Attribute) []domain.Attribute {
	out := make([]domain.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, domain.Attribute{Key: attr.Key, Value: attr.Value})
	}
	return out
}

// toMinorUnits converts a major-unit price to integer cents.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
