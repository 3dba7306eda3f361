package cart

import (
	"math"
	"strconv"

	"hk-storefront/internal/shopify"
)

// PriceMode says how a line's price is derived.
type PriceMode int

const (
	// FlatUnitPrice uses the merchandise's own unit price as-is.
	FlatUnitPrice PriceMode = iota
	// PerWeight prices the line as price-per-kilogram times weight.
	PerWeight
)

const (
	attrPricePerKg = "price_per_kg"
	attrWeight     = "weight"
	attrWeightKg   = "weight_kg"

	defaultWeightKg = 1.0
)

// LinePricing is the normalized price of one raw line, in major units.
type LinePricing struct {
	Mode      PriceMode
	UnitBasis float64 // price of a single saleable unit
	WeightKg  float64
	LineTotal float64
}

// NormalizeLine resolves which price mode applies to a raw line and computes
// its total. A price_per_kg attribute that parses to a finite number selects
// per-weight pricing; otherwise the merchandise unit price applies. Weight
// precedence: weight/weight_kg attribute, then merchandise weight (grams
// converted to kg), then a 1.0 kg default. Only an unresolvable weight
// defaults; an explicit zero is honored.
func NormalizeLine(line shopify.CartLine) LinePricing {
	pricePerKg, perWeight := parseAttrFloat(line.Attributes, attrPricePerKg)

	weightKg, resolved := parseAttrFloat(line.Attributes, attrWeight)
	if !resolved {
		weightKg, resolved = parseAttrFloat(line.Attributes, attrWeightKg)
	}
	if !resolved && line.Merchandise.Weight != nil {
		weightKg = *line.Merchandise.Weight
		if line.Merchandise.WeightUnit == "GRAMS" {
			weightKg /= 1000
		}
		resolved = true
	}
	if !resolved {
		weightKg = defaultWeightKg
	}

	quantity := line.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if perWeight {
		basis := pricePerKg * weightKg
		return LinePricing{
			Mode:      PerWeight,
			UnitBasis: basis,
			WeightKg:  weightKg,
			LineTotal: basis * float64(quantity),
		}
	}

	unitPrice, _ := strconv.ParseFloat(line.Merchandise.Price.Amount, 64)
	if math.IsNaN(unitPrice) || math.IsInf(unitPrice, 0) {
		unitPrice = 0
	}
	return LinePricing{
		Mode:      FlatUnitPrice,
		UnitBasis: unitPrice,
		WeightKg:  weightKg,
		LineTotal: unitPrice * float64(quantity),
	}
}

func parseAttrFloat(attrs []shopify.Attribute, key string) (float64, bool) {
	for _, attr := range attrs {
		if attr.Key != key {
			continue
		}
		v, err := strconv.ParseFloat(attr.Value, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
