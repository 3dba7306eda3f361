package cart

import (
	"context"
	"log"

	"github.com/google/uuid"

	"hk-storefront/internal/domain"
	"hk-storefront/internal/shopify"
)

// Remote is the slice of the storefront client the cart service needs.
type Remote interface {
	FetchCart(ctx context.Context, cartID string) (*shopify.Cart, error)
	CreateCart(ctx context.Context, lines []shopify.LineInput) (*shopify.Cart, error)
	AddLines(ctx context.Context, cartID string, lines []shopify.LineInput) (*shopify.Cart, error)
	UpdateLines(ctx context.Context, cartID string, lines []shopify.LineUpdateInput) (*shopify.Cart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*shopify.Cart, error)
}

// Service orchestrates cart operations against the remote backend and keeps
// the client-held identity in step with the cart the backend actually has.
type Service struct {
	remote Remote
	logger *log.Logger
}

func NewService(remote Remote, logger *log.Logger) *Service {
	return &Service{remote: remote, logger: logger}
}

// LineRequest is a caller-supplied line to add to a cart.
type LineRequest struct {
	VariantID  string             `json:"variantId"`
	Quantity   int                `json:"quantity"`
	Attributes []domain.Attribute `json:"attributes,omitempty"`
}

// LineUpdateRequest is a caller-supplied quantity change for an existing line.
type LineUpdateRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// GetOrCreate resolves the identity to a live cart, bootstrapping a fresh one
// when the identity is absent or the backend no longer knows its id.
func (s *Service) GetOrCreate(ctx context.Context, identity *domain.CartIdentity) (domain.CartSummary, domain.CartIdentity, error) {
	key := ""
	if identity != nil {
		key = identity.Key
		cart, err := s.remote.FetchCart(ctx, identity.ID)
		if err == nil {
			summary, id := s.hydrated(cart, key)
			return summary, id, nil
		}
		s.logger.Printf("cart %s not fetchable (%v), bootstrapping fresh cart", identity.ID, err)
	}

	cart, err := s.remote.CreateCart(ctx, nil)
	if err != nil {
		return domain.CartSummary{}, domain.CartIdentity{}, err
	}
	summary, id := s.hydrated(cart, key)
	return summary, id, nil
}

// Bootstrap returns the raw cart for an id, creating an empty cart when the
// id is absent or stale. Used by the create endpoint, which exposes the raw
// backend shape alongside the identity.
func (s *Service) Bootstrap(ctx context.Context, cartID string) (*shopify.Cart, domain.CartIdentity, error) {
	if cartID != "" {
		cart, err := s.remote.FetchCart(ctx, cartID)
		if err == nil {
			_, id := s.hydrated(cart, "")
			return cart, id, nil
		}
		s.logger.Printf("cart %s not fetchable (%v), creating new cart", cartID, err)
	}
	cart, err := s.remote.CreateCart(ctx, nil)
	if err != nil {
		return nil, domain.CartIdentity{}, err
	}
	_, id := s.hydrated(cart, "")
	return cart, id, nil
}

// AddLines adds lines to the identified cart. The backend can silently
// invalidate cart ids (after checkout completion, for one), so this is an
// explicit two-step: probe the existing cart first, and when the add fails or
// comes back without lines, discard the id and create a new cart seeded with
// the same lines.
func (s *Service) AddLines(ctx context.Context, identity *domain.CartIdentity, lines []LineRequest) (domain.CartSummary, domain.CartIdentity, error) {
	inputs := toLineInputs(lines)
	if len(inputs) == 0 {
		return domain.CartSummary{}, domain.CartIdentity{}, domain.ErrNoLines
	}

	key := ""
	if identity != nil && identity.ID != "" {
		key = identity.Key
		if cart := s.addToExisting(ctx, identity.ID, inputs); cart != nil {
			summary, id := s.hydrated(cart, key)
			return summary, id, nil
		}
	}

	cart, err := s.bootstrapWithLines(ctx, inputs)
	if err != nil {
		return domain.CartSummary{}, domain.CartIdentity{}, err
	}
	summary, id := s.hydrated(cart, key)
	return summary, id, nil
}

// addToExisting is the probe leg: a nil result means the id is stale (or the
// add failed) and the caller should fall back to a fresh cart.
func (s *Service) addToExisting(ctx context.Context, cartID string, lines []shopify.LineInput) *shopify.Cart {
	cart, err := s.remote.AddLines(ctx, cartID, lines)
	if err != nil {
		s.logger.Printf("add to cart %s failed: %v", cartID, err)
		return nil
	}
	if cart == nil || len(cart.Lines.Edges) == 0 {
		s.logger.Printf("cart %s returned no lines after add, treating as stale", cartID)
		return nil
	}
	return cart
}

// bootstrapWithLines is the fallback leg of the add flow.
func (s *Service) bootstrapWithLines(ctx context.Context, lines []shopify.LineInput) (*shopify.Cart, error) {
	return s.remote.CreateCart(ctx, lines)
}

// Update routes either a remove-by-line-id batch or a quantity-update batch,
// never both; removal wins when both are supplied.
func (s *Service) Update(ctx context.Context, cartID string, updates []LineUpdateRequest, removeLineIDs []string) (domain.CartSummary, domain.CartIdentity, error) {
	if cartID == "" {
		return domain.CartSummary{}, domain.CartIdentity{}, domain.ErrNoCart
	}

	var (
		cart *shopify.Cart
		err  error
	)
	switch {
	case len(removeLineIDs) > 0:
		cart, err = s.remote.RemoveLines(ctx, cartID, removeLineIDs)
	case len(updates) > 0:
		inputs := make([]shopify.LineUpdateInput, 0, len(updates))
		for _, u := range updates {
			quantity := u.Quantity
			if quantity < 1 {
				quantity = 1
			}
			inputs = append(inputs, shopify.LineUpdateInput{ID: u.ID, Quantity: quantity})
		}
		cart, err = s.remote.UpdateLines(ctx, cartID, inputs)
	default:
		return domain.CartSummary{}, domain.CartIdentity{}, domain.ErrNoLines
	}
	if err != nil {
		return domain.CartSummary{}, domain.CartIdentity{}, err
	}
	summary, id := s.hydrated(cart, "")
	return summary, id, nil
}

// Clear removes every line from the cart. Clearing an already-empty cart
// skips the mutation and just returns the current summary, which makes the
// operation idempotent.
func (s *Service) Clear(ctx context.Context, cartID string) (domain.CartSummary, domain.CartIdentity, error) {
	if cartID == "" {
		return domain.CartSummary{}, domain.CartIdentity{}, domain.ErrNoCart
	}
	cart, err := s.remote.FetchCart(ctx, cartID)
	if err != nil {
		return domain.CartSummary{}, domain.CartIdentity{}, err
	}

	nodes := cart.LineNodes()
	if len(nodes) == 0 {
		summary, id := s.hydrated(cart, "")
		return summary, id, nil
	}

	lineIDs := make([]string, 0, len(nodes))
	for _, node := range nodes {
		lineIDs = append(lineIDs, node.ID)
	}
	cleared, err := s.remote.RemoveLines(ctx, cartID, lineIDs)
	if err != nil {
		return domain.CartSummary{}, domain.CartIdentity{}, err
	}
	summary, id := s.hydrated(cleared, "")
	return summary, id, nil
}

// hydrated maps a raw cart and mints (or preserves) the cookie key.
func (s *Service) hydrated(cart *shopify.Cart, key string) (domain.CartSummary, domain.CartIdentity) {
	if key == "" {
		key = uuid.NewString()
	}
	summary := ToSummary(cart)
	identity := domain.CartIdentity{Key: key}
	if cart != nil {
		identity.ID = cart.ID
		identity.CheckoutURL = cart.CheckoutURL
	}
	return summary, identity
}

func toLineInputs(lines []LineRequest) []shopify.LineInput {
	out := make([]shopify.LineInput, 0, len(lines))
	for _, line := range lines {
		if line.VariantID == "" {
			continue
		}
		quantity := line.Quantity
		if quantity < 1 {
			quantity = 1
		}
		input := shopify.LineInput{MerchandiseID: line.VariantID, Quantity: quantity}
		for _, attr := range line.Attributes {
			input.Attributes = append(input.Attributes, shopify.Attribute{Key: attr.Key, Value: attr.Value})
		}
		out = append(out, input)
	}
	return out
}
