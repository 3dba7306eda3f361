package shopify

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"hk-storefront/internal/domain"
)

// FetchCart retrieves a cart by id. A null cart in the response means the
// backend no longer knows the id; that surfaces as domain.ErrNotFound.
func (c *Client) FetchCart(ctx context.Context, cartID string) (*Cart, error) {
	var resp struct {
		Cart *Cart `json:"cart"`
	}
	if err := c.Do(ctx, queryCart, map[string]interface{}{"cartId": cartID}, &resp); err != nil {
		return nil, err
	}
	if resp.Cart == nil {
		return nil, domain.ErrNotFound
	}
	return resp.Cart, nil
}

// CreateCart creates a new cart, optionally seeded with lines.
func (c *Client) CreateCart(ctx context.Context, lines []LineInput) (*Cart, error) {
	input := map[string]interface{}{}
	if len(lines) > 0 {
		input["lines"] = lines
	}
	var resp struct {
		CartCreate struct {
			Cart       *Cart       `json:"cart"`
			UserErrors []userError `json:"userErrors"`
		} `json:"cartCreate"`
	}
	if err := c.Do(ctx, mutationCartCreate, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	if err := joinUserErrors(resp.CartCreate.UserErrors); err != nil {
		return nil, err
	}
	if resp.CartCreate.Cart == nil {
		return nil, fmt.Errorf("cartCreate returned no cart")
	}
	return resp.CartCreate.Cart, nil
}

// AddLines appends lines to an existing cart.
func (c *Client) AddLines(ctx context.Context, cartID string, lines []LineInput) (*Cart, error) {
	var resp struct {
		CartLinesAdd struct {
			Cart       *Cart       `json:"cart"`
			UserErrors []userError `json:"userErrors"`
		} `json:"cartLinesAdd"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lines": lines}
	if err := c.Do(ctx, mutationCartLinesAdd, vars, &resp); err != nil {
		return nil, err
	}
	if err := joinUserErrors(resp.CartLinesAdd.UserErrors); err != nil {
		return nil, err
	}
	return resp.CartLinesAdd.Cart, nil
}

// UpdateLines changes quantities of existing lines.
func (c *Client) UpdateLines(ctx context.Context, cartID string, lines []LineUpdateInput) (*Cart, error) {
	var resp struct {
		CartLinesUpdate struct {
			Cart       *Cart       `json:"cart"`
			UserErrors []userError `json:"userErrors"`
		} `json:"cartLinesUpdate"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lines": lines}
	if err := c.Do(ctx, mutationCartLinesUpdate, vars, &resp); err != nil {
		return nil, err
	}
	if err := joinUserErrors(resp.CartLinesUpdate.UserErrors); err != nil {
		return nil, err
	}
	return resp.CartLinesUpdate.Cart, nil
}

// RemoveLines deletes lines by id.
func (c *Client) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error) {
	var resp struct {
		CartLinesRemove struct {
			Cart       *Cart       `json:"cart"`
			UserErrors []userError `json:"userErrors"`
		} `json:"cartLinesRemove"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lineIds": lineIDs}
	if err := c.Do(ctx, mutationCartLinesRemove, vars, &resp); err != nil {
		return nil, err
	}
	if err := joinUserErrors(resp.CartLinesRemove.UserErrors); err != nil {
		return nil, err
	}
	return resp.CartLinesRemove.Cart, nil
}

// Subscribe registers an email for marketing. The backend insists on a full
// customer record, so a throwaway password is generated; an address that
// already exists surfaces as domain.ErrAlreadySubscribed.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	input := map[string]interface{}{
		"email":            email,
		"password":         uuid.NewString(),
		"acceptsMarketing": true,
	}
	var resp struct {
		CustomerCreate struct {
			Customer *struct {
				ID string `json:"id"`
			} `json:"customer"`
			CustomerUserErrors []userError `json:"customerUserErrors"`
		} `json:"customerCreate"`
	}
	if err := c.Do(ctx, mutationCustomerCreate, map[string]interface{}{"input": input}, &resp); err != nil {
		return err
	}
	for _, ue := range resp.CustomerCreate.CustomerUserErrors {
		if ue.Code == "TAKEN" || strings.Contains(strings.ToLower(ue.Message), "already") {
			return domain.ErrAlreadySubscribed
		}
	}
	return joinUserErrors(resp.CustomerCreate.CustomerUserErrors)
}

// ShopName fetches the shop's display name; used as a liveness probe of the
// storefront credentials.
func (c *Client) ShopName(ctx context.Context) (string, error) {
	var resp struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	if err := c.Do(ctx, queryShop, nil, &resp); err != nil {
		return "", err
	}
	return resp.Shop.Name, nil
}

func joinUserErrors(errs []userError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, ue := range errs {
		msgs = append(msgs, ue.Message)
	}
	return fmt.Errorf("storefront api: %s", strings.Join(msgs, "; "))
}
