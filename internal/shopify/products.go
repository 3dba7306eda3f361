package shopify

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"hk-storefront/internal/domain"
)

const byHandleConcurrency = 8

// Products lists the first n products of the catalog.
func (c *Client) Products(ctx context.Context, first int) ([]Product, error) {
	if first <= 0 {
		first = 20
	}
	var resp struct {
		Products struct {
			Edges []struct {
				Node Product `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := c.Do(ctx, queryProducts, map[string]interface{}{"first": first}, &resp); err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(resp.Products.Edges))
	for _, edge := range resp.Products.Edges {
		out = append(out, edge.Node)
	}
	return out, nil
}

// ProductByHandle fetches a single product; domain.ErrNotFound when unknown.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (*Product, error) {
	var resp struct {
		Product *Product `json:"product"`
	}
	if err := c.Do(ctx, queryProductByHandle, map[string]interface{}{"handle": handle}, &resp); err != nil {
		return nil, err
	}
	if resp.Product == nil {
		return nil, domain.ErrNotFound
	}
	return resp.Product, nil
}

// ProductsByHandles fetches several products concurrently. Unknown handles
// are skipped, not errors; result order is unspecified.
func (c *Client) ProductsByHandles(ctx context.Context, handles []string) ([]Product, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(byHandleConcurrency)

	var mu sync.Mutex
	var out []Product
	for _, handle := range handles {
		handle := handle
		g.Go(func() error {
			product, err := c.ProductByHandle(gctx, handle)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil
				}
				return err
			}
			mu.Lock()
			out = append(out, *product)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CollectionByHandle fetches a collection and its products.
func (c *Client) CollectionByHandle(ctx context.Context, handle string, first int) (*Collection, error) {
	if first <= 0 {
		first = 50
	}
	var resp struct {
		Collection *Collection `json:"collection"`
	}
	vars := map[string]interface{}{"handle": handle, "first": first}
	if err := c.Do(ctx, queryCollectionByHandle, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Collection == nil {
		return nil, domain.ErrNotFound
	}
	return resp.Collection, nil
}
