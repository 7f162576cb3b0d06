package aurum

import (
	"context"
	"fmt"
	"net/http"
)

// GoldPrices returns the public per-gram price board. No authentication.
func (c *Client) GoldPrices(ctx context.Context) ([]GoldPrice, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}

	resp, err := c.Do(ctx, Envelope{
		Method: http.MethodGet,
		Path:   "/resource/goldPrice",
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError(resp)
	}

	prices, _, err := decodeData[[]GoldPrice](resp)
	return prices, err
}

// Items returns the public listing of items for sale. No authentication.
func (c *Client) Items(ctx context.Context) ([]Item, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}

	resp, err := c.Do(ctx, Envelope{
		Method: http.MethodGet,
		Path:   "/resource/items",
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError(resp)
	}

	items, _, err := decodeData[[]Item](resp)
	return items, err
}

// Item returns one item's detail. Authenticated.
func (c *Client) Item(ctx context.Context, id int64) (*Item, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}

	resp, err := c.Do(ctx, Envelope{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/resource/items/%d", id),
		Auth:   true,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError(resp)
	}

	item, _, err := decodeData[Item](resp)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SellerItems returns the items listed by the authenticated seller.
func (c *Client) SellerItems(ctx context.Context) ([]Item, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}

	resp, err := c.Do(ctx, Envelope{
		Method: http.MethodGet,
		Path:   "/resource/items/seller",
		Auth:   true,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError(resp)
	}

	items, _, err := decodeData[[]Item](resp)
	return items, err
}

// CreateItem lists a new item for sale. Quantity is validated client-side
// against the 0.5-gram trading step before any request is sent.
func (c *Client) CreateItem(ctx context.Context, input CreateItemInput) error {
	if c == nil {
		return ErrClientNotReady
	}
	if !validQuantity(input.Quantity) {
		return ErrInvalidQuantity
	}

	resp, err := c.Do(ctx, Envelope{
		Method: http.MethodPost,
		Path:   "/resource/items",
		Body:   input,
		Auth:   true,
	})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return apiError(resp)
	}
	return nil
}
