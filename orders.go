package aurum

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateOrder places an order for one or more items. Each line's quantity is
// validated client-side against the 0.5-gram trading step.
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	for _, line := range input.Items {
		if !validQuantity(line.Quantity) {
			return nil, ErrInvalidQuantity
		}
	}

	resp, err := c.Do(ctx, Envelope{
		Method: http.MethodPost,
		Path:   "/resource/orders",
		Body:   input,
		Auth:   true,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError(resp)
	}

	order, _, err := decodeData[Order](resp)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Orders returns one page of the authenticated user's order history together
// with the backend-reported total count.
func (c *Client) Orders(ctx context.Context, page, limit int) ([]Order, int64, error) {
	if c == nil {
		return nil, 0, ErrClientNotReady
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	resp, err := c.Do(ctx, Envelope{
		Method: http.MethodGet,
		Path:   "/resource/orders",
		Query:  query,
		Auth:   true,
	})
	if err != nil {
		return nil, 0, err
	}
	if !resp.OK() {
		return nil, 0, apiError(resp)
	}

	return decodeData[[]Order](resp)
}

// UpdateOrderStatus moves an order to a new lifecycle status.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status OrderStatus) error {
	if c == nil {
		return ErrClientNotReady
	}

	query := url.Values{}
	query.Set("newStatus", string(status))

	resp, err := c.Do(ctx, Envelope{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/resource/orders/%d/status", orderID),
		Query:  query,
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

// CancelOrder cancels a placed order.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	return c.UpdateOrderStatus(ctx, orderID, OrderCancelled)
}
