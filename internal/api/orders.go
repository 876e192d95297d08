package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/felixgeelhaar/kopi/internal/errors"
)

// decodeOrder reads the order the backend reports at the top level of the
// envelope rather than under data.
func decodeOrder(env *envelope) (*Order, error) {
	raw := env.Order
	if len(raw) == 0 {
		raw = env.Data
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeAPIResponse, "response carried no order")
	}

	var order Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse, "failed to decode order", err)
	}
	return &order, nil
}

// CreateOrder submits a checkout request and returns the placed order.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	env, err := c.roundTrip(ctx, http.MethodPost, "/orders", nil, req)
	if err != nil {
		return nil, err
	}
	return decodeOrder(env)
}

// FetchOrders lists the signed-in user's orders, newest first. An empty
// status returns every order.
func (c *Client) FetchOrders(ctx context.Context, status OrderStatus, page, perPage int) ([]Order, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	var result orderPage
	if err := c.get(ctx, "/user/orders", query, &result); err != nil {
		return nil, err
	}
	return result.Orders, nil
}

// FetchOrder loads one order by id.
func (c *Client) FetchOrder(ctx context.Context, id uint) (*Order, error) {
	env, err := c.roundTrip(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder(env)
}

// FetchOrderByPickupCode loads one order by its pickup code.
func (c *Client) FetchOrderByPickupCode(ctx context.Context, code string) (*Order, error) {
	env, err := c.roundTrip(ctx, http.MethodGet, "/orders/pickup/"+url.PathEscape(code), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder(env)
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, id uint) error {
	return c.put(ctx, fmt.Sprintf("/orders/%d/cancel", id), nil, nil)
}
