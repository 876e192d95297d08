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

// FetchAdminMenu lists the menu for the back office, including unavailable
// items the public listing hides. Admin only.
func (c *Client) FetchAdminMenu(ctx context.Context, category, keyword string, page, perPage int) ([]MenuItem, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	if keyword != "" {
		query.Set("keyword", keyword)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	var result menuPage
	if err := c.get(ctx, "/admin/menu", query, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// CreateMenuItem adds a product to the menu. Admin only.
func (c *Client) CreateMenuItem(ctx context.Context, input MenuItemInput) (*MenuItem, error) {
	var item MenuItem
	if err := c.post(ctx, "/admin/menu", input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateMenuItem replaces a menu item. Admin only.
func (c *Client) UpdateMenuItem(ctx context.Context, id uint, input MenuItemInput) (*MenuItem, error) {
	var item MenuItem
	if err := c.put(ctx, fmt.Sprintf("/admin/menu/%d", id), input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMenuItem removes a menu item. Admin only.
func (c *Client) DeleteMenuItem(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/admin/menu/%d", id))
}

// ToggleMenuItem flips a menu item's availability and returns the updated
// item. The backend reports it at the top level of the envelope. Admin only.
func (c *Client) ToggleMenuItem(ctx context.Context, id uint) (*MenuItem, error) {
	env, err := c.roundTrip(ctx, http.MethodPatch, fmt.Sprintf("/admin/menu/%d/toggle", id), nil, nil)
	if err != nil {
		return nil, err
	}

	raw := env.MenuItem
	if len(raw) == 0 {
		raw = env.Data
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeAPIResponse, "toggle returned no menu item")
	}

	var item MenuItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse, "failed to decode menu item", err)
	}
	return &item, nil
}

// FetchAllOrders lists every order in the shop, optionally filtered by
// status. Admin only.
func (c *Client) FetchAllOrders(ctx context.Context, status OrderStatus, page, perPage int) ([]Order, error) {
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
	if err := c.get(ctx, "/admin/orders", query, &result); err != nil {
		return nil, err
	}
	return result.Orders, nil
}

// UpdateOrderStatus advances an order through its lifecycle. Admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, id uint, status OrderStatus) (*Order, error) {
	body := map[string]string{"status": string(status)}

	env, err := c.roundTrip(ctx, http.MethodPut, fmt.Sprintf("/admin/orders/%d/status", id), nil, body)
	if err != nil {
		return nil, err
	}
	return decodeOrder(env)
}

// DeleteOrder removes an order record. Admin only.
func (c *Client) DeleteOrder(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/admin/orders/%d", id))
}

// FetchOrderStats loads the back-office order statistics report. Admin only.
func (c *Client) FetchOrderStats(ctx context.Context) (*OrderStats, error) {
	var stats OrderStats
	if err := c.get(ctx, "/admin/orders/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FetchUsers lists accounts for the back office. Admin only.
func (c *Client) FetchUsers(ctx context.Context, page, perPage int) (*UserPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	var result UserPage
	if err := c.get(ctx, "/users", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetUserRole changes an account's role. Admin only.
func (c *Client) SetUserRole(ctx context.Context, id uint, role string) error {
	body := map[string]string{"role": role}
	return c.put(ctx, fmt.Sprintf("/users/%d/role", id), body, nil)
}

// ToggleUserStatus flips an account between enabled and disabled. Admin only.
func (c *Client) ToggleUserStatus(ctx context.Context, id uint) error {
	return c.put(ctx, fmt.Sprintf("/users/%d/toggle-status", id), nil, nil)
}
