package api

import (
	"context"
	"fmt"
	"net/url"
)

// FetchMenu lists the available menu, filtered server-side. An empty
// category returns every category; a keyword matches against name and
// description.
func (c *Client) FetchMenu(ctx context.Context, category, keyword string) ([]MenuItem, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	if keyword != "" {
		query.Set("keyword", keyword)
	}

	var page menuPage
	if err := c.get(ctx, "/menu", query, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// FetchCategories lists the menu categories, including the catch-all entry.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/menu/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FetchMenuItem loads one menu item by id.
func (c *Client) FetchMenuItem(ctx context.Context, id uint) (*MenuItem, error) {
	var item MenuItem
	if err := c.get(ctx, fmt.Sprintf("/menu/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
