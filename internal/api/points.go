package api

import (
	"context"
	"net/url"
	"strconv"
)

// FetchPoints loads the loyalty account summary.
func (c *Client) FetchPoints(ctx context.Context) (*PointsInfo, error) {
	var info PointsInfo
	if err := c.get(ctx, "/user/points", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// FetchPointTransactions loads one page of the loyalty ledger.
func (c *Client) FetchPointTransactions(ctx context.Context, page, perPage int) (*TransactionPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	var result TransactionPage
	if err := c.get(ctx, "/user/points/transactions", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CalculateDiscount asks the backend what a points deduction is worth
// against the given order lines.
func (c *Client) CalculateDiscount(ctx context.Context, items []OrderLine, pointsToUse int) (*DiscountQuote, error) {
	body := map[string]any{
		"items":         items,
		"points_to_use": pointsToUse,
	}

	var quote DiscountQuote
	if err := c.post(ctx, "/orders/points-calculation", body, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
