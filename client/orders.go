// Package client is a small Go client for the storefront API, covering the
// order-history view: fetching the caller's orders, column sorting and
// re-adding a past order's items to a local cart.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/littlecubs/babyshop-api/models"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: http.DefaultClient,
	}
}

type myOrdersResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Orders  []models.Order `json:"orders"`
}

// FetchMyOrders loads the caller's order history with the given bearer
// token. A non-success response returns the server's message as the error;
// the client never retries on its own.
func (c *Client) FetchMyOrders(ctx context.Context, token string) ([]models.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/order/my-orders", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body myOrdersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if !body.Success {
		if body.Message != "" {
			return nil, errors.New(body.Message)
		}
		return nil, fmt.Errorf("failed to fetch orders: status %d", resp.StatusCode)
	}
	return body.Orders, nil
}

// Sortable columns of the order-history view.
const (
	ColumnID     = "id"
	ColumnDate   = "date"
	ColumnAmount = "amount"
	ColumnStatus = "status"
)

// OrdersView holds the fetched orders plus the current sort selection.
type OrdersView struct {
	Orders    []models.Order
	SortKey   string
	Ascending bool
}

func NewOrdersView(orders []models.Order) *OrdersView {
	// Order history opens newest first
	return &OrdersView{Orders: orders, SortKey: ColumnDate, Ascending: false}
}

// Select picks a sort column. Selecting the current column again reverses
// the direction; selecting a different column resets to ascending.
func (v *OrdersView) Select(column string) {
	if v.SortKey == column {
		v.Ascending = !v.Ascending
	} else {
		v.SortKey = column
		v.Ascending = true
	}
}

// Sorted returns the orders under the current selection. The sort is
// stable, so equal keys keep their prior relative order.
func (v *OrdersView) Sorted() []models.Order {
	out := make([]models.Order, len(v.Orders))
	copy(out, v.Orders)

	less := func(a, b models.Order) bool {
		switch v.SortKey {
		case ColumnID:
			return a.ID < b.ID
		case ColumnAmount:
			return a.Amount < b.Amount
		case ColumnStatus:
			return a.Status < b.Status
		default:
			return a.Date.Before(b.Date)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if v.Ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}
