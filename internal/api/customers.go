// ABOUTME: Customer endpoints of the banking API
// ABOUTME: List, create, update and delete over /clientes

package api

import (
	"context"
	"net/http"
	"strconv"
)

// ListCustomers returns every customer.
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var rows []Customer
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/clientes"}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateCustomer creates a customer from form and returns the stored record.
func (c *Client) CreateCustomer(ctx context.Context, form CustomerForm) (Customer, error) {
	var out Customer
	err := c.doJSON(ctx, request{method: http.MethodPost, path: "/clientes", body: form}, &out)
	return out, err
}

// UpdateCustomer replaces the editable fields of customer id.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, form CustomerForm) (Customer, error) {
	var out Customer
	err := c.doJSON(ctx, request{method: http.MethodPut, path: customerPath(id), body: form}, &out)
	return out, err
}

// DeleteCustomer removes customer id.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.doJSON(ctx, request{method: http.MethodDelete, path: customerPath(id)}, nil)
}

func customerPath(id int64) string {
	return "/clientes/" + strconv.FormatInt(id, 10)
}
