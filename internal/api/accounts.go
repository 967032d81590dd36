// ABOUTME: Account endpoints of the banking API
// ABOUTME: List, create, update and delete over /cuentas

package api

import (
	"context"
	"net/http"
	"strconv"
)

// ListAccounts returns every account.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var rows []Account
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/cuentas"}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateAccount opens an account from form.
func (c *Client) CreateAccount(ctx context.Context, form AccountForm) (Account, error) {
	var out Account
	err := c.doJSON(ctx, request{method: http.MethodPost, path: "/cuentas", body: form}, &out)
	return out, err
}

// UpdateAccount replaces the editable fields of account id.
func (c *Client) UpdateAccount(ctx context.Context, id int64, form AccountForm) (Account, error) {
	var out Account
	err := c.doJSON(ctx, request{method: http.MethodPut, path: accountPath(id), body: form}, &out)
	return out, err
}

// DeleteAccount removes account id.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.doJSON(ctx, request{method: http.MethodDelete, path: accountPath(id)}, nil)
}

func accountPath(id int64) string {
	return "/cuentas/" + strconv.FormatInt(id, 10)
}
