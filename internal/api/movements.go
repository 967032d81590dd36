// ABOUTME: Movement endpoints of the banking API
// ABOUTME: Deposits, withdrawals and transfers as query-parameter POSTs, plus listing

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// ListMovements returns every movement.
func (c *Client) ListMovements(ctx context.Context) ([]Movement, error) {
	var rows []Movement
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/movimientos"}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Deposit credits monto to account cuentaID.
func (c *Client) Deposit(ctx context.Context, cuentaID int64, monto decimal.Decimal, ref string) (Movement, error) {
	return c.accountMovement(ctx, "/movimientos/deposito", cuentaID, monto, ref)
}

// Withdraw debits monto from account cuentaID.
func (c *Client) Withdraw(ctx context.Context, cuentaID int64, monto decimal.Decimal, ref string) (Movement, error) {
	return c.accountMovement(ctx, "/movimientos/retiro", cuentaID, monto, ref)
}

func (c *Client) accountMovement(ctx context.Context, path string, cuentaID int64, monto decimal.Decimal, ref string) (Movement, error) {
	q := url.Values{}
	q.Set("cuentaId", strconv.FormatInt(cuentaID, 10))
	q.Set("monto", monto.String())
	q.Set("ref", ref)

	var out Movement
	err := c.doJSON(ctx, request{method: http.MethodPost, path: path, query: q}, &out)
	return out, err
}

// Transfer moves monto from origenID to destinoID. The server answers with
// an empty body.
func (c *Client) Transfer(ctx context.Context, origenID, destinoID int64, monto decimal.Decimal, ref string) error {
	q := url.Values{}
	q.Set("origenId", strconv.FormatInt(origenID, 10))
	q.Set("destinoId", strconv.FormatInt(destinoID, 10))
	q.Set("monto", monto.String())
	q.Set("ref", ref)

	return c.doJSON(ctx, request{method: http.MethodPost, path: "/movimientos/transferencia", query: q}, nil)
}
