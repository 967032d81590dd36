// ABOUTME: Movements page controller
// ABOUTME: Deposits, withdrawals and transfers with client-side input guards

package pages

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pvchallenge/banca-console/internal/api"
)

// MovementAPI is the part of the API the movements page uses.
type MovementAPI interface {
	ListMovements(ctx context.Context) ([]api.Movement, error)
	Deposit(ctx context.Context, cuentaID int64, monto decimal.Decimal, ref string) (api.Movement, error)
	Withdraw(ctx context.Context, cuentaID int64, monto decimal.Decimal, ref string) (api.Movement, error)
	Transfer(ctx context.Context, origenID, destinoID int64, monto decimal.Decimal, ref string) error
}

// Fallback messages of the movements page.
const (
	ErrLoadMovements = "Error al cargar movimientos"
	ErrMovement      = "Error"
)

// TransferForm holds the transfer inputs. Zero ids mean "not selected".
type TransferForm struct {
	OrigenID  int64
	DestinoID int64
	Monto     decimal.Decimal
	Ref       string
}

// Movements is the controller of the movements page.
type Movements struct {
	api MovementAPI

	CuentaID int64
	Monto    decimal.Decimal
	Ref      string
	Transfer TransferForm

	Rows []api.Movement
	Err  string
}

// NewMovements creates the controller with empty inputs.
func NewMovements(client MovementAPI) *Movements {
	return &Movements{api: client}
}

// Activate loads the movement list.
func (m *Movements) Activate(ctx context.Context) {
	m.Load(ctx)
}

// Load replaces Rows with the server's list. On failure Rows is kept.
func (m *Movements) Load(ctx context.Context) {
	rows, err := m.api.ListMovements(ctx)
	if err != nil {
		m.Err = api.Message(err, ErrLoadMovements)
		return
	}
	m.Rows = rows
	m.Err = ""
}

// Depositar credits Monto to CuentaID. Input without an account or with a
// non-positive amount is ignored without a call or an error.
func (m *Movements) Depositar(ctx context.Context) {
	if m.CuentaID == 0 || !m.Monto.IsPositive() {
		return
	}
	if _, err := m.api.Deposit(ctx, m.CuentaID, m.Monto, m.Ref); err != nil {
		m.Err = api.Message(err, ErrMovement)
		return
	}
	m.Monto = decimal.Zero
	m.Ref = ""
	m.Load(ctx)
}

// Retirar debits Monto from CuentaID under the same guard as Depositar.
func (m *Movements) Retirar(ctx context.Context) {
	if m.CuentaID == 0 || !m.Monto.IsPositive() {
		return
	}
	if _, err := m.api.Withdraw(ctx, m.CuentaID, m.Monto, m.Ref); err != nil {
		m.Err = api.Message(err, ErrMovement)
		return
	}
	m.Monto = decimal.Zero
	m.Ref = ""
	m.Load(ctx)
}

// Transferir moves Transfer.Monto between the selected accounts. Missing
// accounts or a non-positive amount are ignored silently.
func (m *Movements) Transferir(ctx context.Context) {
	t := m.Transfer
	if t.OrigenID == 0 || t.DestinoID == 0 || !t.Monto.IsPositive() {
		return
	}
	if err := m.api.Transfer(ctx, t.OrigenID, t.DestinoID, t.Monto, t.Ref); err != nil {
		m.Err = api.Message(err, ErrMovement)
		return
	}
	m.Transfer = TransferForm{}
	m.Load(ctx)
}
