// ABOUTME: Tests for the movements page controller
// ABOUTME: Covers input guards, post-success resets and error fallbacks

package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvchallenge/banca-console/internal/api"
)

func TestMovements_Activate(t *testing.T) {
	f := &fakeAPI{movements: []api.Movement{{ID: 1, Tipo: api.MovementDeposit}}}
	m := NewMovements(f)

	m.Activate(context.Background())

	assert.Len(t, m.Rows, 1)
	assert.Equal(t, []string{"ListMovements"}, f.names())
}

func TestMovements_LoadFailureKeepsRows(t *testing.T) {
	f := &fakeAPI{movements: []api.Movement{{ID: 1}}}
	m := NewMovements(f)
	m.Load(context.Background())

	f.listErr = errors.New("down")
	m.Load(context.Background())

	assert.Len(t, m.Rows, 1)
	assert.Equal(t, ErrLoadMovements, m.Err)
}

func TestMovements_DepositarResetsAndReloads(t *testing.T) {
	f := &fakeAPI{}
	m := NewMovements(f)
	m.CuentaID = 1
	m.Monto = decimal.NewFromInt(50)
	m.Ref = "ref123"

	m.Depositar(context.Background())

	got, ok := f.last("Deposit")
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Args[0])
	assert.True(t, got.Args[1].(decimal.Decimal).Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "ref123", got.Args[2])

	assert.True(t, m.Monto.IsZero())
	assert.Equal(t, "", m.Ref)
	assert.Equal(t, int64(1), m.CuentaID)
	assert.Equal(t, []string{"Deposit", "ListMovements"}, f.names())
}

func TestMovements_RetirarResetsAndReloads(t *testing.T) {
	f := &fakeAPI{}
	m := NewMovements(f)
	m.CuentaID = 2
	m.Monto = decimal.RequireFromString("575.50")

	m.Retirar(context.Background())

	got, ok := f.last("Withdraw")
	require.True(t, ok)
	assert.Equal(t, int64(2), got.Args[0])
	assert.True(t, got.Args[1].(decimal.Decimal).Equal(decimal.RequireFromString("575.5")))
	assert.Equal(t, "", got.Args[2])
	assert.True(t, m.Monto.IsZero())
	assert.Equal(t, 1, f.count("ListMovements"))
}

func TestMovements_GuardsSkipTheAPI(t *testing.T) {
	cases := []struct {
		name     string
		cuentaID int64
		monto    decimal.Decimal
	}{
		{"no account", 0, decimal.NewFromInt(10)},
		{"zero amount", 1, decimal.Zero},
		{"negative amount", 1, decimal.NewFromInt(-5)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeAPI{}
			m := NewMovements(f)
			m.CuentaID = tc.cuentaID
			m.Monto = tc.monto
			m.Ref = "keep"

			m.Depositar(context.Background())
			m.Retirar(context.Background())

			assert.Empty(t, f.calls)
			assert.Empty(t, m.Err)
			assert.Equal(t, "keep", m.Ref)
		})
	}
}

func TestMovements_TransferGuards(t *testing.T) {
	cases := []struct {
		name string
		form TransferForm
	}{
		{"no origin", TransferForm{DestinoID: 2, Monto: decimal.NewFromInt(1)}},
		{"no destination", TransferForm{OrigenID: 1, Monto: decimal.NewFromInt(1)}},
		{"zero amount", TransferForm{OrigenID: 1, DestinoID: 2}},
		{"negative amount", TransferForm{OrigenID: 1, DestinoID: 2, Monto: decimal.NewFromInt(-1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeAPI{}
			m := NewMovements(f)
			m.Transfer = tc.form

			m.Transferir(context.Background())

			assert.Empty(t, f.calls)
			assert.Empty(t, m.Err)
		})
	}
}

func TestMovements_TransferirResetsForm(t *testing.T) {
	f := &fakeAPI{}
	m := NewMovements(f)
	m.Transfer = TransferForm{OrigenID: 1, DestinoID: 2, Monto: decimal.NewFromInt(100), Ref: "pago"}

	m.Transferir(context.Background())

	got, ok := f.last("Transfer")
	require.True(t, ok)
	assert.Equal(t, int64(1), got.Args[0])
	assert.Equal(t, int64(2), got.Args[1])
	assert.True(t, got.Args[2].(decimal.Decimal).Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "pago", got.Args[3])
	assert.Equal(t, TransferForm{}, m.Transfer)
	assert.Equal(t, 1, f.count("ListMovements"))
}

func TestMovements_FailureMessages(t *testing.T) {
	f := &fakeAPI{writeErr: &api.Error{Status: 400, Message: "Saldo no disponible."}}
	m := NewMovements(f)
	m.CuentaID = 1
	m.Monto = decimal.NewFromInt(5000)
	m.Ref = "retiro"

	m.Retirar(context.Background())

	assert.Equal(t, "Saldo no disponible.", m.Err)
	assert.True(t, m.Monto.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "retiro", m.Ref)
	assert.Zero(t, f.count("ListMovements"))

	f.writeErr = errors.New("network")
	m.Transfer = TransferForm{OrigenID: 1, DestinoID: 2, Monto: decimal.NewFromInt(1)}
	m.Transferir(context.Background())
	assert.Equal(t, ErrMovement, m.Err)
	assert.Equal(t, int64(1), m.Transfer.OrigenID)
}
