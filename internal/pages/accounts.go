// ABOUTME: Accounts page controller
// ABOUTME: Lists, opens, edits and deletes accounts and loads customers for the owner selector

package pages

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pvchallenge/banca-console/internal/api"
)

// AccountAPI is the part of the API the accounts page uses.
type AccountAPI interface {
	ListCustomers(ctx context.Context) ([]api.Customer, error)
	ListAccounts(ctx context.Context) ([]api.Account, error)
	CreateAccount(ctx context.Context, form api.AccountForm) (api.Account, error)
	UpdateAccount(ctx context.Context, id int64, form api.AccountForm) (api.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

// ErrLoadAccounts is the fallback message when the account list fails.
const ErrLoadAccounts = "Error al cargar cuentas"

// DeleteAccountPrompt is shown before an account is deleted.
const DeleteAccountPrompt = "¿Eliminar cuenta?"

// DefaultAccountForm returns the blank account form.
func DefaultAccountForm() api.AccountForm {
	return api.AccountForm{
		Numero:       "",
		Tipo:         "Ahorro",
		SaldoInicial: decimal.Zero,
		Estado:       true,
		ClienteID:    0,
	}
}

// Accounts is the controller of the accounts page.
type Accounts struct {
	api     AccountAPI
	confirm Confirmer

	Clientes []api.Customer
	Rows     []api.Account
	Err      string
	Form     api.AccountForm
	EditID   *int64
}

// NewAccounts creates the controller in create mode with a blank form.
func NewAccounts(client AccountAPI, confirm Confirmer) *Accounts {
	return &Accounts{
		api:     client,
		confirm: confirm,
		Form:    DefaultAccountForm(),
	}
}

// Activate loads the owner selector and the account list. A failed owner
// lookup stays in Err unless the account list fails too.
func (a *Accounts) Activate(ctx context.Context) {
	lookupErr := ""
	clientes, err := a.api.ListCustomers(ctx)
	if err != nil {
		lookupErr = api.Message(err, ErrLoadCustomers)
	} else {
		a.Clientes = clientes
	}
	a.Load(ctx)
	if a.Err == "" {
		a.Err = lookupErr
	}
}

// Load replaces Rows with the server's list. On failure Rows is kept.
func (a *Accounts) Load(ctx context.Context) {
	rows, err := a.api.ListAccounts(ctx)
	if err != nil {
		a.Err = api.Message(err, ErrLoadAccounts)
		return
	}
	a.Rows = rows
	a.Err = ""
}

// Submit opens an account from Form, or updates EditID in edit mode.
func (a *Accounts) Submit(ctx context.Context) {
	if a.EditID == nil {
		if _, err := a.api.CreateAccount(ctx, a.Form); err != nil {
			a.Err = api.Message(err, ErrCreate)
			return
		}
	} else {
		if _, err := a.api.UpdateAccount(ctx, *a.EditID, a.Form); err != nil {
			a.Err = api.Message(err, ErrUpdate)
			return
		}
	}
	a.Reset()
	a.Load(ctx)
	a.Err = ""
}

// Edit copies row into Form and switches to edit mode. The opening balance
// falls back to the current balance when the server omits it.
func (a *Accounts) Edit(row api.Account) {
	id := row.ID
	a.EditID = &id

	saldo := row.Saldo
	if row.SaldoInicial != nil {
		saldo = *row.SaldoInicial
	}
	estado := true
	if row.Estado != nil {
		estado = *row.Estado
	}

	a.Form = api.AccountForm{
		Numero:       row.Numero,
		Tipo:         row.Tipo,
		SaldoInicial: saldo,
		Estado:       estado,
		ClienteID:    row.ClienteID,
	}
}

// Delete removes account id after the user confirms.
func (a *Accounts) Delete(ctx context.Context, id int64) {
	if !a.confirm.Confirm(ctx, DeleteAccountPrompt) {
		return
	}
	if err := a.api.DeleteAccount(ctx, id); err != nil {
		a.Err = api.Message(err, ErrDelete)
		return
	}
	a.Load(ctx)
}

// Reset restores the blank form and leaves edit mode.
func (a *Accounts) Reset() {
	a.EditID = nil
	a.Form = DefaultAccountForm()
}

// Row returns the loaded account with the given id.
func (a *Accounts) Row(id int64) (api.Account, bool) {
	for _, r := range a.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return api.Account{}, false
}
