// ABOUTME: Tracks the outcome of a single write issued through a controller
// ABOUTME: Separates a failed write from a failed list reload after a successful one

package main

import (
	"context"

	"github.com/fatih/color"

	"github.com/pvchallenge/banca-console/internal/api"
)

// writeTracker wraps the API for one command. It records whether a write
// went through and whether a list call after it failed.
type writeTracker struct {
	bankAPI
	wrote     bool
	writeErr  error
	reloadErr error
}

func (t *writeTracker) noteWrite(err error) error {
	t.wrote = true
	t.writeErr = err
	return err
}

func (t *writeTracker) noteList(err error) error {
	if t.wrote && t.writeErr == nil && err != nil {
		t.reloadErr = err
	}
	return err
}

func (t *writeTracker) ListCustomers(ctx context.Context) ([]api.Customer, error) {
	rows, err := t.bankAPI.ListCustomers(ctx)
	return rows, t.noteList(err)
}

func (t *writeTracker) ListAccounts(ctx context.Context) ([]api.Account, error) {
	rows, err := t.bankAPI.ListAccounts(ctx)
	return rows, t.noteList(err)
}

func (t *writeTracker) CreateCustomer(ctx context.Context, form api.CustomerForm) (api.Customer, error) {
	c, err := t.bankAPI.CreateCustomer(ctx, form)
	return c, t.noteWrite(err)
}

func (t *writeTracker) UpdateCustomer(ctx context.Context, id int64, form api.CustomerForm) (api.Customer, error) {
	c, err := t.bankAPI.UpdateCustomer(ctx, id, form)
	return c, t.noteWrite(err)
}

func (t *writeTracker) DeleteCustomer(ctx context.Context, id int64) error {
	return t.noteWrite(t.bankAPI.DeleteCustomer(ctx, id))
}

func (t *writeTracker) CreateAccount(ctx context.Context, form api.AccountForm) (api.Account, error) {
	acc, err := t.bankAPI.CreateAccount(ctx, form)
	return acc, t.noteWrite(err)
}

func (t *writeTracker) UpdateAccount(ctx context.Context, id int64, form api.AccountForm) (api.Account, error) {
	acc, err := t.bankAPI.UpdateAccount(ctx, id, form)
	return acc, t.noteWrite(err)
}

func (t *writeTracker) DeleteAccount(ctx context.Context, id int64) error {
	return t.noteWrite(t.bankAPI.DeleteAccount(ctx, id))
}

// tracked returns a tracker over the app's client.
func (a *app) tracked() *writeTracker {
	return &writeTracker{bankAPI: a.client}
}

// writeFailed reports the controller message as an error only when the write
// itself failed or never ran. A reload failure after a successful write is
// printed as a warning instead.
func (a *app) writeFailed(t *writeTracker, msg string) error {
	if !t.wrote || t.writeErr != nil {
		return pageErr(msg)
	}
	if t.reloadErr != nil {
		a.warn("Cambios guardados, pero no se pudo recargar la lista: %s", api.Message(t.reloadErr, "sin respuesta del servidor"))
	}
	return nil
}

func (a *app) warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(a.out, "! "+format+"\n", args...)
}

// reloaded reports whether the list shown after a write is current.
func (t *writeTracker) reloaded() bool {
	return t.reloadErr == nil
}
