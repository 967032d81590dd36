// ABOUTME: Auditing decorator around the banking API client
// ABOUTME: Journals every successful write issued from a console session

package webconsole

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/pvchallenge/banca-console/internal/api"
	"github.com/pvchallenge/banca-console/internal/store"
)

// auditedAPI forwards every call to BankAPI and records successful writes.
// Journal failures are logged and never fail the write itself.
type auditedAPI struct {
	BankAPI
	journal   store.Journal
	sessionID string
	logger    *slog.Logger
}

func (a *auditedAPI) record(ctx context.Context, action store.AuditAction, targetType string, targetID int64, detail map[string]any) {
	entry := &store.AuditEntry{
		SessionID:  a.sessionID,
		Action:     action,
		TargetType: targetType,
		TargetID:   strconv.FormatInt(targetID, 10),
		Detail:     detail,
	}
	// The write already happened; a cancelled request must not lose its entry.
	if err := a.journal.AppendAuditLog(context.WithoutCancel(ctx), entry); err != nil {
		a.logger.Error("failed to append audit entry", "action", action, "target_id", targetID, "error", err)
	}
}

func customerDetail(form api.CustomerForm) map[string]any {
	return map[string]any{
		"nombre":         form.Nombre,
		"identificacion": form.Identificacion,
		"estado":         form.Estado,
	}
}

func accountDetail(form api.AccountForm) map[string]any {
	return map[string]any{
		"numero":    form.Numero,
		"tipo":      form.Tipo,
		"clienteId": form.ClienteID,
		"estado":    form.Estado,
	}
}

func (a *auditedAPI) CreateCustomer(ctx context.Context, form api.CustomerForm) (api.Customer, error) {
	c, err := a.BankAPI.CreateCustomer(ctx, form)
	if err == nil {
		a.record(ctx, store.AuditCreateCustomer, "cliente", c.ID, customerDetail(form))
	}
	return c, err
}

func (a *auditedAPI) UpdateCustomer(ctx context.Context, id int64, form api.CustomerForm) (api.Customer, error) {
	c, err := a.BankAPI.UpdateCustomer(ctx, id, form)
	if err == nil {
		a.record(ctx, store.AuditUpdateCustomer, "cliente", id, customerDetail(form))
	}
	return c, err
}

func (a *auditedAPI) DeleteCustomer(ctx context.Context, id int64) error {
	err := a.BankAPI.DeleteCustomer(ctx, id)
	if err == nil {
		a.record(ctx, store.AuditDeleteCustomer, "cliente", id, nil)
	}
	return err
}

func (a *auditedAPI) CreateAccount(ctx context.Context, form api.AccountForm) (api.Account, error) {
	acc, err := a.BankAPI.CreateAccount(ctx, form)
	if err == nil {
		detail := accountDetail(form)
		detail["saldoInicial"] = form.SaldoInicial.String()
		a.record(ctx, store.AuditCreateAccount, "cuenta", acc.ID, detail)
	}
	return acc, err
}

func (a *auditedAPI) UpdateAccount(ctx context.Context, id int64, form api.AccountForm) (api.Account, error) {
	acc, err := a.BankAPI.UpdateAccount(ctx, id, form)
	if err == nil {
		a.record(ctx, store.AuditUpdateAccount, "cuenta", id, accountDetail(form))
	}
	return acc, err
}

func (a *auditedAPI) DeleteAccount(ctx context.Context, id int64) error {
	err := a.BankAPI.DeleteAccount(ctx, id)
	if err == nil {
		a.record(ctx, store.AuditDeleteAccount, "cuenta", id, nil)
	}
	return err
}

func (a *auditedAPI) Deposit(ctx context.Context, cuentaID int64, monto decimal.Decimal, ref string) (api.Movement, error) {
	m, err := a.BankAPI.Deposit(ctx, cuentaID, monto, ref)
	if err == nil {
		a.record(ctx, store.AuditDeposit, "cuenta", cuentaID, movementDetail(m, monto, ref))
	}
	return m, err
}

func (a *auditedAPI) Withdraw(ctx context.Context, cuentaID int64, monto decimal.Decimal, ref string) (api.Movement, error) {
	m, err := a.BankAPI.Withdraw(ctx, cuentaID, monto, ref)
	if err == nil {
		a.record(ctx, store.AuditWithdraw, "cuenta", cuentaID, movementDetail(m, monto, ref))
	}
	return m, err
}

func (a *auditedAPI) Transfer(ctx context.Context, origenID, destinoID int64, monto decimal.Decimal, ref string) error {
	err := a.BankAPI.Transfer(ctx, origenID, destinoID, monto, ref)
	if err == nil {
		a.record(ctx, store.AuditTransfer, "cuenta", origenID, map[string]any{
			"destinoId": destinoID,
			"monto":     monto.String(),
			"ref":       ref,
		})
	}
	return err
}

func movementDetail(m api.Movement, monto decimal.Decimal, ref string) map[string]any {
	return map[string]any{
		"movimientoId": m.ID,
		"monto":        monto.String(),
		"ref":          ref,
	}
}
