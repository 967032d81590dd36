// ABOUTME: banca-admin cuentas subcommands
// ABOUTME: List, create, update and delete accounts through the Accounts controller

package main

import (
	"context"
	"fmt"

	"github.com/pvchallenge/banca-console/internal/api"
	"github.com/pvchallenge/banca-console/internal/pages"
)

func (a *app) cmdCuentas(ctx context.Context, args []string) error {
	sub, args := subcommand(args)
	switch sub {
	case "list", "ls":
		return a.cuentasList(ctx)
	case "create", "add":
		return a.cuentasSave(ctx, 0, args)
	case "update", "edit":
		id, rest, err := parseID(args, "cuentas update <id> [flags]")
		if err != nil {
			return err
		}
		return a.cuentasSave(ctx, id, rest)
	case "delete", "rm":
		return a.cuentasDelete(ctx, args)
	default:
		return fmt.Errorf("unknown cuentas subcommand: %s (use list, create, update, delete)", sub)
	}
}

func (a *app) cuentasList(ctx context.Context) error {
	acc := pages.NewAccounts(a.client, a.confirm)
	acc.Activate(ctx)
	if err := pageErr(acc.Err); err != nil {
		return err
	}
	a.printAccounts(acc.Rows)
	return nil
}

func (a *app) printAccounts(rows []api.Account) {
	a.heading("Cuentas")
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "  (sin cuentas)")
		fmt.Fprintln(a.out)
		return
	}

	w := a.table()
	fmt.Fprintln(w, "  ID\tNÚMERO\tTIPO\tSALDO\tESTADO\tCLIENTE")
	for _, r := range rows {
		estado := "-"
		if r.Estado != nil {
			estado = "activa"
			if !*r.Estado {
				estado = "inactiva"
			}
		}
		cliente := r.ClienteNombre
		if cliente == "" {
			cliente = fmt.Sprint(r.ClienteID)
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Numero, r.Tipo, r.Saldo.StringFixed(2), estado, cliente)
	}
	w.Flush()
	fmt.Fprintln(a.out)
}

// cuentasSave creates an account when id is 0 and updates it otherwise.
func (a *app) cuentasSave(ctx context.Context, id int64, args []string) error {
	t := a.tracked()
	acc := pages.NewAccounts(t, a.confirm)
	if id != 0 {
		acc.Activate(ctx)
		if err := pageErr(acc.Err); err != nil {
			return err
		}
		row, ok := acc.Row(id)
		if !ok {
			return fmt.Errorf("Cuenta %d no existe", id)
		}
		acc.Edit(row)
	}

	f := &acc.Form
	fs := newFlagSet("cuentas", a.out)
	fs.StringVar(&f.Numero, "numero", f.Numero, "account number")
	fs.StringVar(&f.Tipo, "tipo", f.Tipo, "Ahorro or Corriente")
	fs.Var(decimalValue{&f.SaldoInicial}, "saldo", "opening balance")
	fs.BoolVar(&f.Estado, "estado", f.Estado, "active")
	fs.Int64Var(&f.ClienteID, "cliente", f.ClienteID, "owner customer id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	acc.Submit(ctx)
	if err := a.writeFailed(t, acc.Err); err != nil {
		return err
	}

	if id == 0 {
		a.success("Cuenta creada")
	} else {
		a.success("Cuenta %d actualizada", id)
	}
	if t.reloaded() {
		a.printAccounts(acc.Rows)
	}
	return nil
}

func (a *app) cuentasDelete(ctx context.Context, args []string) error {
	id, rest, err := parseID(args, "cuentas delete <id> [--yes]")
	if err != nil {
		return err
	}
	fs := newFlagSet("cuentas delete", a.out)
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	confirmed := false
	confirm := pages.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		confirmed = a.confirmer(*yes).Confirm(ctx, prompt)
		return confirmed
	})

	t := a.tracked()
	acc := pages.NewAccounts(t, confirm)
	acc.Delete(ctx, id)
	if err := a.writeFailed(t, acc.Err); err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(a.out, "Cancelado.")
		return nil
	}
	a.success("Cuenta %d eliminada", id)
	return nil
}
