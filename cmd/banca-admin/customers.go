// ABOUTME: banca-admin clientes subcommands
// ABOUTME: List, create, update and delete customers through the Customers controller

package main

import (
	"context"
	"fmt"

	"github.com/pvchallenge/banca-console/internal/api"
	"github.com/pvchallenge/banca-console/internal/pages"
)

func (a *app) cmdClientes(ctx context.Context, args []string) error {
	sub, args := subcommand(args)
	switch sub {
	case "list", "ls":
		return a.clientesList(ctx)
	case "create", "add":
		return a.clientesSave(ctx, 0, args)
	case "update", "edit":
		id, rest, err := parseID(args, "clientes update <id> [flags]")
		if err != nil {
			return err
		}
		return a.clientesSave(ctx, id, rest)
	case "delete", "rm":
		return a.clientesDelete(ctx, args)
	default:
		return fmt.Errorf("unknown clientes subcommand: %s (use list, create, update, delete)", sub)
	}
}

func (a *app) clientesList(ctx context.Context) error {
	c := pages.NewCustomers(a.client, a.confirm)
	c.Activate(ctx)
	if err := pageErr(c.Err); err != nil {
		return err
	}
	a.printCustomers(c.Rows)
	return nil
}

func (a *app) printCustomers(rows []api.Customer) {
	a.heading("Clientes")
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "  (sin clientes)")
		fmt.Fprintln(a.out)
		return
	}

	w := a.table()
	fmt.Fprintln(w, "  ID\tNOMBRE\tGÉNERO\tEDAD\tIDENTIFICACIÓN\tTELÉFONO\tESTADO")
	for _, r := range rows {
		estado := "activo"
		if !r.Estado {
			estado = "inactivo"
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%d\t%s\t%s\t%s\n", r.ID, r.Nombre, r.Genero, r.Edad, r.Identificacion, r.Telefono, estado)
	}
	w.Flush()
	fmt.Fprintln(a.out)
}

// clientesSave creates a customer when id is 0 and updates it otherwise.
// Flags not given keep the current form values.
func (a *app) clientesSave(ctx context.Context, id int64, args []string) error {
	t := a.tracked()
	c := pages.NewCustomers(t, a.confirm)
	if id != 0 {
		c.Activate(ctx)
		if err := pageErr(c.Err); err != nil {
			return err
		}
		row, ok := c.Row(id)
		if !ok {
			return fmt.Errorf("Cliente %d no existe", id)
		}
		c.Edit(row)
	}

	f := &c.Form
	fs := newFlagSet("clientes", a.out)
	fs.StringVar(&f.Nombre, "nombre", f.Nombre, "full name")
	fs.StringVar(&f.Genero, "genero", f.Genero, "Masculino or Femenino")
	fs.IntVar(&f.Edad, "edad", f.Edad, "age")
	fs.StringVar(&f.Identificacion, "identificacion", f.Identificacion, "national id")
	fs.StringVar(&f.Direccion, "direccion", f.Direccion, "address")
	fs.StringVar(&f.Telefono, "telefono", f.Telefono, "phone")
	fs.StringVar(&f.Contrasena, "contrasena", f.Contrasena, "password")
	fs.BoolVar(&f.Estado, "estado", f.Estado, "active")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.Submit(ctx)
	if err := a.writeFailed(t, c.Err); err != nil {
		return err
	}

	if id == 0 {
		a.success("Cliente creado")
	} else {
		a.success("Cliente %d actualizado", id)
	}
	if t.reloaded() {
		a.printCustomers(c.Rows)
	}
	return nil
}

func (a *app) clientesDelete(ctx context.Context, args []string) error {
	id, rest, err := parseID(args, "clientes delete <id> [--yes]")
	if err != nil {
		return err
	}
	fs := newFlagSet("clientes delete", a.out)
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
	c := pages.NewCustomers(t, confirm)
	c.Delete(ctx, id)
	if err := a.writeFailed(t, c.Err); err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(a.out, "Cancelado.")
		return nil
	}
	a.success("Cliente %d eliminado", id)
	return nil
}
