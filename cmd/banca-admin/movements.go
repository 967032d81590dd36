// ABOUTME: banca-admin movement and report subcommands
// ABOUTME: Deposits, withdrawals, transfers and statements through the controllers

package main

import (
	"context"
	"fmt"

	"github.com/pvchallenge/banca-console/internal/api"
	"github.com/pvchallenge/banca-console/internal/pages"
)

func (a *app) cmdMovimientos(ctx context.Context, args []string) error {
	sub, args := subcommand(args)
	switch sub {
	case "list", "ls":
		return a.movimientosList(ctx)
	case "deposito":
		return a.cmdMovimiento(ctx, "deposito", args, (*pages.Movements).Depositar)
	case "retiro":
		return a.cmdMovimiento(ctx, "retiro", args, (*pages.Movements).Retirar)
	case "transferencia":
		return a.cmdTransferencia(ctx, args)
	default:
		return fmt.Errorf("unknown movimientos subcommand: %s (use list, deposito, retiro, transferencia)", sub)
	}
}

func (a *app) movimientosList(ctx context.Context) error {
	m := pages.NewMovements(a.client)
	m.Activate(ctx)
	if err := pageErr(m.Err); err != nil {
		return err
	}
	a.printMovements(m.Rows)
	return nil
}

func (a *app) printMovements(rows []api.Movement) {
	a.heading("Movimientos")
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "  (sin movimientos)")
		fmt.Fprintln(a.out)
		return
	}

	w := a.table()
	fmt.Fprintln(w, "  ID\tCUENTA\tTIPO\tVALOR\tSALDO\tFECHA\tREFERENCIA")
	for _, r := range rows {
		fmt.Fprintf(w, "  %d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.CuentaID, r.Tipo, r.Valor.StringFixed(2), r.Saldo.StringFixed(2),
			r.Fecha.Format("2006-01-02 15:04"), r.Referencia)
	}
	w.Flush()
	fmt.Fprintln(a.out)
}

// cmdMovimiento runs a deposit or withdrawal: <cuenta> <monto> [--ref R].
func (a *app) cmdMovimiento(ctx context.Context, name string, args []string, op func(*pages.Movements, context.Context)) error {
	usage := fmt.Sprintf("movimientos %s <cuenta> <monto> [--ref R]", name)
	id, rest, err := parseID(args, usage)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("usage: %s", usage)
	}
	monto, err := parseAmount(rest[0])
	if err != nil {
		return err
	}

	fs := newFlagSet(name, a.out)
	ref := fs.String("ref", "", "reference")
	if err := fs.Parse(rest[1:]); err != nil {
		return err
	}

	m := pages.NewMovements(a.client)
	m.CuentaID = id
	m.Monto = monto
	m.Ref = *ref
	op(m, ctx)
	if err := pageErr(m.Err); err != nil {
		return err
	}

	a.success("%s de %s en la cuenta %d", name, monto.StringFixed(2), id)
	a.printMovements(m.Rows)
	return nil
}

func (a *app) cmdTransferencia(ctx context.Context, args []string) error {
	const usage = "movimientos transferencia <origen> <destino> <monto> [--ref R]"
	origen, rest, err := parseID(args, usage)
	if err != nil {
		return err
	}
	destino, rest, err := parseID(rest, usage)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("usage: %s", usage)
	}
	monto, err := parseAmount(rest[0])
	if err != nil {
		return err
	}

	fs := newFlagSet("transferencia", a.out)
	ref := fs.String("ref", "", "reference")
	if err := fs.Parse(rest[1:]); err != nil {
		return err
	}

	m := pages.NewMovements(a.client)
	m.Transfer = pages.TransferForm{OrigenID: origen, DestinoID: destino, Monto: monto, Ref: *ref}
	m.Transferir(ctx)
	if err := pageErr(m.Err); err != nil {
		return err
	}

	a.success("Transferencia de %s de la cuenta %d a la %d", monto.StringFixed(2), origen, destino)
	a.printMovements(m.Rows)
	return nil
}

func (a *app) cmdReportes(ctx context.Context, args []string) error {
	sub, args := subcommand(args)
	if sub != "ver" && sub != "pdf" {
		return fmt.Errorf("unknown reportes subcommand: %s (use ver, pdf)", sub)
	}

	usage := fmt.Sprintf("reportes %s <cliente> --desde YYYY-MM-DD --hasta YYYY-MM-DD", sub)
	if sub == "pdf" {
		usage += " [--out DIR]"
	}
	id, rest, err := parseID(args, usage)
	if err != nil {
		return err
	}

	fs := newFlagSet("reportes "+sub, a.out)
	desde := fs.String("desde", "", "first day (YYYY-MM-DD)")
	hasta := fs.String("hasta", "", "last day (YYYY-MM-DD)")
	outDir := fs.String("out", ".", "directory for the PDF")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if *desde == "" || *hasta == "" {
		return fmt.Errorf("usage: %s", usage)
	}

	saver := &pages.DirSaver{Dir: *outDir}
	r := pages.NewReports(a.client, saver)
	r.ClienteID = id
	r.Desde = *desde
	r.Hasta = *hasta

	if sub == "pdf" {
		r.Descargar(ctx)
		if err := pageErr(r.Err); err != nil {
			return err
		}
		a.success("Reporte guardado en %s", saver.Saved)
		return nil
	}

	r.Ver(ctx)
	if err := pageErr(r.Err); err != nil {
		return err
	}
	a.printReport(r.Data)
	return nil
}

func (a *app) printReport(rep *api.Report) {
	a.heading(fmt.Sprintf("Estado de cuenta: %s (%s a %s)", rep.ClienteNombre, rep.Desde, rep.Hasta))
	if len(rep.Items) == 0 {
		fmt.Fprintln(a.out, "  (sin movimientos en el rango)")
	} else {
		w := a.table()
		fmt.Fprintln(w, "  FECHA\tCUENTA\tTIPO\tSALDO INICIAL\tMOVIMIENTO\tSALDO DISPONIBLE")
		for _, l := range rep.Items {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n",
				l.Fecha, l.NumeroCuenta, l.TipoCuenta,
				l.SaldoInicial.StringFixed(2), l.Movimiento.StringFixed(2), l.SaldoDisponible.StringFixed(2))
		}
		w.Flush()
	}
	fmt.Fprintf(a.out, "\n  Total débitos: %s   Total créditos: %s\n\n",
		rep.TotalDebitos.StringFixed(2), rep.TotalCreditos.StringFixed(2))
}
