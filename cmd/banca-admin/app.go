// ABOUTME: Subcommand implementations for banca-admin
// ABOUTME: Each command runs one controller operation and prints its state

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/pvchallenge/banca-console/internal/pages"
)

// bankAPI is the union of the controller dependencies.
type bankAPI interface {
	pages.CustomerAPI
	pages.AccountAPI
	pages.MovementAPI
	pages.ReportAPI
}

type app struct {
	client  bankAPI
	out     io.Writer
	confirm pages.Confirmer
}

func (a *app) run(ctx context.Context, args []string) error {
	cmd, args := args[0], args[1:]

	switch cmd {
	case "clientes":
		return a.cmdClientes(ctx, args)
	case "cuentas":
		return a.cmdCuentas(ctx, args)
	case "movimientos":
		return a.cmdMovimientos(ctx, args)
	case "reportes":
		return a.cmdReportes(ctx, args)
	case "help", "-h", "--help":
		printUsage(a.out)
		return nil
	default:
		printUsage(a.out)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// pageErr turns a controller's error message into an error.
func pageErr(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

func (a *app) heading(title string) {
	cyan := color.New(color.FgCyan)
	fmt.Fprintln(a.out)
	cyan.Fprintf(a.out, "  %s\n", title)
}

func (a *app) success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(a.out, "✓ "+format+"\n", args...)
}

// subcommand splits "list", "create", "update <id>" and "delete <id>".
func subcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "list", nil
	}
	return args[0], args[1:]
}

func parseID(args []string, usage string) (int64, []string, error) {
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, nil, fmt.Errorf("invalid id %q", args[0])
	}
	return id, args[1:], nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("El monto debe ser mayor a 0: %q", s)
	}
	return d, nil
}

// decimalValue adapts a decimal to flag.Value.
type decimalValue struct{ d *decimal.Decimal }

func (v decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// confirmer returns the prompt confirmer unless --yes was given.
func (a *app) confirmer(yes bool) pages.Confirmer {
	if yes {
		return pages.AlwaysConfirm
	}
	return a.confirm
}
