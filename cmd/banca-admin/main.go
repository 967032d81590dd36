// ABOUTME: Command-line back office for the banking API
// ABOUTME: Drives the same page controllers as the web console from a terminal

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/pvchallenge/banca-console/internal/api"
	"github.com/pvchallenge/banca-console/internal/pages"
)

const banner = `
  _                                      _           _
 | |__   __ _ _ __   ___ __ _        __ _| |_ __ ___ (_)_ __
 | '_ \ / _' | '_ \ / __/ _' |_____ / _' | | '_ ' _ \| | '_ \
 | |_) | (_| | | | | (_| (_| |_____| (_| | | | | | | | | | | |
 |_.__/ \__,_|_| |_|\___\__,_|      \__,_|_|_| |_| |_|_|_| |_|
`

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	baseURL := os.Getenv("BANCA_API_URL")
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}

	a := &app{
		client:  api.New(baseURL),
		out:     os.Stdout,
		confirm: pages.PromptConfirmer{In: os.Stdin, Out: os.Stdout},
	}

	if err := a.run(ctx, os.Args[1:]); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Fprint(w, banner)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: banca-admin <command> [args]")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  clientes                          List customers")
	fmt.Fprintln(w, "  clientes create [flags]           Create a customer")
	fmt.Fprintln(w, "  clientes update <id> [flags]      Update a customer")
	fmt.Fprintln(w, "  clientes delete <id> [--yes]      Delete a customer")
	fmt.Fprintln(w, "  cuentas                           List accounts")
	fmt.Fprintln(w, "  cuentas create [flags]            Create an account")
	fmt.Fprintln(w, "  cuentas update <id> [flags]       Update an account")
	fmt.Fprintln(w, "  cuentas delete <id> [--yes]       Delete an account")
	fmt.Fprintln(w, "  movimientos                       List movements")
	fmt.Fprintln(w, "  movimientos deposito <cuenta> <monto> [--ref R]")
	fmt.Fprintln(w, "  movimientos retiro <cuenta> <monto> [--ref R]")
	fmt.Fprintln(w, "  movimientos transferencia <origen> <destino> <monto> [--ref R]")
	fmt.Fprintln(w, "  reportes ver <cliente> --desde D --hasta D")
	fmt.Fprintln(w, "  reportes pdf <cliente> --desde D --hasta D [--out DIR]")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  BANCA_API_URL    Banking API root (default: %s)\n", api.DefaultBaseURL)
	fmt.Fprintln(w)
}
