// Package api is the HTTP client for the banking back-office REST API.
//
// # Overview
//
// Every server operation is one method on Client. Each call takes a
// context, performs exactly one request and returns a single value or an
// error. There are no retries and no local caching; the server owns all
// business rules.
//
// # Endpoints
//
//   - /clientes       list, create, update, delete customers
//   - /cuentas        list, create, update, delete accounts
//   - /movimientos    list movements; deposito, retiro, transferencia
//   - /reportes/json  customer report as structured data
//   - /reportes/pdf   customer report as a PDF document
//
// Deposits, withdrawals and transfers carry their arguments as query
// parameters with an empty body. The ref parameter is always sent, as an
// empty string when the caller has none.
//
// # Errors
//
// Non-2xx responses are returned as *Error, carrying the message of the
// server's error payload when there is one. Message picks that message or a
// caller-supplied fallback:
//
//	rows, err := client.ListCustomers(ctx)
//	if err != nil {
//		msg := api.Message(err, "Error al cargar clientes")
//	}
//
// # Usage
//
//	client := api.New("http://localhost:8080/api", api.WithLogger(logger))
//	mov, err := client.Deposit(ctx, 1, decimal.NewFromInt(50), "ref123")
package api
