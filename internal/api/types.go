// ABOUTME: Record types exchanged with the banking REST API
// ABOUTME: Customers, accounts, movements and reports with decimal money fields

package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a row of GET /clientes.
type Customer struct {
	ID             int64  `json:"id"`
	Nombre         string `json:"nombre"`
	Genero         string `json:"genero"`
	Edad           int    `json:"edad"`
	Identificacion string `json:"identificacion"`
	Direccion      string `json:"direccion"`
	Telefono       string `json:"telefono"`
	ClienteID      string `json:"clienteId,omitempty"`
	Contrasena     string `json:"contrasena,omitempty"`
	Estado         bool   `json:"estado"`
}

// CustomerForm holds the editable customer fields sent on create and update.
type CustomerForm struct {
	Nombre         string `json:"nombre"`
	Genero         string `json:"genero"`
	Edad           int    `json:"edad"`
	Identificacion string `json:"identificacion"`
	Direccion      string `json:"direccion"`
	Telefono       string `json:"telefono"`
	Contrasena     string `json:"contrasena"`
	Estado         bool   `json:"estado"`
}

// Account is a row of GET /cuentas.
type Account struct {
	ID            int64            `json:"id"`
	Numero        string           `json:"numero"`
	Tipo          string           `json:"tipo"`
	Saldo         decimal.Decimal  `json:"saldo"`
	SaldoInicial  *decimal.Decimal `json:"saldoInicial,omitempty"`
	Estado        *bool            `json:"estado,omitempty"`
	ClienteID     int64            `json:"clienteId"`
	ClienteNombre string           `json:"clienteNombre,omitempty"`
}

// AccountForm holds the editable account fields sent on create and update.
type AccountForm struct {
	Numero       string          `json:"numero"`
	Tipo         string          `json:"tipo"`
	SaldoInicial decimal.Decimal `json:"saldoInicial"`
	Estado       bool            `json:"estado"`
	ClienteID    int64           `json:"clienteId"`
}

// MarshalJSON writes SaldoInicial as a JSON number. The server binds
// BigDecimal fields from numbers, not strings.
func (f AccountForm) MarshalJSON() ([]byte, error) {
	type plain AccountForm
	return json.Marshal(struct {
		plain
		SaldoInicial json.Number `json:"saldoInicial"`
	}{plain(f), json.Number(f.SaldoInicial.String())})
}

// Movement types as reported by the server.
const (
	MovementDeposit        = "DEPOSITO"
	MovementWithdrawal     = "RETIRO"
	MovementInitialDeposit = "DEPOSITO_INICIAL"
)

// Movement is a single balance change on one account. Transfers show up as
// one withdrawal and one deposit.
type Movement struct {
	ID         int64           `json:"id"`
	CuentaID   int64           `json:"cuentaId"`
	Tipo       string          `json:"tipo"`
	Valor      decimal.Decimal `json:"valor"`
	Saldo      decimal.Decimal `json:"saldo"`
	Fecha      time.Time       `json:"fecha"`
	Referencia string          `json:"referencia"`
}

// ReportRequest scopes a report to one customer and an inclusive date range.
// Desde and Hasta are ISO dates (YYYY-MM-DD).
type ReportRequest struct {
	ClienteID int64
	Desde     string
	Hasta     string
}

// Report is the structured account statement returned by /reportes/json.
type Report struct {
	ClienteID     int64           `json:"clienteId"`
	ClienteNombre string          `json:"clienteNombre"`
	Desde         string          `json:"desde"`
	Hasta         string          `json:"hasta"`
	Items         []ReportLine    `json:"items"`
	TotalDebitos  decimal.Decimal `json:"totalDebitos"`
	TotalCreditos decimal.Decimal `json:"totalCreditos"`
	PDFBase64     string          `json:"pdfBase64,omitempty"`
}

// ReportLine is one movement of a report with the running balance around it.
// Fecha is a zone-less local timestamp as sent by the server.
type ReportLine struct {
	Fecha           string          `json:"fecha"`
	Cliente         string          `json:"cliente"`
	NumeroCuenta    string          `json:"numeroCuenta"`
	TipoCuenta      string          `json:"tipoCuenta"`
	SaldoInicial    decimal.Decimal `json:"saldoInicial"`
	Estado          bool            `json:"estado"`
	Movimiento      decimal.Decimal `json:"movimiento"`
	SaldoDisponible decimal.Decimal `json:"saldoDisponible"`
}

// Document is an opaque binary response such as the PDF report.
type Document struct {
	ContentType string
	Data        []byte
}

// ErrorResponse is the server's error payload.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}
