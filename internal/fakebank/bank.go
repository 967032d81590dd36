// ABOUTME: In-memory customers, accounts and movements with the banking service rules
// ABOUTME: Every mutation runs under one mutex so transfers apply both legs or neither

package fakebank

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pvchallenge/banca-console/internal/api"
)

// Messages returned by the service.
const (
	msgNotEnoughFunds    = "Saldo no disponible."
	msgAmountNotPositive = "El monto debe ser mayor a 0."
	msgSameAccount       = "La cuenta destino debe ser distinta a la de origen"
	msgDuplicateNumber   = "Número de cuenta ya existe"
	msgDuplicateIdent    = "La identificación ya existe"
	msgDuplicateLogin    = "El clienteId ya existe"
	msgIntegrity         = "Conflicto con los datos (duplicados o integridad)."
	msgBadBody           = "Cuerpo de la petición inválido."
)

// bankError carries the HTTP status a failure maps to.
type bankError struct {
	status  int
	message string
}

func (e *bankError) Error() string { return e.message }

func business(msg string) error {
	return &bankError{status: http.StatusBadRequest, message: msg}
}

func notFound(format string, args ...any) error {
	return &bankError{status: http.StatusNotFound, message: fmt.Sprintf(format, args...)}
}

func conflict() error {
	return &bankError{status: http.StatusConflict, message: msgIntegrity}
}

type customer struct {
	api.Customer
}

type account struct {
	id        int64
	numero    string
	tipo      string
	saldo     decimal.Decimal
	estado    bool
	clienteID int64
}

// CustomerInput is the create/update payload for customers.
type CustomerInput struct {
	Nombre         string `json:"nombre"`
	Genero         string `json:"genero"`
	Edad           int    `json:"edad"`
	Identificacion string `json:"identificacion"`
	Direccion      string `json:"direccion"`
	Telefono       string `json:"telefono"`
	ClienteID      string `json:"clienteId"`
	Contrasena     string `json:"contrasena"`
	Estado         *bool  `json:"estado"`
}

// AccountInput is the create/update payload for accounts.
type AccountInput struct {
	Numero       string           `json:"numero"`
	Tipo         string           `json:"tipo"`
	SaldoInicial *decimal.Decimal `json:"saldoInicial"`
	Estado       *bool            `json:"estado"`
	ClienteID    int64            `json:"clienteId"`
}

// Bank holds the in-memory state. The zero value is not usable; call New.
type Bank struct {
	mu sync.Mutex

	customers map[int64]*customer
	accounts  map[int64]*account
	movements []api.Movement

	nextCustomer int64
	nextAccount  int64
	nextMovement int64

	now func() time.Time
}

// Option configures a Bank.
type Option func(*Bank)

// WithClock replaces the time source used to stamp movements.
func WithClock(now func() time.Time) Option {
	return func(b *Bank) {
		b.now = now
	}
}

// New creates an empty bank.
func New(opts ...Option) *Bank {
	b := &Bank{
		customers: make(map[int64]*customer),
		accounts:  make(map[int64]*account),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Customers returns all customers ordered by id.
func (b *Bank) Customers() []api.Customer {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]api.Customer, 0, len(b.customers))
	for _, c := range b.customers {
		out = append(out, c.public())
	}
	slices.SortFunc(out, func(x, y api.Customer) int { return cmp.Compare(x.ID, y.ID) })
	return out
}

// CreateCustomer stores a new customer. Identificacion and a non-empty
// ClienteID must be unique.
func (b *Bank) CreateCustomer(in CustomerInput) (api.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.identTakenLocked(in.Identificacion, 0) {
		return api.Customer{}, business(msgDuplicateIdent)
	}
	if in.ClienteID != "" && b.loginTakenLocked(in.ClienteID, 0) {
		return api.Customer{}, business(msgDuplicateLogin)
	}

	b.nextCustomer++
	c := &customer{Customer: api.Customer{
		ID:             b.nextCustomer,
		Nombre:         in.Nombre,
		Genero:         in.Genero,
		Edad:           in.Edad,
		Identificacion: in.Identificacion,
		Direccion:      in.Direccion,
		Telefono:       in.Telefono,
		ClienteID:      in.ClienteID,
		Contrasena:     in.Contrasena,
		Estado:         in.Estado == nil || *in.Estado,
	}}
	b.customers[c.ID] = c
	return c.public(), nil
}

// UpdateCustomer replaces the fields of customer id. Estado is kept when
// the input omits it.
func (b *Bank) UpdateCustomer(id int64, in CustomerInput) (api.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.customers[id]
	if !ok {
		return api.Customer{}, notFound("Cliente %d no existe", id)
	}
	if in.Identificacion != c.Identificacion && b.identTakenLocked(in.Identificacion, id) {
		return api.Customer{}, business(msgDuplicateIdent)
	}
	if in.ClienteID != "" && in.ClienteID != c.ClienteID && b.loginTakenLocked(in.ClienteID, id) {
		return api.Customer{}, business(msgDuplicateLogin)
	}

	c.Nombre = in.Nombre
	c.Genero = in.Genero
	c.Edad = in.Edad
	c.Identificacion = in.Identificacion
	c.Direccion = in.Direccion
	c.Telefono = in.Telefono
	if in.ClienteID != "" {
		c.ClienteID = in.ClienteID
	}
	c.Contrasena = in.Contrasena
	if in.Estado != nil {
		c.Estado = *in.Estado
	}
	return c.public(), nil
}

// DeleteCustomer removes customer id. Customers that still own accounts
// cannot be removed.
func (b *Bank) DeleteCustomer(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.customers[id]; !ok {
		return notFound("Cliente %d no existe", id)
	}
	for _, a := range b.accounts {
		if a.clienteID == id {
			return conflict()
		}
	}
	delete(b.customers, id)
	return nil
}

// Accounts returns all accounts ordered by id.
func (b *Bank) Accounts() []api.Account {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]api.Account, 0, len(b.accounts))
	for _, a := range b.accounts {
		out = append(out, b.accountViewLocked(a))
	}
	slices.SortFunc(out, func(x, y api.Account) int { return cmp.Compare(x.ID, y.ID) })
	return out
}

// CreateAccount opens an account. A positive opening balance is booked as a
// DEPOSITO_INICIAL movement referenced "apertura".
func (b *Bank) CreateAccount(in AccountInput) (api.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.numberTakenLocked(in.Numero, 0) {
		return api.Account{}, business(msgDuplicateNumber)
	}
	if _, ok := b.customers[in.ClienteID]; !ok {
		return api.Account{}, notFound("Cliente %d no existe", in.ClienteID)
	}

	b.nextAccount++
	a := &account{
		id:        b.nextAccount,
		numero:    in.Numero,
		tipo:      in.Tipo,
		saldo:     decimal.Zero,
		estado:    in.Estado == nil || *in.Estado,
		clienteID: in.ClienteID,
	}
	b.accounts[a.id] = a

	if in.SaldoInicial != nil && in.SaldoInicial.IsPositive() {
		a.saldo = *in.SaldoInicial
		b.bookLocked(a, api.MovementInitialDeposit, *in.SaldoInicial, "apertura")
	}
	return b.accountViewLocked(a), nil
}

// UpdateAccount changes number, type and state of account id. The balance
// and the owner never change here.
func (b *Bank) UpdateAccount(id int64, in AccountInput) (api.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[id]
	if !ok {
		return api.Account{}, notFound("Cuenta %d no existe", id)
	}
	if in.Numero != a.numero {
		if b.numberTakenLocked(in.Numero, id) {
			return api.Account{}, business(msgDuplicateNumber)
		}
		a.numero = in.Numero
	}
	a.tipo = in.Tipo
	if in.Estado != nil {
		a.estado = *in.Estado
	}
	return b.accountViewLocked(a), nil
}

// DeleteAccount removes account id. Accounts with movements cannot be
// removed.
func (b *Bank) DeleteAccount(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.accounts[id]; !ok {
		return notFound("Cuenta %d no existe", id)
	}
	for _, m := range b.movements {
		if m.CuentaID == id {
			return conflict()
		}
	}
	delete(b.accounts, id)
	return nil
}

// Movements returns movements in booking order, optionally for one account.
func (b *Bank) Movements(cuentaID int64) []api.Movement {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]api.Movement, 0, len(b.movements))
	for _, m := range b.movements {
		if cuentaID == 0 || m.CuentaID == cuentaID {
			out = append(out, m)
		}
	}
	return out
}

// Deposit credits monto to cuentaID.
func (b *Bank) Deposit(cuentaID int64, monto decimal.Decimal, ref string) (api.Movement, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !monto.IsPositive() {
		return api.Movement{}, business(msgAmountNotPositive)
	}
	a, ok := b.accounts[cuentaID]
	if !ok {
		return api.Movement{}, notFound("Cuenta %d no existe", cuentaID)
	}
	a.saldo = a.saldo.Add(monto)
	return b.bookLocked(a, api.MovementDeposit, monto, ref), nil
}

// Withdraw debits monto from cuentaID if the balance covers it.
func (b *Bank) Withdraw(cuentaID int64, monto decimal.Decimal, ref string) (api.Movement, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !monto.IsPositive() {
		return api.Movement{}, business(msgAmountNotPositive)
	}
	a, ok := b.accounts[cuentaID]
	if !ok {
		return api.Movement{}, notFound("Cuenta %d no existe", cuentaID)
	}
	if a.saldo.LessThan(monto) {
		return api.Movement{}, business(msgNotEnoughFunds)
	}
	a.saldo = a.saldo.Sub(monto)
	return b.bookLocked(a, api.MovementWithdrawal, monto, ref), nil
}

// Transfer books a withdrawal on origenID and a deposit on destinoID,
// referenced "<ref> - debito" and "<ref> - credito". Nothing is booked when
// either leg would fail.
func (b *Bank) Transfer(origenID, destinoID int64, monto decimal.Decimal, ref string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if origenID == destinoID {
		return business(msgSameAccount)
	}
	if !monto.IsPositive() {
		return business(msgAmountNotPositive)
	}
	origen, ok := b.accounts[origenID]
	if !ok {
		return notFound("Cuenta %d no existe", origenID)
	}
	if origen.saldo.LessThan(monto) {
		return business(msgNotEnoughFunds)
	}
	destino, ok := b.accounts[destinoID]
	if !ok {
		return notFound("Cuenta %d no existe", destinoID)
	}

	origen.saldo = origen.saldo.Sub(monto)
	b.bookLocked(origen, api.MovementWithdrawal, monto, ref+" - debito")
	destino.saldo = destino.saldo.Add(monto)
	b.bookLocked(destino, api.MovementDeposit, monto, ref+" - credito")
	return nil
}

// bookLocked appends a movement carrying the account's new balance.
func (b *Bank) bookLocked(a *account, tipo string, valor decimal.Decimal, ref string) api.Movement {
	b.nextMovement++
	m := api.Movement{
		ID:         b.nextMovement,
		CuentaID:   a.id,
		Tipo:       tipo,
		Valor:      valor,
		Saldo:      a.saldo,
		Fecha:      b.now(),
		Referencia: ref,
	}
	b.movements = append(b.movements, m)
	return m
}

func (b *Bank) accountViewLocked(a *account) api.Account {
	estado := a.estado
	view := api.Account{
		ID:        a.id,
		Numero:    a.numero,
		Tipo:      a.tipo,
		Saldo:     a.saldo,
		Estado:    &estado,
		ClienteID: a.clienteID,
	}
	if c, ok := b.customers[a.clienteID]; ok {
		view.ClienteNombre = c.Nombre
	}
	return view
}

func (b *Bank) identTakenLocked(ident string, except int64) bool {
	for id, c := range b.customers {
		if id != except && c.Identificacion == ident {
			return true
		}
	}
	return false
}

func (b *Bank) loginTakenLocked(login string, except int64) bool {
	for id, c := range b.customers {
		if id != except && c.ClienteID == login {
			return true
		}
	}
	return false
}

func (b *Bank) numberTakenLocked(numero string, except int64) bool {
	for id, a := range b.accounts {
		if id != except && a.numero == numero {
			return true
		}
	}
	return false
}

// public drops the password from the customer view.
func (c *customer) public() api.Customer {
	out := c.Customer
	out.Contrasena = ""
	return out
}
