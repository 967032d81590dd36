// ABOUTME: Customers page controller
// ABOUTME: Lists, creates, edits and deletes customers through the API

package pages

import (
	"context"

	"github.com/pvchallenge/banca-console/internal/api"
)

// CustomerAPI is the part of the API the customers page uses.
type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]api.Customer, error)
	CreateCustomer(ctx context.Context, form api.CustomerForm) (api.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, form api.CustomerForm) (api.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// Fallback messages of the customers page.
const (
	ErrLoadCustomers = "Error al cargar clientes"
	ErrCreate        = "Error al crear"
	ErrUpdate        = "Error al actualizar"
	ErrDelete        = "Error al eliminar"
)

// DeleteCustomerPrompt is shown before a customer is deleted.
const DeleteCustomerPrompt = "¿Está seguro de eliminar?"

// DefaultCustomerForm returns the blank customer form.
func DefaultCustomerForm() api.CustomerForm {
	return api.CustomerForm{
		Nombre:         "",
		Genero:         "Masculino",
		Edad:           18,
		Identificacion: "",
		Direccion:      "",
		Telefono:       "",
		Contrasena:     "",
		Estado:         true,
	}
}

// Customers is the controller of the customers page.
type Customers struct {
	api     CustomerAPI
	confirm Confirmer

	Rows   []api.Customer
	Err    string
	Form   api.CustomerForm
	EditID *int64
}

// NewCustomers creates the controller in create mode with a blank form.
func NewCustomers(client CustomerAPI, confirm Confirmer) *Customers {
	return &Customers{
		api:     client,
		confirm: confirm,
		Form:    DefaultCustomerForm(),
	}
}

// Activate loads the page's data.
func (c *Customers) Activate(ctx context.Context) {
	c.Load(ctx)
}

// Load replaces Rows with the server's list. On failure Rows is kept.
func (c *Customers) Load(ctx context.Context) {
	rows, err := c.api.ListCustomers(ctx)
	if err != nil {
		c.Err = api.Message(err, ErrLoadCustomers)
		return
	}
	c.Rows = rows
	c.Err = ""
}

// Submit creates a customer from Form, or updates EditID in edit mode.
// On failure the form and edit state are kept so the user can retry.
func (c *Customers) Submit(ctx context.Context) {
	if c.EditID == nil {
		if _, err := c.api.CreateCustomer(ctx, c.Form); err != nil {
			c.Err = api.Message(err, ErrCreate)
			return
		}
	} else {
		if _, err := c.api.UpdateCustomer(ctx, *c.EditID, c.Form); err != nil {
			c.Err = api.Message(err, ErrUpdate)
			return
		}
	}
	c.Reset()
	c.Load(ctx)
	c.Err = ""
}

// Edit copies row into Form and switches to edit mode.
func (c *Customers) Edit(row api.Customer) {
	id := row.ID
	c.EditID = &id
	c.Form = api.CustomerForm{
		Nombre:         row.Nombre,
		Genero:         row.Genero,
		Edad:           row.Edad,
		Identificacion: row.Identificacion,
		Direccion:      row.Direccion,
		Telefono:       row.Telefono,
		Contrasena:     row.Contrasena,
		Estado:         row.Estado,
	}
}

// Delete removes customer id after the user confirms.
func (c *Customers) Delete(ctx context.Context, id int64) {
	if !c.confirm.Confirm(ctx, DeleteCustomerPrompt) {
		return
	}
	if err := c.api.DeleteCustomer(ctx, id); err != nil {
		c.Err = api.Message(err, ErrDelete)
		return
	}
	c.Load(ctx)
}

// Reset restores the blank form and leaves edit mode.
func (c *Customers) Reset() {
	c.EditID = nil
	c.Form = DefaultCustomerForm()
}

// Row returns the loaded customer with the given id.
func (c *Customers) Row(id int64) (api.Customer, bool) {
	for _, r := range c.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return api.Customer{}, false
}
