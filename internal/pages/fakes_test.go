// ABOUTME: Recording fakes of the API interfaces used by controller tests
// ABOUTME: Each fake counts calls, captures arguments and returns scripted results

package pages

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pvchallenge/banca-console/internal/api"
)

type call struct {
	Name string
	Args []any
}

type fakeAPI struct {
	calls []call

	customers    []api.Customer
	accounts     []api.Account
	movements    []api.Movement
	report       api.Report
	document     api.Document
	listErr      error
	customersErr error
	writeErr     error
	reportErr    error
}

func (f *fakeAPI) record(name string, args ...any) {
	f.calls = append(f.calls, call{Name: name, Args: args})
}

func (f *fakeAPI) count(name string) int {
	n := 0
	for _, c := range f.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) last(name string) (call, bool) {
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Name == name {
			return f.calls[i], true
		}
	}
	return call{}, false
}

func (f *fakeAPI) names() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Name
	}
	return out
}

func (f *fakeAPI) ListCustomers(context.Context) ([]api.Customer, error) {
	f.record("ListCustomers")
	if f.customersErr != nil {
		return nil, f.customersErr
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.customers, nil
}

func (f *fakeAPI) CreateCustomer(_ context.Context, form api.CustomerForm) (api.Customer, error) {
	f.record("CreateCustomer", form)
	return api.Customer{}, f.writeErr
}

func (f *fakeAPI) UpdateCustomer(_ context.Context, id int64, form api.CustomerForm) (api.Customer, error) {
	f.record("UpdateCustomer", id, form)
	return api.Customer{}, f.writeErr
}

func (f *fakeAPI) DeleteCustomer(_ context.Context, id int64) error {
	f.record("DeleteCustomer", id)
	return f.writeErr
}

func (f *fakeAPI) ListAccounts(context.Context) ([]api.Account, error) {
	f.record("ListAccounts")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.accounts, nil
}

func (f *fakeAPI) CreateAccount(_ context.Context, form api.AccountForm) (api.Account, error) {
	f.record("CreateAccount", form)
	return api.Account{}, f.writeErr
}

func (f *fakeAPI) UpdateAccount(_ context.Context, id int64, form api.AccountForm) (api.Account, error) {
	f.record("UpdateAccount", id, form)
	return api.Account{}, f.writeErr
}

func (f *fakeAPI) DeleteAccount(_ context.Context, id int64) error {
	f.record("DeleteAccount", id)
	return f.writeErr
}

func (f *fakeAPI) ListMovements(context.Context) ([]api.Movement, error) {
	f.record("ListMovements")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.movements, nil
}

func (f *fakeAPI) Deposit(_ context.Context, cuentaID int64, monto decimal.Decimal, ref string) (api.Movement, error) {
	f.record("Deposit", cuentaID, monto, ref)
	return api.Movement{}, f.writeErr
}

func (f *fakeAPI) Withdraw(_ context.Context, cuentaID int64, monto decimal.Decimal, ref string) (api.Movement, error) {
	f.record("Withdraw", cuentaID, monto, ref)
	return api.Movement{}, f.writeErr
}

func (f *fakeAPI) Transfer(_ context.Context, origenID, destinoID int64, monto decimal.Decimal, ref string) error {
	f.record("Transfer", origenID, destinoID, monto, ref)
	return f.writeErr
}

func (f *fakeAPI) ReportJSON(_ context.Context, req api.ReportRequest) (api.Report, error) {
	f.record("ReportJSON", req)
	return f.report, f.reportErr
}

func (f *fakeAPI) ReportPDF(_ context.Context, req api.ReportRequest) (api.Document, error) {
	f.record("ReportPDF", req)
	return f.document, f.reportErr
}

// confirmer records prompts and answers with a fixed value.
type confirmer struct {
	answer  bool
	prompts []string
}

func (c *confirmer) Confirm(_ context.Context, prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}
