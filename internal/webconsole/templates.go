// ABOUTME: View data types and template rendering for the web console
// ABOUTME: Views are parsed once from the embedded filesystem at startup

package webconsole

import (
	"html/template"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pvchallenge/banca-console/internal/assets"
	"github.com/pvchallenge/banca-console/internal/pages"
	"github.com/pvchallenge/banca-console/internal/store"
)

// View template names
const (
	viewCustomers = "clientes.html"
	viewAccounts  = "cuentas.html"
	viewMovements = "movimientos.html"
	viewReports   = "reportes.html"
	viewConfirm   = "confirmar.html"
	viewHelp      = "ayuda.html"
	viewAudit     = "auditoria.html"
)

var viewNames = []string{
	viewCustomers,
	viewAccounts,
	viewMovements,
	viewReports,
	viewConfirm,
	viewHelp,
	viewAudit,
}

// layout is shared by every view and consumed by base.html.
type layout struct {
	Title     string
	Active    pages.Page
	CSRFToken string
	Nonce     string
}

type customersView struct {
	layout
	*pages.Customers
}

type accountsView struct {
	layout
	*pages.Accounts
}

type movementsView struct {
	layout
	*pages.Movements
}

type reportsView struct {
	layout
	*pages.Reports
}

type confirmView struct {
	layout
	Prompt  string
	Summary string
	Action  string
	Cancel  string
}

type helpView struct {
	layout
	Content template.HTML
}

type auditView struct {
	layout
	Enabled   bool
	Action    string
	Actions   []store.AuditAction
	Entries   []store.AuditEntry
	SessionID string
	Error     string
}

var funcs = template.FuncMap{
	"stylesheet": func() string {
		return assets.URL("console.css")
	},
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"fecha": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	"deref": func(id *int64) int64 {
		if id == nil {
			return 0
		}
		return *id
	},
	"estado": func(b *bool) string {
		switch {
		case b == nil:
			return "-"
		case *b:
			return "Activa"
		default:
			return "Inactiva"
		}
	},
	"positive": func(d decimal.Decimal) bool {
		return d.IsPositive()
	},
	"nonzero": func(n int64) bool {
		return n != 0
	},
}

func parseViews() map[string]*template.Template {
	views := make(map[string]*template.Template, len(viewNames))
	for _, name := range viewNames {
		views[name] = template.Must(
			template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name),
		)
	}
	return views
}

// newLayout prepares the shared view fields, issuing the CSRF cookie when
// missing and a fresh form nonce.
func (c *Console) newLayout(w http.ResponseWriter, r *http.Request, title string, active pages.Page) layout {
	token := c.ensureCSRFToken(w, r)
	nonce, err := generateSecureToken(16)
	if err != nil {
		c.logger.Error("failed to generate form nonce", "error", err)
	}
	return layout{Title: title, Active: active, CSRFToken: token, Nonce: nonce}
}

func (c *Console) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.views[name].Execute(w, data); err != nil {
		c.logger.Error("failed to render template", "template", name, "error", err)
	}
}

func (c *Console) renderCustomers(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	c.render(w, viewCustomers, customersView{
		layout:    c.newLayout(w, r, "Clientes", pages.PageCustomers),
		Customers: ws.Customers,
	})
}

func (c *Console) renderAccounts(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	c.render(w, viewAccounts, accountsView{
		layout:   c.newLayout(w, r, "Cuentas", pages.PageAccounts),
		Accounts: ws.Accounts,
	})
}

func (c *Console) renderMovements(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	c.render(w, viewMovements, movementsView{
		layout:    c.newLayout(w, r, "Movimientos", pages.PageMovements),
		Movements: ws.Movements,
	})
}

func (c *Console) renderReports(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	c.render(w, viewReports, reportsView{
		layout:  c.newLayout(w, r, "Reportes", pages.PageReports),
		Reports: ws.Reports,
	})
}
