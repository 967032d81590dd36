// ABOUTME: HTTP handlers for the console pages
// ABOUTME: GETs navigate (fresh controller + activate); POSTs act then re-render

package webconsole

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pvchallenge/banca-console/internal/pages"
	"github.com/pvchallenge/banca-console/internal/store"
)

// pathID parses the {id} wildcard. On failure it redirects to fallback.
func pathID(w http.ResponseWriter, r *http.Request, fallback pages.Page) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Redirect(w, r, fallback.Path(), http.StatusSeeOther)
		return 0, false
	}
	return id, true
}

// Customers

func (c *Console) handleCustomers(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.Customers = pages.NewCustomers(ws.client, ws.confirm)
	ws.Customers.Activate(r.Context())
	c.renderCustomers(w, r, ws)
}

func (c *Console) handleCustomerSubmit(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	fresh, ok := c.beginPost(w, r, ws)
	if !ok {
		return
	}
	if fresh {
		ws.Customers.EditID = formEditID(r)
		ws.Customers.Form = bindCustomerForm(r)
		ws.Customers.Submit(r.Context())
	}
	c.renderCustomers(w, r, ws)
}

func (c *Console) handleCustomerEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, pages.PageCustomers)
	if !ok {
		return
	}
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	row, found := ws.Customers.Row(id)
	if !found {
		ws.Customers.Load(r.Context())
		row, found = ws.Customers.Row(id)
	}
	if !found {
		http.Redirect(w, r, pages.PageCustomers.Path(), http.StatusSeeOther)
		return
	}
	ws.Customers.Edit(row)
	c.renderCustomers(w, r, ws)
}

func (c *Console) handleCustomerReset(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	fresh, ok := c.beginPost(w, r, ws)
	if !ok {
		return
	}
	if fresh {
		ws.Customers.Reset()
	}
	c.renderCustomers(w, r, ws)
}

func (c *Console) handleCustomerDeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, pages.PageCustomers)
	if !ok {
		return
	}
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	row, found := ws.Customers.Row(id)
	if !found {
		ws.Customers.Load(r.Context())
		row, found = ws.Customers.Row(id)
	}
	summary := fmt.Sprintf("Cliente %d", id)
	if found {
		summary = fmt.Sprintf("%s (%s)", row.Nombre, row.Identificacion)
	}

	c.render(w, viewConfirm, confirmView{
		layout:  c.newLayout(w, r, "Eliminar cliente", pages.PageCustomers),
		Prompt:  pages.DeleteCustomerPrompt,
		Summary: summary,
		Action:  fmt.Sprintf("/clientes/%d/eliminar", id),
		Cancel:  pages.PageCustomers.Path(),
	})
}

func (c *Console) handleCustomerDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, pages.PageCustomers)
	if !ok {
		return
	}
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	fresh, ok := c.beginPost(w, r, ws)
	if !ok {
		return
	}
	if fresh {
		ws.confirm.answer = r.PostFormValue("confirmar") == "si"
		ws.Customers.Delete(r.Context(), id)
	}
	c.renderCustomers(w, r, ws)
}

// Accounts

func (c *Console) handleAccounts(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.Accounts = pages.NewAccounts(ws.client, ws.confirm)
	ws.Accounts.Activate(r.Context())
	c.renderAccounts(w, r, ws)
}

func (c *Console) handleAccountSubmit(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	fresh, ok := c.beginPost(w, r, ws)
	if !ok {
		return
	}
	if fresh {
		ws.Accounts.EditID = formEditID(r)
		ws.Accounts.Form = bindAccountForm(r)
		ws.Accounts.Submit(r.Context())
	}
	c.renderAccounts(w, r, ws)
}

func (c *Console) handleAccountEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, pages.PageAccounts)
	if !ok {
		return
	}
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	row, found := ws.Accounts.Row(id)
	if !found {
		ws.Accounts.Activate(r.Context())
		row, found = ws.Accounts.Row(id)
	}
	if !found {
		http.Redirect(w, r, pages.PageAccounts.Path(), http.StatusSeeOther)
		return
	}
	ws.Accounts.Edit(row)
	c.renderAccounts(w, r, ws)
}

func (c *Console) handleAccountReset(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	fresh, ok := c.beginPost(w, r, ws)
	if !ok {
		return
	}
	if fresh {
		ws.Accounts.Reset()
	}
	c.renderAccounts(w, r, ws)
}

func (c *Console) handleAccountDeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, pages.PageAccounts)
	if !ok {
		return
	}
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	row, found := ws.Accounts.Row(id)
	if !found {
		ws.Accounts.Load(r.Context())
		row, found = ws.Accounts.Row(id)
	}
	summary := fmt.Sprintf("Cuenta %d", id)
	if found {
		summary = fmt.Sprintf("Cuenta %s (%s)", row.Numero, row.Tipo)
	}

	c.render(w, viewConfirm, confirmView{
		layout:  c.newLayout(w, r, "Eliminar cuenta", pages.PageAccounts),
		Prompt:  pages.DeleteAccountPrompt,
		Summary: summary,
		Action:  fmt.Sprintf("/cuentas/%d/eliminar", id),
		Cancel:  pages.PageAccounts.Path(),
	})
}

func (c *Console) handleAccountDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, pages.PageAccounts)
	if !ok {
		return
	}
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	fresh, ok := c.beginPost(w, r, ws)
	if !ok {
		return
	}
	if fresh {
		ws.confirm.answer = r.PostFormValue("confirmar") == "si"
		ws.Accounts.Delete(r.Context(), id)
	}
	c.renderAccounts(w, r, ws)
}

// Movements

func (c *Console) handleMovements(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.Movements = pages.NewMovements(ws.client)
	ws.Movements.Activate(r.Context())
	c.renderMovements(w, r, ws)
}

func (c *Console) handleDeposit(w http.ResponseWriter, r *http.Request) {
	c.handleAccountMovement(w, r, (*pages.Movements).Depositar)
}

func (c *Console) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	c.handleAccountMovement(w, r, (*pages.Movements).Retirar)
}

func (c *Console) handleAccountMovement(w http.ResponseWriter, r *http.Request, op func(*pages.Movements, context.Context)) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	fresh, ok := c.beginPost(w, r, ws)
	if !ok {
		return
	}
	if fresh {
		m := ws.Movements
		m.CuentaID = formInt64(r, "cuentaId")
		m.Monto = formDecimal(r, "monto")
		m.Ref = formString(r, "ref")
		op(m, r.Context())
	}
	c.renderMovements(w, r, ws)
}

func (c *Console) handleTransfer(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	fresh, ok := c.beginPost(w, r, ws)
	if !ok {
		return
	}
	if fresh {
		ws.Movements.Transfer = pages.TransferForm{
			OrigenID:  formInt64(r, "origenId"),
			DestinoID: formInt64(r, "destinoId"),
			Monto:     formDecimal(r, "monto"),
			Ref:       formString(r, "ref"),
		}
		ws.Movements.Transferir(r.Context())
	}
	c.renderMovements(w, r, ws)
}

// Reports

func (c *Console) handleReports(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.Reports = pages.NewReports(ws.client, ws.saver)
	ws.Reports.Now = c.now
	ws.Reports.Activate(r.Context())
	c.renderReports(w, r, ws)
}

func bindReportForm(r *http.Request, rep *pages.Reports) {
	rep.ClienteID = formInt64(r, "clienteId")
	rep.Desde = formString(r, "desde")
	rep.Hasta = formString(r, "hasta")
}

func (c *Console) handleReportView(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	fresh, ok := c.beginPost(w, r, ws)
	if !ok {
		return
	}
	if fresh {
		bindReportForm(r, ws.Reports)
		ws.Reports.Ver(r.Context())
	}
	c.renderReports(w, r, ws)
}

// handleReportDownload streams the PDF on success and falls back to the
// report page otherwise.
func (c *Console) handleReportDownload(w http.ResponseWriter, r *http.Request) {
	ws := c.workspace(w, r)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	fresh, ok := c.beginPost(w, r, ws)
	if !ok {
		return
	}
	if fresh {
		bindReportForm(r, ws.Reports)

		ws.saver.bind(w)
		ws.Reports.Descargar(r.Context())
		written := ws.saver.written
		ws.saver.release()

		if written {
			c.logger.Info("report downloaded", "session", ws.ID, "cliente_id", ws.Reports.ClienteID, "file", ws.Reports.FileName())
			return
		}
	}
	c.renderReports(w, r, ws)
}

// Help and audit

func (c *Console) handleHelp(w http.ResponseWriter, r *http.Request) {
	c.render(w, viewHelp, helpView{
		layout:  c.newLayout(w, r, "Ayuda", ""),
		Content: c.help,
	})
}

func (c *Console) handleAudit(w http.ResponseWriter, r *http.Request) {
	data := auditView{
		layout:  c.newLayout(w, r, "Auditoría", ""),
		Enabled: c.journal != nil,
		Actions: store.ValidAuditActions,
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		data.SessionID = cookie.Value
	}

	if c.journal != nil {
		filter := store.AuditFilter{Limit: 100}
		if action := store.AuditAction(r.URL.Query().Get("accion")); action.Valid() {
			filter.Action = &action
			data.Action = string(action)
		}
		if r.URL.Query().Get("sesion") == "propia" && data.SessionID != "" {
			filter.SessionID = &data.SessionID
		}

		entries, err := c.journal.ListAuditLog(r.Context(), filter)
		if err != nil {
			c.logger.Error("failed to list audit log", "error", err)
			data.Error = "Error al cargar auditoría"
		}
		data.Entries = entries
	}

	c.render(w, viewAudit, data)
}
