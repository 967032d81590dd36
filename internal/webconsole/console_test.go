// ABOUTME: End-to-end tests of the web console against the in-memory fake bank
// ABOUTME: Drives pages with a cookie-keeping browser over httptest servers

package webconsole

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvchallenge/banca-console/internal/api"
	"github.com/pvchallenge/banca-console/internal/fakebank"
	"github.com/pvchallenge/banca-console/internal/store"
)

type testEnv struct {
	bank    *fakebank.Bank
	journal *store.SQLiteStore
	console *Console
	server  *httptest.Server
}

func newTestEnv(t *testing.T, withJournal bool) *testEnv {
	t.Helper()

	bank := fakebank.New()
	require.NoError(t, fakebank.Seed(bank))
	backend := httptest.NewServer(bank.Handler())
	t.Cleanup(backend.Close)

	env := &testEnv{bank: bank}

	var journal store.Journal
	if withJournal {
		s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "audit.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		env.journal = s
		journal = s
	}

	env.console = New(api.New(backend.URL+"/api"), journal, Config{SessionTTL: time.Hour, MaxSessions: 10})
	env.console.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(env.console.Close)

	mux := http.NewServeMux()
	env.console.RegisterRoutes(mux)
	env.server = httptest.NewServer(mux)
	t.Cleanup(env.server.Close)
	return env
}

// browser keeps cookies and the last rendered page between requests.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
	page   string
}

func (e *testEnv) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: e.server.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	_ = resp.Body.Close()
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		b.page = string(body)
	}
	resp.Body = io.NopCloser(strings.NewReader(string(body)))
	return resp
}

func (b *browser) get(path string) *http.Response {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) csrf() string {
	u, _ := url.Parse(b.base)
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == CSRFCookieName {
			return c.Value
		}
	}
	return ""
}

var nonceRe = regexp.MustCompile(`name="nonce" value="([0-9a-f]+)"`)

func (b *browser) nonce() string {
	b.t.Helper()
	m := nonceRe.FindStringSubmatch(b.page)
	require.NotNil(b.t, m, "page has no form nonce")
	return m[1]
}

var editIDRe = regexp.MustCompile(`name="editId" value="([0-9]+)"`)

// editID returns the hidden edit-mode field of the last page.
func (b *browser) editID() string {
	b.t.Helper()
	m := editIDRe.FindStringSubmatch(b.page)
	require.NotNil(b.t, m, "page has no editId field")
	return m[1]
}

// post submits form with the CSRF token and the nonce of the last page.
func (b *browser) post(path string, form url.Values) *http.Response {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if !form.Has("csrf_token") {
		form.Set("csrf_token", b.csrf())
	}
	if !form.Has("nonce") {
		form.Set("nonce", b.nonce())
	}
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func countCustomers(bank *fakebank.Bank, nombre string) int {
	n := 0
	for _, c := range bank.Customers() {
		if c.Nombre == nombre {
			n++
		}
	}
	return n
}

func TestConsole_RedirectsToMovements(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)

	for _, path := range []string{"/", "/desconocido", "/clientes/x/y/z"} {
		resp := b.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/movimientos", resp.Header.Get("Location"), path)
	}
}

func TestConsole_CustomersPageListsRows(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)

	resp := b.get("/clientes")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, b.page, "Jose Lema")
	assert.Contains(t, b.page, "Marianela Montalvo")
	assert.Contains(t, b.page, "Nuevo cliente")
	assert.NotEmpty(t, b.csrf())

	var hasSession bool
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			hasSession = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, hasSession, "first visit starts a session")
}

func TestConsole_RejectsPostWithoutCSRF(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)
	b.get("/clientes")

	resp := b.post("/clientes", url.Values{"csrf_token": {"forged"}, "nombre": {"Intruso"}, "identificacion": {"999"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, countCustomers(env.bank, "Intruso"))
}

func TestConsole_RejectsPostWithoutNonce(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)
	b.get("/clientes")

	resp := b.post("/clientes", url.Values{"nonce": {""}, "nombre": {"Sin nonce"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, countCustomers(env.bank, "Sin nonce"))
}

func TestConsole_CreateCustomerOnceAndAudit(t *testing.T) {
	env := newTestEnv(t, true)
	b := env.browser(t)
	b.get("/clientes")
	nonce := b.nonce()

	form := url.Values{
		"nonce":          {nonce},
		"nombre":         {"Juan"},
		"genero":         {"Masculino"},
		"edad":           {"30"},
		"identificacion": {"0102030405"},
		"estado":         {"on"},
	}
	resp := b.post("/clientes", form)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, b.page, "Juan")
	assert.Contains(t, b.page, "Nuevo cliente", "form resets after a successful create")
	assert.Equal(t, 1, countCustomers(env.bank, "Juan"))

	// A refresh resubmits the same nonce.
	resp = b.post("/clientes", form)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, countCustomers(env.bank, "Juan"))

	entries, err := env.journal.ListAuditLog(context.Background(), store.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, store.AuditCreateCustomer, entries[0].Action)
	assert.Equal(t, "cliente", entries[0].TargetType)
	assert.Equal(t, "Juan", entries[0].Detail["nombre"])
	assert.NotContains(t, entries[0].Detail, "contrasena")
}

func TestConsole_CreateCustomerFailureShowsServerMessage(t *testing.T) {
	env := newTestEnv(t, true)
	b := env.browser(t)
	b.get("/clientes")

	resp := b.post("/clientes", url.Values{"nombre": {"Duplicado"}, "identificacion": {"1712345678"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, b.page, "La identificación ya existe")
	assert.Contains(t, b.page, `value="Duplicado"`, "form keeps the typed values")

	entries, err := env.journal.ListAuditLog(context.Background(), store.AuditFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConsole_EditAndUpdateCustomer(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)
	b.get("/clientes")

	b.get("/clientes/2/editar")
	assert.Contains(t, b.page, "Editar cliente #2")
	assert.Contains(t, b.page, `value="Marianela Montalvo"`)
	require.Equal(t, "2", b.editID())

	b.post("/clientes", url.Values{
		"editId":         {b.editID()},
		"nombre":         {"Marianela M."},
		"genero":         {"Femenino"},
		"edad":           {"29"},
		"identificacion": {"1723456789"},
		"estado":         {"on"},
	})
	assert.Contains(t, b.page, "Marianela M.")
	assert.Contains(t, b.page, "Nuevo cliente")
	assert.Equal(t, "0", b.editID())
	assert.Equal(t, 1, countCustomers(env.bank, "Marianela M."))
}

func customerByID(t *testing.T, bank *fakebank.Bank, id int64) api.Customer {
	t.Helper()
	for _, c := range bank.Customers() {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("customer %d not found", id)
	return api.Customer{}
}

func accountByID(t *testing.T, bank *fakebank.Bank, id int64) api.Account {
	t.Helper()
	for _, a := range bank.Accounts() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("account %d not found", id)
	return api.Account{}
}

// A second tab in the same session must not change what an older form edits.
func TestConsole_SubmitUpdatesTheCustomerTheFormNames(t *testing.T) {
	marianela := url.Values{
		"nombre":         {"Marianela M."},
		"genero":         {"Femenino"},
		"edad":           {"29"},
		"identificacion": {"1723456789"},
		"estado":         {"on"},
	}

	t.Run("other edit tab", func(t *testing.T) {
		env := newTestEnv(t, false)
		b := env.browser(t)

		b.get("/clientes/2/editar")
		nonce, editID := b.nonce(), b.editID()
		b.get("/clientes/1/editar")
		require.Contains(t, b.page, "Editar cliente #1")

		form := url.Values{"nonce": {nonce}, "editId": {editID}}
		for k, v := range marianela {
			form[k] = v
		}
		b.post("/clientes", form)

		assert.Equal(t, "Marianela M.", customerByID(t, env.bank, 2).Nombre)
		jose := customerByID(t, env.bank, 1)
		assert.Equal(t, "Jose Lema", jose.Nombre)
		assert.Equal(t, "1712345678", jose.Identificacion)
		assert.Len(t, env.bank.Customers(), 3)
	})

	t.Run("other list tab", func(t *testing.T) {
		env := newTestEnv(t, false)
		b := env.browser(t)

		b.get("/clientes/2/editar")
		nonce, editID := b.nonce(), b.editID()
		b.get("/clientes")

		form := url.Values{"nonce": {nonce}, "editId": {editID}}
		for k, v := range marianela {
			form[k] = v
		}
		b.post("/clientes", form)

		assert.Equal(t, "Marianela M.", customerByID(t, env.bank, 2).Nombre)
		assert.Len(t, env.bank.Customers(), 3)
	})

	t.Run("create form while session edits", func(t *testing.T) {
		env := newTestEnv(t, false)
		b := env.browser(t)

		b.get("/clientes")
		nonce := b.nonce()
		require.Equal(t, "0", b.editID())
		b.get("/clientes/2/editar")

		b.post("/clientes", url.Values{
			"nonce":          {nonce},
			"editId":         {"0"},
			"nombre":         {"Nueva"},
			"identificacion": {"0999"},
		})

		assert.Equal(t, 1, countCustomers(env.bank, "Nueva"))
		assert.Equal(t, "Marianela Montalvo", customerByID(t, env.bank, 2).Nombre)
	})
}

func TestConsole_SubmitUpdatesTheAccountTheFormNames(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)

	b.get("/cuentas/1/editar")
	nonce, editID := b.nonce(), b.editID()
	require.Equal(t, "1", editID)
	b.get("/cuentas/3/editar")
	require.Contains(t, b.page, "Editar cuenta #3")

	b.post("/cuentas", url.Values{
		"nonce":        {nonce},
		"editId":       {editID},
		"numero":       {"478758"},
		"tipo":         {"Corriente"},
		"saldoInicial": {"2000"},
		"clienteId":    {"1"},
		"estado":       {"on"},
	})

	assert.Equal(t, "Corriente", accountByID(t, env.bank, 1).Tipo)
	other := accountByID(t, env.bank, 3)
	assert.Equal(t, "495878", other.Numero)
	assert.Equal(t, "Ahorro", other.Tipo)
	assert.Len(t, env.bank.Accounts(), 5)
}

func TestConsole_ResetLeavesEditMode(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)
	b.get("/clientes/1/editar")
	require.Contains(t, b.page, "Editar cliente #1")

	b.post("/clientes/reset", nil)
	assert.Contains(t, b.page, "Nuevo cliente")
}

func TestConsole_EditUnknownCustomerRedirects(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)

	resp := b.get("/clientes/999/editar")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/clientes", resp.Header.Get("Location"))
}

func TestConsole_DeleteCustomerConfirmation(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)

	_, err := env.bank.CreateCustomer(fakebank.CustomerInput{Nombre: "Temporal", Identificacion: "555"})
	require.NoError(t, err)
	var id string
	for _, c := range env.bank.Customers() {
		if c.Nombre == "Temporal" {
			id = strconv.FormatInt(c.ID, 10)
		}
	}

	b.get("/clientes/" + id + "/eliminar")
	assert.Contains(t, b.page, "¿Está seguro de eliminar?")
	assert.Contains(t, b.page, "Temporal (555)")

	b.post("/clientes/"+id+"/eliminar", url.Values{"confirmar": {"no"}})
	assert.Equal(t, 1, countCustomers(env.bank, "Temporal"))

	b.get("/clientes/" + id + "/eliminar")
	b.post("/clientes/"+id+"/eliminar", url.Values{"confirmar": {"si"}})
	assert.Zero(t, countCustomers(env.bank, "Temporal"))
	assert.NotContains(t, b.page, "Temporal")
}

func TestConsole_DeleteCustomerWithAccountsShowsConflict(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)

	b.get("/clientes/1/eliminar")
	b.post("/clientes/1/eliminar", url.Values{"confirmar": {"si"}})
	assert.Contains(t, b.page, "Conflicto con los datos")
	assert.Equal(t, 1, countCustomers(env.bank, "Jose Lema"))
}

func TestConsole_AccountsPage(t *testing.T) {
	env := newTestEnv(t, true)
	b := env.browser(t)

	b.get("/cuentas")
	assert.Contains(t, b.page, "478758")
	assert.Contains(t, b.page, "1425.00")
	assert.Contains(t, b.page, `<option value="1" >Jose Lema</option>`)

	b.post("/cuentas", url.Values{
		"numero":       {"900100"},
		"tipo":         {"Corriente"},
		"saldoInicial": {"250,50"},
		"clienteId":    {"3"},
		"estado":       {"on"},
	})
	assert.Contains(t, b.page, "900100")
	assert.Contains(t, b.page, "250.50")

	b.get("/cuentas/1/editar")
	assert.Contains(t, b.page, "Editar cuenta #1")
	assert.Contains(t, b.page, `<option value="1" selected>Jose Lema</option>`)

	entries, err := env.journal.ListAuditLog(context.Background(), store.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, store.AuditCreateAccount, entries[0].Action)
	assert.Equal(t, "250.5", entries[0].Detail["saldoInicial"])
}

func TestConsole_DepositAndWithdraw(t *testing.T) {
	env := newTestEnv(t, true)
	b := env.browser(t)

	b.get("/movimientos")
	assert.Contains(t, b.page, "retiro cajero")

	b.post("/movimientos/deposito", url.Values{"cuentaId": {"3"}, "monto": {"50"}, "ref": {"ref123"}})
	assert.Contains(t, b.page, "ref123")
	assert.NotContains(t, b.page, "class=\"error\"")

	b.post("/movimientos/retiro", url.Values{"cuentaId": {"3"}, "monto": {"100000"}, "ref": {"grande"}})
	assert.Contains(t, b.page, "Saldo no disponible.")

	entries, err := env.journal.ListAuditLog(context.Background(), store.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, store.AuditDeposit, entries[0].Action)
	assert.Equal(t, "3", entries[0].TargetID)
}

func TestConsole_IncompleteMovementIsIgnored(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)
	b.get("/movimientos")
	before := len(env.bank.Movements(0))

	b.post("/movimientos/deposito", url.Values{"cuentaId": {"3"}, "monto": {"abc"}})
	b.get("/movimientos")
	b.post("/movimientos/transferencia", url.Values{"origenId": {"1"}, "destinoId": {""}, "monto": {"5"}})

	assert.Len(t, env.bank.Movements(0), before)
	assert.NotContains(t, b.page, "class=\"error\"")
}

func TestConsole_Transfer(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)
	b.get("/movimientos")

	b.post("/movimientos/transferencia", url.Values{"origenId": {"1"}, "destinoId": {"3"}, "monto": {"25"}, "ref": {"alquiler"}})
	assert.Contains(t, b.page, "alquiler - debito")
	assert.Contains(t, b.page, "alquiler - credito")

	b.post("/movimientos/transferencia", url.Values{"origenId": {"1"}, "destinoId": {"1"}, "monto": {"25"}})
	assert.Contains(t, b.page, "La cuenta destino debe ser distinta a la de origen")
}

func TestConsole_ReportView(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)

	b.get("/reportes")
	assert.Contains(t, b.page, `value="2024-03-15"`)

	today := time.Now().UTC().Format("2006-01-02")
	b.post("/reportes/ver", url.Values{"clienteId": {"1"}, "desde": {"2000-01-01"}, "hasta": {today}})
	assert.Contains(t, b.page, "Jose Lema · 2000-01-01 a "+today)
	assert.Contains(t, b.page, "478758")
	assert.Contains(t, b.page, "Totales")
}

func TestConsole_ReportDownloadStreamsPDF(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)
	b.get("/reportes")

	resp := b.post("/reportes/descargar", url.Values{"clienteId": {"1"}, "desde": {"2024-03-01"}, "hasta": {"2024-03-31"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename=reporte-1-2024-03-01_a_2024-03-31.pdf`, resp.Header.Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF-"))
}

func TestConsole_ReportDownloadFailureRendersPage(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)
	b.get("/reportes")

	resp := b.post("/reportes/descargar", url.Values{"clienteId": {"99"}, "desde": {"2024-03-01"}, "hasta": {"2024-03-31"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
	assert.Contains(t, b.page, "Cliente 99 no existe")
}

func TestConsole_ReportWithoutCustomerDoesNothing(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)
	b.get("/reportes")

	resp := b.post("/reportes/descargar", url.Values{"clienteId": {"0"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
	assert.NotContains(t, b.page, "class=\"error\"")
}

func TestConsole_Help(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)

	resp := b.get("/ayuda")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, b.page, "<h1>Consola de banca</h1>")
	assert.Contains(t, b.page, "<h2>Movimientos</h2>")
}

func TestConsole_AuditPage(t *testing.T) {
	t.Run("disabled without journal", func(t *testing.T) {
		env := newTestEnv(t, false)
		b := env.browser(t)
		b.get("/auditoria")
		assert.Contains(t, b.page, "La auditoría está desactivada")
	})

	t.Run("lists and filters entries", func(t *testing.T) {
		env := newTestEnv(t, true)
		b := env.browser(t)
		b.get("/movimientos")
		b.post("/movimientos/deposito", url.Values{"cuentaId": {"3"}, "monto": {"10"}})
		b.post("/movimientos/retiro", url.Values{"cuentaId": {"3"}, "monto": {"5"}})

		b.get("/auditoria")
		assert.Contains(t, b.page, "deposit")
		assert.Contains(t, b.page, "withdraw")
		assert.Contains(t, b.page, "esta sesión")

		b.get("/auditoria?accion=withdraw")
		assert.Contains(t, b.page, "<td>withdraw</td>")
		assert.NotContains(t, b.page, "<td>deposit</td>")

		other := env.browser(t)
		other.get("/movimientos")
		other.get("/auditoria?sesion=propia")
		assert.Contains(t, other.page, "Sin registros")
	})
}

func TestConsole_SessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t, false)
	alice := env.browser(t)
	bob := env.browser(t)

	alice.get("/clientes/1/editar")
	require.Contains(t, alice.page, "Editar cliente #1")

	bob.get("/clientes")
	assert.Contains(t, bob.page, "Nuevo cliente")
	bob.post("/clientes", url.Values{"nombre": {"Bob"}, "identificacion": {"777"}, "estado": {"on"}})

	// Alice is still editing customer 1.
	alice.post("/clientes", url.Values{"editId": {alice.editID()}, "nombre": {"Jose Lema A."}, "identificacion": {"1712345678"}, "estado": {"on"}})
	assert.Equal(t, 1, countCustomers(env.bank, "Jose Lema A."))
	assert.Equal(t, 1, countCustomers(env.bank, "Bob"))
	assert.Len(t, env.bank.Customers(), 4)
}

func TestConsole_ServesStylesheet(t *testing.T) {
	env := newTestEnv(t, false)
	b := env.browser(t)

	b.get("/ayuda")
	m := regexp.MustCompile(`href="(/static/console\.css\?v=[0-9a-f]+)"`).FindStringSubmatch(b.page)
	require.NotNil(t, m, "pages link the versioned stylesheet")

	resp := b.get(m[1])
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/css; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "immutable")
}
