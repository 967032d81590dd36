// ABOUTME: Web console wiring: routes, session workspaces, CSRF and replay protection
// ABOUTME: Serves the four banking pages plus help and the audit journal

package webconsole

import (
	"crypto/rand"
	"encoding/hex"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pvchallenge/banca-console/internal/assets"
	"github.com/pvchallenge/banca-console/internal/pages"
	"github.com/pvchallenge/banca-console/internal/session"
	"github.com/pvchallenge/banca-console/internal/store"
)

const (
	// SessionCookieName identifies the browser's workspace
	SessionCookieName = "banca_session"

	// CSRFCookieName is the name of the CSRF token cookie
	CSRFCookieName = "banca_csrf"

	// nonceTTL bounds how long a spent form nonce is remembered
	nonceTTL = 24 * time.Hour

	// maxNonces bounds the number of remembered form nonces
	maxNonces = 100_000
)

// BankAPI is everything the console needs from the banking API.
type BankAPI interface {
	pages.CustomerAPI
	pages.AccountAPI
	pages.MovementAPI
	pages.ReportAPI
}

// Config holds console settings
type Config struct {
	// SessionTTL is how long an idle workspace is kept
	SessionTTL time.Duration
	// MaxSessions caps the number of workspaces kept in memory
	MaxSessions int
}

// Console handles the web console routes
type Console struct {
	client     BankAPI
	journal    store.Journal
	workspaces *session.Cache[*Workspace]
	nonces     *session.Cache[struct{}]
	views      map[string]*template.Template
	help       template.HTML
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a console backed by client. journal may be nil, which
// disables auditing.
func New(client BankAPI, journal store.Journal, cfg Config) *Console {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1000
	}

	c := &Console{
		client:     client,
		journal:    journal,
		workspaces: session.New[*Workspace](cfg.SessionTTL, cfg.MaxSessions),
		nonces:     session.New[struct{}](nonceTTL, maxNonces),
		views:      parseViews(),
		logger:     slog.Default().With("component", "console"),
		now:        time.Now,
	}
	c.help = renderHelp(c.logger)
	return c
}

// Close stops the background sweepers of the session caches
func (c *Console) Close() {
	c.workspaces.Close()
	c.nonces.Close()
}

// RegisterRoutes registers all console routes on the given mux
func (c *Console) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.redirectHome)
	mux.Handle("GET "+assets.Prefix, http.StripPrefix(strings.TrimSuffix(assets.Prefix, "/"), assets.FileServer()))

	mux.HandleFunc("GET /clientes", c.handleCustomers)
	mux.HandleFunc("POST /clientes", c.handleCustomerSubmit)
	mux.HandleFunc("GET /clientes/{id}/editar", c.handleCustomerEdit)
	mux.HandleFunc("POST /clientes/reset", c.handleCustomerReset)
	mux.HandleFunc("GET /clientes/{id}/eliminar", c.handleCustomerDeletePage)
	mux.HandleFunc("POST /clientes/{id}/eliminar", c.handleCustomerDelete)

	mux.HandleFunc("GET /cuentas", c.handleAccounts)
	mux.HandleFunc("POST /cuentas", c.handleAccountSubmit)
	mux.HandleFunc("GET /cuentas/{id}/editar", c.handleAccountEdit)
	mux.HandleFunc("POST /cuentas/reset", c.handleAccountReset)
	mux.HandleFunc("GET /cuentas/{id}/eliminar", c.handleAccountDeletePage)
	mux.HandleFunc("POST /cuentas/{id}/eliminar", c.handleAccountDelete)

	mux.HandleFunc("GET /movimientos", c.handleMovements)
	mux.HandleFunc("POST /movimientos/deposito", c.handleDeposit)
	mux.HandleFunc("POST /movimientos/retiro", c.handleWithdraw)
	mux.HandleFunc("POST /movimientos/transferencia", c.handleTransfer)

	mux.HandleFunc("GET /reportes", c.handleReports)
	mux.HandleFunc("POST /reportes/ver", c.handleReportView)
	mux.HandleFunc("POST /reportes/descargar", c.handleReportDownload)

	mux.HandleFunc("GET /ayuda", c.handleHelp)
	mux.HandleFunc("GET /auditoria", c.handleAudit)

	mux.HandleFunc("/", c.redirectHome)
}

// redirectHome sends "/" and unknown paths to the page they resolve to,
// which is the default page for anything unknown.
func (c *Console) redirectHome(w http.ResponseWriter, r *http.Request) {
	page, _ := pages.Resolve(r.URL.Path)
	http.Redirect(w, r, page.Path(), http.StatusSeeOther)
}

// workspace returns the caller's workspace, starting a session if the
// browser has none or its workspace expired.
func (c *Console) workspace(w http.ResponseWriter, r *http.Request) *Workspace {
	id := ""
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		id = cookie.Value
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
	}

	ws, created := c.workspaces.GetOrCreate(id, func() *Workspace {
		return newWorkspace(id, c.auditing(id))
	})
	if created {
		c.logger.Debug("workspace created", "session", id)
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return ws
}

// auditing wraps the API client so that writes of session id are journaled.
func (c *Console) auditing(id string) BankAPI {
	if c.journal == nil {
		return c.client
	}
	return &auditedAPI{BankAPI: c.client, journal: c.journal, sessionID: id, logger: c.logger}
}

// ensureCSRFToken returns the request's CSRF token, issuing a new cookie if
// the browser has none.
func (c *Console) ensureCSRFToken(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CSRFCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token, err := generateSecureToken(32)
	if err != nil {
		c.logger.Error("failed to generate CSRF token", "error", err)
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
	return token
}

// validateCSRF checks the CSRF token from form against cookie
func (c *Console) validateCSRF(r *http.Request) bool {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	formToken := r.FormValue("csrf_token")
	if formToken == "" {
		formToken = r.Header.Get("X-CSRF-Token")
	}

	return formToken != "" && formToken == cookie.Value
}

// beginPost parses and authenticates a form POST. It returns ok=false after
// writing an error response. fresh is false when the form's nonce was
// already used, in which case the caller must render without acting.
func (c *Console) beginPost(w http.ResponseWriter, r *http.Request, ws *Workspace) (fresh, ok bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return false, false
	}
	if !c.validateCSRF(r) {
		c.logger.Warn("rejected POST with invalid CSRF token", "path", r.URL.Path)
		http.Error(w, "Invalid request, please reload the page", http.StatusForbidden)
		return false, false
	}

	nonce := r.PostFormValue("nonce")
	if nonce == "" {
		http.Error(w, "Invalid request, please reload the page", http.StatusBadRequest)
		return false, false
	}
	if c.nonces.CheckAndMark(ws.ID + ":" + nonce) {
		c.logger.Info("ignoring replayed form", "path", r.URL.Path, "session", ws.ID)
		return false, true
	}
	return true, true
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
