// ABOUTME: Per-session workspace holding the four page controllers
// ABOUTME: Adapts controller capabilities (confirm, save file) to HTTP requests

package webconsole

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"sync"

	"github.com/pvchallenge/banca-console/internal/pages"
)

// Workspace is the console state of one browser session. Controllers are
// only touched with mu held.
type Workspace struct {
	ID string

	mu      sync.Mutex
	client  BankAPI
	confirm *formConfirmer
	saver   *responseSaver

	Customers *pages.Customers
	Accounts  *pages.Accounts
	Movements *pages.Movements
	Reports   *pages.Reports
}

func newWorkspace(id string, client BankAPI) *Workspace {
	ws := &Workspace{
		ID:      id,
		client:  client,
		confirm: &formConfirmer{},
		saver:   &responseSaver{},
	}
	ws.Customers = pages.NewCustomers(client, ws.confirm)
	ws.Accounts = pages.NewAccounts(client, ws.confirm)
	ws.Movements = pages.NewMovements(client)
	ws.Reports = pages.NewReports(client, ws.saver)
	return ws
}

// formConfirmer answers a controller's confirmation with the choice the user
// already made on the confirmation page.
type formConfirmer struct {
	answer bool
	prompt string
}

func (f *formConfirmer) Confirm(_ context.Context, prompt string) bool {
	f.prompt = prompt
	answer := f.answer
	f.answer = false
	return answer
}

var errNoResponse = errors.New("no response to write the file to")

// responseSaver streams a saved file to the current HTTP response as an
// attachment.
type responseSaver struct {
	w       http.ResponseWriter
	written bool
}

// bind points the saver at w for the duration of one request.
func (s *responseSaver) bind(w http.ResponseWriter) {
	s.w = w
	s.written = false
}

func (s *responseSaver) release() {
	s.w = nil
}

func (s *responseSaver) Save(_ context.Context, name, contentType string, data []byte) error {
	if s.w == nil {
		return errNoResponse
	}
	if contentType == "" {
		contentType = "application/pdf"
	}

	h := s.w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	s.w.WriteHeader(http.StatusOK)
	s.written = true

	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
