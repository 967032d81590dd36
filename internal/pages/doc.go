// Package pages holds the page controllers of the back-office console.
//
// # Overview
//
// There is one controller per page: Customers, Accounts, Movements and
// Reports. A controller owns the page's state (loaded rows, the form being
// edited, the edit target and the last error message) and turns user actions
// into calls on the banking API. Controllers never merge writes locally;
// after every successful write they reload the list from the server.
//
// # State
//
//   - Rows:   last list loaded from the server
//   - Err:    last error message, empty when there is none
//   - Form:   editable fields of the entity
//   - EditID: nil in create mode, the target id in update mode
//
// # Capabilities
//
// Interactive confirmation and saving a downloaded file are injected as
// Confirmer and FileSaver so controllers run the same way behind the web
// console, the terminal CLI and tests.
//
// # Concurrency
//
// Controllers are not safe for concurrent use. Callers that share one across
// goroutines must serialise access.
package pages
