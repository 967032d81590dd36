// Package webconsole serves the browser console for the banking API.
//
// Every page is server-rendered from html/template views and backed by the
// page controllers in internal/pages. A browser session owns one Workspace
// (the four controllers) so that edit mode and form state survive between
// requests. All writes are POSTs guarded by a double-submit CSRF cookie and a
// one-time form nonce; a replayed nonce re-renders the page instead of
// repeating the action.
//
// Routes:
//
//	GET  /                              redirect to /movimientos
//	GET  /clientes                      list and create form
//	POST /clientes                      create or update
//	GET  /clientes/{id}/editar          load a row into the form
//	POST /clientes/reset                leave edit mode
//	GET  /clientes/{id}/eliminar        confirmation page
//	POST /clientes/{id}/eliminar        delete when confirmar=si
//	     /cuentas/...                   same five routes for accounts
//	GET  /movimientos                   list and movement forms
//	POST /movimientos/deposito          deposit
//	POST /movimientos/retiro            withdrawal
//	POST /movimientos/transferencia     transfer
//	GET  /reportes                      report form
//	POST /reportes/ver                  show the report
//	POST /reportes/descargar            download the PDF
//	GET  /ayuda                         help
//	GET  /auditoria                     audit journal
//	GET  /static/...                    embedded stylesheet
//
// Any other path redirects to /movimientos.
package webconsole
