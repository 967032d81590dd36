// ABOUTME: Maps console paths to pages
// ABOUTME: Four flat paths with Movements as both the default and the catch-all

package pages

import "strings"

// Page names a console page. The value doubles as its path segment.
type Page string

const (
	PageCustomers Page = "clientes"
	PageAccounts  Page = "cuentas"
	PageMovements Page = "movimientos"
	PageReports   Page = "reportes"
)

// DefaultPage is shown for "/" and for any unknown path.
const DefaultPage = PageMovements

// AllPages lists the pages in navigation order.
var AllPages = []Page{PageCustomers, PageAccounts, PageMovements, PageReports}

// Path returns the absolute console path of p.
func (p Page) Path() string {
	return "/" + string(p)
}

// Resolve returns the page for path, falling back to DefaultPage.
func Resolve(path string) (Page, bool) {
	seg := strings.Trim(path, "/")
	for _, p := range AllPages {
		if seg == string(p) {
			return p, true
		}
	}
	return DefaultPage, false
}
