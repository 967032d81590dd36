// ABOUTME: Reports page controller
// ABOUTME: Shows a customer statement as data or saves it as a PDF file

package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/pvchallenge/banca-console/internal/api"
)

// ReportAPI is the part of the API the reports page uses.
type ReportAPI interface {
	ListCustomers(ctx context.Context) ([]api.Customer, error)
	ReportJSON(ctx context.Context, req api.ReportRequest) (api.Report, error)
	ReportPDF(ctx context.Context, req api.ReportRequest) (api.Document, error)
}

// Fallback messages of the reports page.
const (
	ErrReport   = "Error al cargar reporte"
	ErrDownload = "Error al descargar reporte"
)

// isoDate is the layout of the report date range.
const isoDate = "2006-01-02"

// Reports is the controller of the reports page.
type Reports struct {
	api   ReportAPI
	saver FileSaver

	// Now supplies the current time for the default date range.
	Now func() time.Time

	Clientes  []api.Customer
	ClienteID int64
	Desde     string
	Hasta     string
	Data      *api.Report
	Err       string
}

// NewReports creates the controller with no customer selected.
func NewReports(client ReportAPI, saver FileSaver) *Reports {
	return &Reports{
		api:   client,
		saver: saver,
		Now:   time.Now,
	}
}

// Activate loads the customer selector and sets both ends of the range to
// today.
func (r *Reports) Activate(ctx context.Context) {
	clientes, err := r.api.ListCustomers(ctx)
	if err != nil {
		r.Err = api.Message(err, ErrLoadCustomers)
	} else {
		r.Clientes = clientes
	}

	today := r.Now().UTC().Format(isoDate)
	r.Desde = today
	r.Hasta = today
}

// Request returns the report scope currently selected.
func (r *Reports) Request() api.ReportRequest {
	return api.ReportRequest{ClienteID: r.ClienteID, Desde: r.Desde, Hasta: r.Hasta}
}

// Ver fetches the report as data into Data. Nothing happens without a
// selected customer.
func (r *Reports) Ver(ctx context.Context) {
	if r.ClienteID == 0 {
		return
	}
	report, err := r.api.ReportJSON(ctx, r.Request())
	if err != nil {
		r.Err = api.Message(err, ErrReport)
		return
	}
	r.Data = &report
	r.Err = ""
}

// Descargar fetches the PDF report and hands it to the FileSaver.
func (r *Reports) Descargar(ctx context.Context) {
	if r.ClienteID == 0 {
		return
	}
	doc, err := r.api.ReportPDF(ctx, r.Request())
	if err != nil {
		r.Err = api.Message(err, ErrDownload)
		return
	}
	if err := r.saver.Save(ctx, r.FileName(), doc.ContentType, doc.Data); err != nil {
		r.Err = ErrDownload
	}
}

// FileName is the download name for the current selection.
func (r *Reports) FileName() string {
	return fmt.Sprintf("reporte-%d-%s_a_%s.pdf", r.ClienteID, r.Desde, r.Hasta)
}
