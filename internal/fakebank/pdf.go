// ABOUTME: Minimal PDF writer for account statements
// ABOUTME: Landscape A4 pages of Helvetica text with a table of report lines and totals

package fakebank

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pvchallenge/banca-console/internal/api"
)

const (
	pageWidth    = 842
	pageHeight   = 595
	margin       = 36
	lineHeight   = 14
	rowsPerPage  = 30
	fontSize     = 9
	titleSize    = 16
	firstRowY    = pageHeight - margin - 70
	contentWidth = pageWidth - 2*margin
)

// columns holds the table headers and their relative widths.
var columns = []struct {
	title string
	width float64
}{
	{"Fecha", 16},
	{"Cliente", 18},
	{"Nro. Cuenta", 12},
	{"Tipo", 12},
	{"Saldo Inicial", 12},
	{"Estado", 10},
	{"Movimiento", 12},
	{"Saldo Disp.", 12},
}

// RenderPDF renders r as a PDF statement.
func RenderPDF(r api.Report) []byte {
	var pages []string
	rows := r.Items
	for first := true; first || len(rows) > 0; first = false {
		n := min(rowsPerPage, len(rows))
		last := n == len(rows)
		pages = append(pages, pageContent(r, rows[:n], first, last))
		rows = rows[n:]
	}
	return assemble(pages)
}

func pageContent(r api.Report, rows []api.ReportLine, first, last bool) string {
	var sb strings.Builder

	y := pageHeight - margin - titleSize
	if first {
		text(&sb, "F2", titleSize, pageWidth/2-70, float64(y), "Estado de Cuenta")
		header := fmt.Sprintf("Cliente: %s (ID: %d)  |  Rango: %s a %s", r.ClienteNombre, r.ClienteID, r.Desde, r.Hasta)
		text(&sb, "F1", 10, margin, float64(y-24), header)
	}

	y = firstRowY
	x := float64(margin)
	for _, col := range columns {
		text(&sb, "F2", fontSize, x, float64(y), col.title)
		x += col.width / 100 * contentWidth
	}

	for _, it := range rows {
		y -= lineHeight
		cells := []string{
			it.Fecha,
			it.Cliente,
			it.NumeroCuenta,
			it.TipoCuenta,
			it.SaldoInicial.String(),
			fmt.Sprintf("%t", it.Estado),
			it.Movimiento.String(),
			it.SaldoDisponible.String(),
		}
		x = margin
		for i, cell := range cells {
			text(&sb, "F1", fontSize, x, float64(y), cell)
			x += columns[i].width / 100 * contentWidth
		}
	}

	if last {
		y -= 2 * lineHeight
		text(&sb, "F2", 12, margin, float64(y), "Totales:")
		text(&sb, "F1", 10, margin, float64(y-lineHeight), "Créditos: "+r.TotalCreditos.String())
		text(&sb, "F1", 10, margin, float64(y-2*lineHeight), "Débitos: "+r.TotalDebitos.String())
	}
	return sb.String()
}

func text(sb *strings.Builder, font string, size int, x, y float64, s string) {
	fmt.Fprintf(sb, "BT /%s %d Tf %.2f %.2f Td (%s) Tj ET\n", font, size, x, y, escape(s))
}

// escape encodes s as a PDF literal string body in WinAnsi encoding.
// Runes outside Latin-1 become '?'.
func escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '(' || r == ')' || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r < 0x20:
			sb.WriteByte(' ')
		case r < 0x80:
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&sb, "\\%03o", r)
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// assemble writes the object graph, cross-reference table and trailer.
func assemble(contents []string) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	// 1 catalog, 2 pages, 3-4 fonts, then a page and its content per page.
	const firstPageObj = 5
	kids := make([]string, len(contents))
	for i := range contents {
		kids[i] = fmt.Sprintf("%d 0 R", firstPageObj+2*i)
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(contents)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>")

	for i, content := range contents {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] "+
			"/Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>",
			pageWidth, pageHeight, firstPageObj+2*i+1))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}
