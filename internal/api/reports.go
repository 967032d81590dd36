// ABOUTME: Report endpoints of the banking API
// ABOUTME: Customer statements as structured JSON or as a binary PDF document

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// maxDocument caps the size of a downloaded report.
const maxDocument = 32 << 20

// ReportJSON fetches the statement for req as structured data.
func (c *Client) ReportJSON(ctx context.Context, req ReportRequest) (Report, error) {
	var out Report
	err := c.doJSON(ctx, request{method: http.MethodGet, path: "/reportes/json", query: reportQuery(req)}, &out)
	return out, err
}

// ReportPDF fetches the statement for req as a PDF document.
func (c *Client) ReportPDF(ctx context.Context, req ReportRequest) (Document, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/reportes/pdf",
		query:  reportQuery(req),
		accept: "application/pdf",
	})
	if err != nil {
		return Document{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocument))
	if err != nil {
		return Document{}, fmt.Errorf("reading report document: %w", err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/pdf"
	}
	return Document{ContentType: ct, Data: data}, nil
}

func reportQuery(req ReportRequest) url.Values {
	q := url.Values{}
	q.Set("clienteId", strconv.FormatInt(req.ClienteID, 10))
	q.Set("desde", req.Desde)
	q.Set("hasta", req.Hasta)
	return q
}
