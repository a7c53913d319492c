package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

// invoiceTemplate renders the printable invoice page. It is a
// self-contained document so the client can hand it straight to the
// browser's print dialog.
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Bill.ID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #111; }
h1 { font-size: 1.4rem; border-bottom: 2px solid #111; padding-bottom: .5rem; }
table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
th, td { text-align: left; padding: .4rem .6rem; border-bottom: 1px solid #ccc; }
td.cost, th.cost { text-align: right; }
.meta { margin-top: 1rem; }
.meta dt { font-weight: bold; float: left; clear: left; width: 8rem; }
.total { margin-top: 1rem; font-size: 1.1rem; font-weight: bold; text-align: right; }
.notes { margin-top: 1.5rem; font-style: italic; }
</style>
</head>
<body>
<h1>Invoice</h1>
<dl class="meta">
<dt>Date</dt><dd>{{.Bill.Date}}</dd>
<dt>Client</dt><dd>{{.Bill.Client}}</dd>
<dt>Vehicle</dt><dd>{{.Bill.VehicleName}} ({{.Bill.VehicleCustomID}})</dd>
<dt>Type</dt><dd>{{.Bill.VehicleType}}</dd>
<dt>Driver</dt><dd>{{.Bill.VehicleDriver}}</dd>
</dl>
<table>
<tr><th>Service</th><th class="cost">Cost</th></tr>
{{range .Bill.Services}}<tr><td>{{.Name}}</td><td class="cost">{{printf "%.2f" .Cost}} {{$.Bill.Currency}}</td></tr>
{{end}}{{if .Bill.Additional}}<tr><td>Additional</td><td class="cost">{{printf "%.2f" .Bill.Additional}} {{.Bill.Currency}}</td></tr>
{{end}}</table>
<p class="total">Total: {{printf "%.2f" .Bill.Total}} {{.Bill.Currency}}</p>
{{if .Bill.Notes}}<p class="notes">{{.Bill.Notes}}</p>{{end}}
</body>
</html>
`

// ExportService renders resolved bills as printable HTML documents.
type ExportService struct {
	ws  *WorkspaceService
	tpl *template.Template
}

// NewExportService creates a new export service
func NewExportService(ws *WorkspaceService) *ExportService {
	return &ExportService{
		ws:  ws,
		tpl: template.Must(template.New("invoice").Parse(invoiceTemplate)),
	}
}

// RenderBill resolves a bill and renders it as a printable HTML page.
func (s *ExportService) RenderBill(ctx context.Context, sess domain.Session, billID string) ([]byte, error) {
	resolved, err := s.ws.ResolveBill(ctx, sess, billID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.tpl.Execute(&buf, struct {
		Bill *domain.ResolvedBill
	}{Bill: resolved}); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", billID, err)
	}
	return buf.Bytes(), nil
}
