package server

const uiStyles = `
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
    }
    .card { background: #fff; max-width: 1100px; margin: 0 auto; padding: 32px; border-radius: 4px; box-shadow: 0 2px 5px rgba(0,0,0,0.04); }
    nav a { margin-right: 16px; color: #635bff; }
    h1 { font-size: 24px; }
    .grid { display: grid; grid-template-columns: repeat(2, 1fr); gap: 16px; }
    .item { border: 1px solid #e3e8ee; border-radius: 4px; padding: 16px; margin-bottom: 16px; }
    label { display: block; font-weight: 600; margin-bottom: 4px; font-size: 13px; }
    input { width: 100%; padding: 8px; border: 1px solid #cfd7df; border-radius: 4px; }
    .field-error { color: #cd3d64; font-size: 12px; }
    .notice { padding: 12px; background: #e6f4ea; border-radius: 4px; margin-bottom: 16px; }
    .error { padding: 12px; background: #fdecef; border-radius: 4px; margin-bottom: 16px; }
    table { width: 100%; border-collapse: collapse; }
    th, td { text-align: left; padding: 8px; border-bottom: 1px solid #e3e8ee; font-size: 14px; }
    button { padding: 8px 16px; border-radius: 4px; border: 1px solid #635bff; background: #635bff; color: #fff; cursor: pointer; }
    button.secondary { background: #fff; color: #635bff; }
    form.inline { display: inline; }
`

const invoiceFormTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>{{.Styles}}</style>
</head>
<body>
<div class="card">
  <nav><a href="/invoice">Create Invoice</a><a href="/invoice/view">View Invoices</a></nav>
  <h1>{{.Title}}</h1>
  {{if .Notice}}<div class="notice" id="notice">{{.Notice}}</div>{{end}}
  {{if .Error}}<div class="error" id="error">{{.Error}}</div>{{end}}
  <form method="post" action="/invoice" id="invoice-form">
    <input type="hidden" name="invoiceId" value="{{.ID}}" />
    <input type="hidden" name="itemCount" value="{{len .Items}}" />
    <div class="grid">
      {{range .Header}}{{template "field" .}}{{end}}
    </div>
    <h2>Items</h2>
    {{range $i, $item := .Items}}
    <div class="item" data-index="{{$i}}">
      <h3>Item {{inc $i}}</h3>
      <div class="grid">
        {{range $item}}{{template "field" .}}{{end}}
      </div>
    </div>
    {{end}}
    <button type="submit" name="action" value="add_item" class="secondary" formnovalidate>Add Another Item</button>
    <button type="submit" name="action" value="submit">{{.Submit}}</button>
  </form>
  {{range .Lists}}
  <datalist id="{{.ID}}">{{range .Options}}<option value="{{.}}"></option>{{end}}</datalist>
  {{end}}
</div>
</body>
</html>
{{define "field"}}
<div>
  <label for="{{.Name}}">{{.Label}}</label>
  <input id="{{.Name}}" name="{{.Name}}" type="{{.Type}}" value="{{.Value}}"{{if .List}} list="{{.List}}"{{end}}{{if eq .Type "number"}} step="any"{{end}}{{if .Required}} required{{end}} />
  {{if .Error}}<div class="field-error" data-field="{{.Name}}">{{.Error}}</div>{{end}}
</div>
{{end}}`

const invoiceListTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoices</title>
  <style>{{.Styles}}</style>
</head>
<body>
<div class="card">
  <nav><a href="/invoice">Create Invoice</a><a href="/invoice/view">View Invoices</a><a href="/api/v1/exports/invoices.xlsx">Export XLSX</a></nav>
  <h1>Invoices</h1>
  {{if .Notice}}<div class="notice" id="notice">{{.Notice}}</div>{{end}}
  {{if .Error}}<div class="error" id="error">{{.Error}}</div>{{end}}
  <table id="invoices">
    <thead>
      <tr><th>Invoice Type</th><th>Invoice Date</th><th>Seller</th><th>Buyer</th><th>Reference No</th><th>Actions</th></tr>
    </thead>
    <tbody>
      {{range .Rows}}
      <tr data-id="{{.ID}}">
        <td>{{.InvoiceType}}</td>
        <td>{{.InvoiceDate}}</td>
        <td>{{.SellerBusinessName}}</td>
        <td>{{.BuyerBusinessName}}</td>
        <td>{{.InvoiceRefNo}}</td>
        <td>
          <a href="/invoice?invoiceId={{.ID}}">View</a>
          <a href="/api/v1/invoices/{{.ID}}/pdf">PDF</a>
          <form class="inline" method="post" action="/invoice/view/{{.ID}}/delete" onsubmit="return confirm('Are you sure you want to delete this invoice?');">
            <button type="submit" class="secondary">Delete</button>
          </form>
        </td>
      </tr>
      {{else}}
      <tr class="empty"><td colspan="6">No invoices found.</td></tr>
      {{end}}
    </tbody>
  </table>
</div>
</body>
</html>`
