// internal/pkg/pdf/template.go
package pdf

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
            font-size: 13px;
        }
        .header {
            display: flex;
            justify-content: space-between;
            border-bottom: 2px solid #333;
            padding-bottom: 15px;
            margin-bottom: 25px;
        }
        .header h1 {
            margin: 0;
            font-size: 26px;
        }
        .meta {
            text-align: right;
        }
        .addresses {
            margin-bottom: 25px;
        }
        .addresses h3 {
            margin-bottom: 5px;
            font-size: 14px;
        }
        table.items {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 25px;
        }
        table.items th {
            background: #f4f4f4;
            text-align: left;
            padding: 8px;
            border-bottom: 2px solid #ddd;
        }
        table.items td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .num {
            text-align: right;
        }
        table.totals {
            width: 280px;
            margin-left: auto;
            border-collapse: collapse;
        }
        table.totals td {
            padding: 5px 8px;
        }
        table.totals tr.grand td {
            border-top: 2px solid #333;
            font-weight: bold;
            font-size: 15px;
        }
        .footer {
            margin-top: 40px;
            text-align: center;
            color: #888;
            font-size: 11px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.SiteName}}</h1>
            <p>{{.SiteURL}}</p>
        </div>
        <div class="meta">
            <h2>Invoice {{.InvoiceNumber}}</h2>
            <p>Date: {{.InvoiceDate}}</p>
            {{if .PaidAt}}<p>Paid: {{.PaidAt}}</p>{{end}}
            <p>Payment method: {{.PaymentMethod}}</p>
        </div>
    </div>

    <div class="addresses">
        <h3>Bill To</h3>
        <p>
            {{.BuyerName}}<br>
            {{.StreetAddress}}<br>
            {{.City}}, {{.PostalCode}}<br>
            {{.Country}}
        </p>
    </div>

    <table class="items">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Unit Price</th>
                <th class="num">Subtotal</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td>{{.Name}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">${{.Price}}</td>
                <td class="num">${{.Subtotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <table class="totals">
        <tr><td>Items</td><td class="num">${{.ItemsPrice}}</td></tr>
        <tr><td>Shipping</td><td class="num">${{.ShippingPrice}}</td></tr>
        <tr><td>Tax</td><td class="num">${{.TaxPrice}}</td></tr>
        <tr class="grand"><td>Total</td><td class="num">${{.TotalPrice}}</td></tr>
    </table>

    <div class="footer">
        <p>Thank you for shopping with {{.SiteName}}.</p>
    </div>
</body>
</html>
`
