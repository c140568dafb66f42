package web

const baseCSS = `
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Space Grotesk", "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #f9fafb;
    }
    .card {
      max-width: 720px;
      margin: 0 auto;
      background: #ffffff;
      border: 1px solid #e5e7eb;
      border-radius: 8px;
      padding: 24px;
    }
    h1 { font-size: 20px; margin-top: 0; }
    .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .error {
      background: #fef2f2;
      border: 1px solid #fecaca;
      color: #991b1b;
      padding: 10px;
      border-radius: 6px;
      margin: 12px 0;
    }
    .error:empty { display: none; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td { padding: 8px; border-bottom: 1px solid #e5e7eb; text-align: left; }
    th { text-transform: uppercase; font-size: 11px; letter-spacing: 0.04em; color: #6b7280; }
    input, select, textarea {
      width: 100%;
      padding: 8px;
      border: 1px solid #d1d5db;
      border-radius: 6px;
      font: inherit;
    }
    button {
      padding: 10px 16px;
      border: none;
      border-radius: 6px;
      background: #111827;
      color: #ffffff;
      font: inherit;
      cursor: pointer;
    }
    button:disabled { opacity: 0.5; cursor: default; }
    button.ghost { background: #ffffff; color: #111827; border: 1px solid #d1d5db; }
    .badge {
      display: inline-block;
      padding: 2px 10px;
      border-radius: 999px;
      font-size: 12px;
    }
    .badge.pending { background: #fef9c3; color: #854d0e; }
    .badge.paid { background: #dcfce7; color: #166534; }
    .row { display: flex; gap: 12px; align-items: center; }
    .totals { display: flex; justify-content: flex-end; gap: 12px; font-size: 16px; margin: 12px 0; }
    .qr { text-align: center; margin: 16px 0; }
    .qr img { width: 256px; height: 256px; }
    .muted { color: #6b7280; font-size: 13px; }
    .mono { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 12px; word-break: break-all; }
`

const composeHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>New Invoice</title>
  <style>` + baseCSS + `</style>
</head>
<body>
  <div class="card">
    <h1>New Invoice</h1>
    <div id="error" class="error"></div>
    <form id="compose">
      <table>
        <thead>
          <tr><th>Description</th><th style="width:90px">Qty</th><th style="width:120px">Price</th><th style="width:40px"></th></tr>
        </thead>
        <tbody id="items"></tbody>
      </table>
      <p><button type="button" class="ghost" id="add-item">+ Add line item</button></p>
      <div class="totals"><span>Subtotal</span><strong id="subtotal">0.00</strong> <span>USDC</span></div>
      <p>
        <span class="label">Customer email (optional)</span>
        <input type="email" name="customerEmail" />
      </p>
      <p>
        <span class="label">Notes (optional)</span>
        <textarea name="notes" rows="2"></textarea>
      </p>
      <p>
        <span class="label">Network</span>
        <select name="network">
          {{range .Networks}}
          <option value="{{.}}" {{if eq . $.DefaultNetwork}}selected{{end}}>{{.}}</option>
          {{end}}
        </select>
      </p>
      <button type="submit" id="submit">Create invoice</button>
    </form>
  </div>
  <script>
    (function () {
      var itemsEl = document.getElementById('items');
      var errorEl = document.getElementById('error');
      var subtotalEl = document.getElementById('subtotal');
      var form = document.getElementById('compose');
      var submitBtn = document.getElementById('submit');
      var nextID = 1;

      function addRow() {
        var tr = document.createElement('tr');
        tr.dataset.id = String(nextID++);
        tr.innerHTML =
          '<td><input name="description" /></td>' +
          '<td><input name="quantity" type="number" min="0" step="1" value="1" /></td>' +
          '<td><input name="price" type="number" min="0" step="0.01" value="0" /></td>' +
          '<td><button type="button" class="ghost remove">&times;</button></td>';
        tr.querySelector('.remove').addEventListener('click', function () {
          tr.remove();
          updateSubtotal();
        });
        tr.addEventListener('input', updateSubtotal);
        itemsEl.appendChild(tr);
      }

      function collectItems() {
        return Array.prototype.map.call(itemsEl.children, function (tr) {
          return {
            description: tr.querySelector('[name=description]').value,
            quantity: parseFloat(tr.querySelector('[name=quantity]').value) || 0,
            price: parseFloat(tr.querySelector('[name=price]').value) || 0
          };
        });
      }

      function updateSubtotal() {
        var total = collectItems().reduce(function (sum, item) {
          return sum + item.quantity * item.price;
        }, 0);
        subtotalEl.textContent = total.toFixed(2);
      }

      form.addEventListener('submit', function (event) {
        event.preventDefault();
        errorEl.textContent = '';
        submitBtn.disabled = true;

        var draft = {
          items: collectItems(),
          customerEmail: form.customerEmail.value,
          notes: form.notes.value,
          network: form.network.value
        };

        fetch('/api/invoices/compose', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify(draft)
        }).then(function (resp) {
          return resp.json().then(function (data) {
            if (!resp.ok) { throw new Error(data.error || ('HTTP ' + resp.status)); }
            window.location.href = '/invoice/' + data.intentId;
          });
        }).catch(function (err) {
          errorEl.textContent = err.message;
          submitBtn.disabled = false;
        });
      });

      document.getElementById('add-item').addEventListener('click', addRow);
      addRow();
    })();
  </script>
</body>
</html>
`

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.ID}}</title>
  <style>` + baseCSS + `</style>
</head>
<body>
  <div class="card">
    {{if .Error}}
    <h1>Invoice</h1>
    <div class="error">{{.Error}}</div>
    <p><a href="/status">Look up another invoice</a></p>
    {{else}}
    <div class="row" style="justify-content: space-between">
      <h1>Invoice <span class="mono">{{.ID}}</span></h1>
      <span id="status-badge" class="badge {{if .Paid}}paid{{else}}pending{{end}}">{{if .Paid}}Paid{{else}}{{.Status}}{{end}}</span>
    </div>
    {{if .NetworkLabel}}<p class="muted">Network: {{.NetworkLabel}}</p>{{end}}
    <table>
      <tbody>
        <tr><td class="label">Amount</td><td>{{.AmountDisplay}} {{.Currency}}</td></tr>
        <tr><td class="label">Fees</td><td>{{.FeesDisplay}} {{.Currency}}</td></tr>
        <tr><td class="label">Merchant receives</td><td>{{.NetDisplay}} {{.Currency}}</td></tr>
      </tbody>
    </table>
    <div class="qr">
      {{if .QRDataURL}}
      <img src="{{.QRDataURL}}" alt="Payment QR code" />
      {{else}}
      <p class="muted">Generating QR code&hellip;</p>
      {{end}}
      <p class="mono">{{.PaymentURL}}</p>
      <p>
        <a href="{{.PaymentURL}}"><button type="button">Open payment page</button></a>
        <button type="button" class="ghost copy" data-copy="{{.PaymentURL}}">Copy link</button>
      </p>
    </div>
    <div id="receipt">
      {{if .Receipt}}
      <h1>Receipt</h1>
      <table>
        <tbody>
          {{if .Receipt.Memo}}<tr><td class="label">Memo</td><td>{{.Receipt.Memo}}</td></tr>{{end}}
          {{if .Receipt.URL}}<tr><td class="label">Receipt</td><td><a href="{{.Receipt.URL}}">{{.Receipt.URL}}</a></td></tr>{{end}}
          {{if .Receipt.Signature}}
          <tr><td class="label">Transaction</td><td>
            <span class="mono">{{.Receipt.Signature}}</span>
            <button type="button" class="ghost copy" data-copy="{{.Receipt.Signature}}">Copy</button>
            {{if .Receipt.ExplorerURL}}<a href="{{.Receipt.ExplorerURL}}">View on explorer</a>{{end}}
          </td></tr>
          {{end}}
        </tbody>
      </table>
      {{end}}
    </div>
    <div id="error" class="error"></div>
    {{end}}
  </div>
  <script>
    (function () {
      Array.prototype.forEach.call(document.querySelectorAll('.copy'), function (btn) {
        btn.addEventListener('click', function () {
          navigator.clipboard.writeText(btn.dataset.copy).then(function () {
            var original = btn.textContent;
            btn.textContent = 'Copied';
            setTimeout(function () { btn.textContent = original; }, 2000);
          });
        });
      });

      var badge = document.getElementById('status-badge');
      if (!badge || badge.classList.contains('paid')) { return; }

      var errorEl = document.getElementById('error');
      var timer = setInterval(function () {
        fetch('/api/invoices/' + {{.ID}}, { cache: 'no-store' })
          .then(function (resp) {
            return resp.json().then(function (data) {
              if (!resp.ok) { throw new Error(data.error || ('HTTP ' + resp.status)); }
              return data;
            });
          })
          .then(function (data) {
            if (data.paid) {
              clearInterval(timer);
              window.location.reload();
              return;
            }
            badge.textContent = data.intent.status;
          })
          .catch(function (err) {
            clearInterval(timer);
            errorEl.textContent = err.message;
          });
      }, 5000);

      window.addEventListener('beforeunload', function () { clearInterval(timer); });
    })();
  </script>
</body>
</html>
`

const lookupHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Find Invoice</title>
  <style>` + baseCSS + `</style>
</head>
<body>
  <div class="card">
    <h1>Find Invoice</h1>
    <div id="error" class="error">{{.Error}}</div>
    <form id="lookup">
      <p>
        <span class="label">Payment intent ID</span>
        <input name="id" placeholder="pi_..." autofocus />
      </p>
      <button type="submit" id="submit">Look up</button>
    </form>
  </div>
  <script>
    (function () {
      var form = document.getElementById('lookup');
      var errorEl = document.getElementById('error');
      var submitBtn = document.getElementById('submit');

      form.addEventListener('submit', function (event) {
        event.preventDefault();
        errorEl.textContent = '';
        var id = form.querySelector('[name=id]').value.trim();
        if (id.indexOf('pi_') !== 0) {
          errorEl.textContent = 'Invalid payment intent ID: must start with pi_';
          return;
        }
        submitBtn.disabled = true;

        fetch('/api/invoices/' + encodeURIComponent(id) + '/lookup', { method: 'POST' })
          .then(function (resp) {
            return resp.json().then(function (data) {
              if (!resp.ok) { throw new Error(data.error || ('HTTP ' + resp.status)); }
              window.location.href = '/invoice/' + id;
            });
          })
          .catch(function (err) {
            errorEl.textContent = err.message;
            submitBtn.disabled = false;
          });
      });
    })();
  </script>
</body>
</html>
`
