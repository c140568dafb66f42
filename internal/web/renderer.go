// Package web renders the compose, invoice and lookup pages.
package web

import (
	"bytes"
	"html/template"
)

type Renderer interface {
	RenderCompose(view ComposeView) (string, error)
	RenderInvoice(view InvoiceView) (string, error)
	RenderLookup(view LookupView) (string, error)
}

type HTMLRenderer struct {
	compose *template.Template
	invoice *template.Template
	lookup  *template.Template
}

func NewRenderer() Renderer {
	return &HTMLRenderer{
		compose: template.Must(template.New("compose").Parse(composeHTMLTemplate)),
		invoice: template.Must(template.New("invoice").Parse(invoiceHTMLTemplate)),
		lookup:  template.Must(template.New("lookup").Parse(lookupHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderCompose(view ComposeView) (string, error) {
	return execute(r.compose, view)
}

func (r *HTMLRenderer) RenderInvoice(view InvoiceView) (string, error) {
	return execute(r.invoice, view)
}

func (r *HTMLRenderer) RenderLookup(view LookupView) (string, error) {
	return execute(r.lookup, view)
}

func execute(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
