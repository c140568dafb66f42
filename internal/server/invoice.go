package server

import (
	"io"
	"net/http"
	"strings"

	invoicedomain "github.com/benniethedev/invoice-gen/internal/invoice/domain"
	"github.com/benniethedev/invoice-gen/internal/web"
	"github.com/benniethedev/invoice-gen/internal/x402"
	"github.com/gin-gonic/gin"
)

// @Summary      Create Invoice
// @Description  Create a payment intent for an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoicedomain.CreateInvoiceRequest true "Create Invoice Request"
// @Success      200  {object}  x402.PaymentResult
// @Router       /create-invoice [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Compose Invoice
// @Description  Validate a draft invoice and create its payment intent
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoicedomain.Draft true "Invoice Draft"
// @Success      200  {object}  x402.PaymentResult
// @Router       /invoices/compose [post]
func (s *Server) ComposeInvoice(c *gin.Context) {
	var draft invoicedomain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Compose(c.Request.Context(), draft)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Get Invoice
// @Description  Re-read a payment intent and derive its display state
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Payment Intent ID"
// @Success      200  {object}  invoicedomain.InvoiceStatus
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	// The page poll loop depends on this surface never being cached.
	c.Header("Cache-Control", "no-store")

	resp, err := s.invoiceSvc.Status(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Look Up Invoice
// @Description  Validate an intent id and pre-check that it exists upstream
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Payment Intent ID"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id}/lookup [post]
func (s *Server) LookupInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.invoiceSvc.Lookup(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// WatchInvoice streams intent snapshots over server-sent events until the
// intent settles, a fetch fails, or the client disconnects. The underlying
// watcher owns the poll ticker and stops it on every exit path.
func (s *Server) WatchInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if !strings.HasPrefix(id, invoicedomain.IntentIDPrefix) {
		AbortWithError(c, invoicedomain.ErrInvalidIntentID)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Content-Type", "text/event-stream")

	snapshots := s.watcher.Watch(c.Request.Context(), id)
	c.Stream(func(w io.Writer) bool {
		snapshot, ok := <-snapshots
		if !ok {
			return false
		}
		if snapshot.Err != nil {
			_, message := statusForError(snapshot.Err)
			c.SSEvent("error", gin.H{"error": message})
			return false
		}
		c.SSEvent("snapshot", invoicedomain.DeriveStatus(snapshot.Intent))
		return !snapshot.Paid
	})
}

func (s *Server) ComposePage(c *gin.Context) {
	html, err := s.renderer.RenderCompose(web.ComposeView{
		DefaultNetwork: s.cfg.DefaultNetwork,
		Networks: []string{
			x402.NetworkSolanaDevnet.String(),
			x402.NetworkSolanaMainnet.String(),
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) InvoicePage(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	status, err := s.invoiceSvc.Status(c.Request.Context(), id)
	if err != nil {
		// No auto-retry: the page renders its error state and stays there.
		_, message := statusForError(err)
		s.renderInvoicePage(c, web.InvoiceView{ID: id, Error: message})
		return
	}

	view := web.InvoiceView{
		ID:            status.Intent.ID,
		Status:        status.Intent.Status,
		Paid:          status.Paid,
		AmountDisplay: status.AmountDisplay,
		FeesDisplay:   status.FeesDisplay,
		NetDisplay:    status.NetDisplay,
		Currency:      status.Intent.Currency,
		PaymentURL:    status.Intent.PaymentURL,
		NetworkLabel:  status.NetworkLabel,
		CustomerEmail: status.Intent.CustomerEmail,
	}
	// QR failures degrade to the generating placeholder; never an error page.
	if dataURL, qrErr := s.qr.DataURL(status.Intent.PaymentURL); qrErr == nil {
		view.QRDataURL = dataURL
	}
	if receipt := status.Intent.Receipt; receipt != nil {
		view.Receipt = &web.ReceiptView{
			URL:         receipt.URL,
			Memo:        receipt.Memo,
			ContentHash: receipt.ContentHash,
			Signature:   receipt.TransactionSignature,
			ExplorerURL: status.ExplorerURL,
		}
	}
	s.renderInvoicePage(c, view)
}

func (s *Server) renderInvoicePage(c *gin.Context, view web.InvoiceView) {
	html, err := s.renderer.RenderInvoice(view)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) LookupPage(c *gin.Context) {
	html, err := s.renderer.RenderLookup(web.LookupView{})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
