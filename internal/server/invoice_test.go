package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benniethedev/invoice-gen/internal/config"
	invoicedomain "github.com/benniethedev/invoice-gen/internal/invoice/domain"
	"github.com/benniethedev/invoice-gen/internal/invoice/watch"
	"github.com/benniethedev/invoice-gen/internal/qr"
	"github.com/benniethedev/invoice-gen/internal/web"
	"github.com/benniethedev/invoice-gen/internal/x402"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeService struct {
	createResult  *x402.PaymentResult
	createErr     error
	composeResult *x402.PaymentResult
	composeErr    error
	statusResult  *invoicedomain.InvoiceStatus
	statusErr     error
	lookupErr     error

	lookupCalls []string
}

func (f *fakeService) Create(context.Context, invoicedomain.CreateInvoiceRequest) (*x402.PaymentResult, error) {
	return f.createResult, f.createErr
}

func (f *fakeService) Compose(context.Context, invoicedomain.Draft) (*x402.PaymentResult, error) {
	return f.composeResult, f.composeErr
}

func (f *fakeService) Status(context.Context, string) (*invoicedomain.InvoiceStatus, error) {
	return f.statusResult, f.statusErr
}

func (f *fakeService) Lookup(_ context.Context, id string) error {
	f.lookupCalls = append(f.lookupCalls, id)
	return f.lookupErr
}

type staticIntentClient struct {
	intent *x402.PaymentIntent
	err    error
}

func (s *staticIntentClient) CreatePaymentIntent(context.Context, x402.CreateIntentParams) (*x402.PaymentResult, error) {
	return nil, s.err
}

func (s *staticIntentClient) GetPaymentIntent(context.Context, string) (*x402.PaymentIntent, error) {
	return s.intent, s.err
}

func (s *staticIntentClient) DefaultNetwork() x402.Network { return x402.NetworkSolanaDevnet }

func newTestServer(t *testing.T, svc invoicedomain.Service) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	watcher := watch.NewWatcher(watch.Params{
		Log:    log,
		Client: &staticIntentClient{intent: &x402.PaymentIntent{ID: "pi_1", Status: "succeeded"}},
		Config: watch.Config{PollInterval: time.Millisecond},
	})

	s := NewServer(Params{
		Cfg:        config.Config{DefaultNetwork: "solana:devnet"},
		Log:        log,
		InvoiceSvc: svc,
		Watcher:    watcher,
		QR:         qr.NewGenerator(log),
		Renderer:   web.NewRenderer(),
	})

	engine := gin.New()
	s.RegisterRoutes(engine)
	return s, engine
}

// closeNotifyRecorder adds the http.CloseNotifier method gin's Stream
// helper requires, which httptest.ResponseRecorder does not implement.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (c *closeNotifyRecorder) CloseNotify() <-chan bool { return c.closed }

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := &closeNotifyRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool)}
	engine.ServeHTTP(rec, req)
	return rec.ResponseRecorder
}

func TestCreateInvoiceProxiesResult(t *testing.T) {
	svc := &fakeService{createResult: &x402.PaymentResult{
		IntentID:   "pi_123",
		PaymentURL: "https://pay.example/pay/pi_123",
		Status:     "pending",
	}}
	_, engine := newTestServer(t, svc)

	rec := doRequest(engine, http.MethodPost, "/api/create-invoice", `{"amount":1000000,"asset":"USDC"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"intentId":"pi_123"`) {
		t.Fatalf("expected intentId in body, got %s", rec.Body.String())
	}
}

func TestCreateInvoiceRejectsMalformedJSON(t *testing.T) {
	_, engine := newTestServer(t, &fakeService{})

	rec := doRequest(engine, http.MethodPost, "/api/create-invoice", `{"amount":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid request body") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCreateInvoiceMapsValidationErrors(t *testing.T) {
	svc := &fakeService{createErr: invoicedomain.ErrInvalidAmount}
	_, engine := newTestServer(t, svc)

	rec := doRequest(engine, http.MethodPost, "/api/create-invoice", `{"amount":0,"asset":"USDC"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "amount must be greater than 0") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCreateInvoiceSurfacesUpstreamMessage(t *testing.T) {
	svc := &fakeService{createErr: &x402.UpstreamError{StatusCode: 422, Message: "amount below minimum"}}
	_, engine := newTestServer(t, svc)

	rec := doRequest(engine, http.MethodPost, "/api/create-invoice", `{"amount":1,"asset":"USDC"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "amount below minimum") {
		t.Fatalf("expected upstream message passed through, got %s", rec.Body.String())
	}
}

func TestCreateInvoiceRateLimited(t *testing.T) {
	svc := &fakeService{createResult: &x402.PaymentResult{IntentID: "pi_1"}}
	s, engine := newTestServer(t, svc)
	s.limiter = newRateLimiter(1, time.Minute)

	first := doRequest(engine, http.MethodPost, "/api/create-invoice", `{"amount":1000000,"asset":"USDC"}`)
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}
	second := doRequest(engine, http.MethodPost, "/api/create-invoice", `{"amount":1000000,"asset":"USDC"}`)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}

func TestComposeInvoiceMapsDraftErrors(t *testing.T) {
	svc := &fakeService{composeErr: invoicedomain.ErrNoLineItems}
	_, engine := newTestServer(t, svc)

	rec := doRequest(engine, http.MethodPost, "/api/invoices/compose", `{"items":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "add at least one line item") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestGetInvoiceSetsNoStore(t *testing.T) {
	svc := &fakeService{statusResult: &invoicedomain.InvoiceStatus{
		Intent:        &x402.PaymentIntent{ID: "pi_1", Status: "pending", Currency: "USDC"},
		AmountDisplay: "2.50",
	}}
	_, engine := newTestServer(t, svc)

	rec := doRequest(engine, http.MethodGet, "/api/invoices/pi_1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected no-store, got %q", got)
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc := &fakeService{statusErr: invoicedomain.ErrIntentNotFound}
	_, engine := newTestServer(t, svc)

	rec := doRequest(engine, http.MethodGet, "/api/invoices/pi_missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invoice not found") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestLookupInvoiceEchoesID(t *testing.T) {
	svc := &fakeService{}
	_, engine := newTestServer(t, svc)

	rec := doRequest(engine, http.MethodPost, "/api/invoices/pi_1/lookup", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"pi_1"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if len(svc.lookupCalls) != 1 || svc.lookupCalls[0] != "pi_1" {
		t.Fatalf("unexpected lookup calls %v", svc.lookupCalls)
	}
}

func TestLookupInvoiceRejectsMalformedID(t *testing.T) {
	svc := &fakeService{lookupErr: invoicedomain.ErrInvalidIntentID}
	_, engine := newTestServer(t, svc)

	rec := doRequest(engine, http.MethodPost, "/api/invoices/abc/lookup", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "must start with pi_") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestWatchInvoiceRejectsMalformedIDBeforeStreaming(t *testing.T) {
	_, engine := newTestServer(t, &fakeService{})

	rec := doRequest(engine, http.MethodGet, "/api/invoices/abc/events", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWatchInvoiceStreamsUntilPaid(t *testing.T) {
	_, engine := newTestServer(t, &fakeService{})

	rec := doRequest(engine, http.MethodGet, "/api/invoices/pi_1/events", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/event-stream") {
		t.Fatalf("expected SSE content type, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "snapshot") {
		t.Fatalf("expected snapshot event, got %s", rec.Body.String())
	}
}

func TestComposePageRenders(t *testing.T) {
	_, engine := newTestServer(t, &fakeService{})

	rec := doRequest(engine, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "solana:devnet") {
		t.Fatal("expected default network on compose page")
	}
}

func TestInvoicePageRendersErrorState(t *testing.T) {
	svc := &fakeService{statusErr: invoicedomain.ErrIntentNotFound}
	_, engine := newTestServer(t, svc)

	rec := doRequest(engine, http.MethodGet, "/invoice/pi_missing", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("error state still renders the page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invoice not found") {
		t.Fatal("expected error message on invoice page")
	}
}

func TestInvoicePageRendersPaidReceipt(t *testing.T) {
	svc := &fakeService{statusResult: &invoicedomain.InvoiceStatus{
		Intent: &x402.PaymentIntent{
			ID:         "pi_1",
			Status:     "succeeded",
			Currency:   "USDC",
			PaymentURL: "https://pay.example/pay/pi_1",
			Receipt:    &x402.Receipt{TransactionSignature: "5Sig"},
		},
		Paid:          true,
		AmountDisplay: "2.50",
		ExplorerURL:   "https://explorer.solana.com/tx/5Sig?cluster=devnet",
	}}
	_, engine := newTestServer(t, svc)

	rec := doRequest(engine, http.MethodGet, "/invoice/pi_1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "explorer.solana.com") {
		t.Fatal("expected explorer link on paid page")
	}
	if !strings.Contains(body, "data:image/png;base64,") {
		t.Fatal("expected QR image on page")
	}
}

func TestLookupPageRenders(t *testing.T) {
	_, engine := newTestServer(t, &fakeService{})

	rec := doRequest(engine, http.MethodGet, "/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	_, engine := newTestServer(t, &fakeService{})

	rec := doRequest(engine, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
