package service

import (
	"context"
	"errors"
	"testing"
	"time"

	invoicedomain "github.com/benniethedev/invoice-gen/internal/invoice/domain"
	"github.com/benniethedev/invoice-gen/internal/x402"
	"go.uber.org/zap"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeClient struct {
	createCalls []x402.CreateIntentParams
	getCalls    []string

	createResult *x402.PaymentResult
	createErr    error
	getResult    *x402.PaymentIntent
	getErr       error
}

func (f *fakeClient) CreatePaymentIntent(_ context.Context, params x402.CreateIntentParams) (*x402.PaymentResult, error) {
	f.createCalls = append(f.createCalls, params)
	return f.createResult, f.createErr
}

func (f *fakeClient) GetPaymentIntent(_ context.Context, id string) (*x402.PaymentIntent, error) {
	f.getCalls = append(f.getCalls, id)
	return f.getResult, f.getErr
}

func (f *fakeClient) DefaultNetwork() x402.Network { return x402.NetworkSolanaDevnet }

func newTestService(client *fakeClient) invoicedomain.Service {
	return NewService(Params{
		Log:    zap.NewNop(),
		Clock:  fixedClock{now: time.UnixMilli(1_700_000_000_000).UTC()},
		Client: client,
	})
}

func TestCreateValidatesAmountAndAsset(t *testing.T) {
	svc := newTestService(&fakeClient{})

	_, err := svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{Amount: 0, Asset: "USDC"})
	if err != invoicedomain.ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	_, err = svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{Amount: 100, Asset: "  "})
	if err != invoicedomain.ErrMissingAsset {
		t.Fatalf("expected ErrMissingAsset, got %v", err)
	}
}

func TestCreateRejectsUnknownNetwork(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client)

	_, err := svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{
		Amount:  100,
		Asset:   "USDC",
		Network: "solana:testnet",
	})
	if err != invoicedomain.ErrInvalidNetwork {
		t.Fatalf("expected ErrInvalidNetwork, got %v", err)
	}
	if len(client.createCalls) != 0 {
		t.Fatalf("expected no upstream call, got %d", len(client.createCalls))
	}
}

func TestCreateDefaultsNetworkWhenOmitted(t *testing.T) {
	client := &fakeClient{createResult: &x402.PaymentResult{IntentID: "pi_1"}}
	svc := newTestService(client)

	_, err := svc.Create(context.Background(), invoicedomain.CreateInvoiceRequest{
		Amount: 1_000_000,
		Asset:  "USDC",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.createCalls) != 1 {
		t.Fatalf("expected one upstream call, got %d", len(client.createCalls))
	}
	if client.createCalls[0].Network != x402.NetworkSolanaDevnet {
		t.Fatalf("expected default network, got %q", client.createCalls[0].Network)
	}
}

func TestComposeConvertsSubtotalToMicroUnits(t *testing.T) {
	client := &fakeClient{createResult: &x402.PaymentResult{IntentID: "pi_1"}}
	svc := newTestService(client)

	_, err := svc.Compose(context.Background(), invoicedomain.Draft{
		Items: []invoicedomain.LineItem{
			{Description: "design", Quantity: 2, Price: 1.2},
			{Description: "", Quantity: 5, Price: 100},
			{Description: "hosting", Quantity: 1, Price: 0.1},
		},
		Notes: "net 30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2*1.2 + 5*100 + 1*0.1 over every row; metadata keeps the described two.
	params := client.createCalls[0]
	if params.Amount != 502_500_000 {
		t.Fatalf("expected 502500000 microunits, got %d", params.Amount)
	}
	if params.Metadata == nil || len(params.Metadata.LineItems) != 2 {
		t.Fatalf("expected filtered metadata line items, got %+v", params.Metadata)
	}
	if params.Metadata.InvoiceNumber != "INV-1700000000000" {
		t.Fatalf("unexpected invoice number %q", params.Metadata.InvoiceNumber)
	}
}

func TestComposeChargesFullSubtotal(t *testing.T) {
	client := &fakeClient{createResult: &x402.PaymentResult{IntentID: "pi_1"}}
	svc := newTestService(client)

	_, err := svc.Compose(context.Background(), invoicedomain.Draft{
		Items: []invoicedomain.LineItem{
			{Description: "consulting", Quantity: 0, Price: 0},
			{Description: "", Quantity: 1, Price: 5},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := client.createCalls[0]
	if params.Amount != 5_000_000 {
		t.Fatalf("expected undescribed row charged, got %d", params.Amount)
	}
	if len(params.Metadata.LineItems) != 1 {
		t.Fatalf("expected only described rows in metadata, got %d", len(params.Metadata.LineItems))
	}
}

func TestComposeFailsBeforeAnyNetworkCall(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client)

	_, err := svc.Compose(context.Background(), invoicedomain.Draft{
		Items: []invoicedomain.LineItem{{Description: "", Quantity: 1, Price: 5}},
	})
	if err != invoicedomain.ErrNoLineItems {
		t.Fatalf("expected ErrNoLineItems, got %v", err)
	}
	if len(client.createCalls) != 0 {
		t.Fatalf("expected zero upstream calls, got %d", len(client.createCalls))
	}
}

func TestStatusDerivesPaidAndExplorerLink(t *testing.T) {
	client := &fakeClient{getResult: &x402.PaymentIntent{
		ID:             "pi_1",
		Status:         "completed",
		Amount:         2_500_000,
		AmountFees:     25_000,
		AmountMerchant: 2_475_000,
		Currency:       "USDC",
		PaymentURL:     "https://pay.example/pi_1",
		Receipt:        &x402.Receipt{TransactionSignature: "sig123"},
		X402Context:    &x402.X402Context{Network: "solana:mainnet"},
	}}
	svc := newTestService(client)

	status, err := svc.Status(context.Background(), "pi_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Paid {
		t.Fatal("expected completed intent to be paid")
	}
	if status.AmountDisplay != "2.50" {
		t.Fatalf("expected 2.50, got %q", status.AmountDisplay)
	}
	want := "https://explorer.solana.com/tx/sig123?cluster=mainnet-beta"
	if status.ExplorerURL != want {
		t.Fatalf("expected %q, got %q", want, status.ExplorerURL)
	}
}

func TestStatusMapsUpstream404(t *testing.T) {
	client := &fakeClient{getErr: &x402.UpstreamError{StatusCode: 404, Message: "HTTP 404"}}
	svc := newTestService(client)

	_, err := svc.Status(context.Background(), "pi_missing")
	if err != invoicedomain.ErrIntentNotFound {
		t.Fatalf("expected ErrIntentNotFound, got %v", err)
	}
}

func TestLookupRejectsMalformedIDWithoutNetworkCall(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client)

	err := svc.Lookup(context.Background(), "abc123")
	if err != invoicedomain.ErrInvalidIntentID {
		t.Fatalf("expected ErrInvalidIntentID, got %v", err)
	}
	if len(client.getCalls) != 0 {
		t.Fatalf("expected zero network calls, got %d", len(client.getCalls))
	}
}

func TestLookupMapsAnyUpstreamErrorToNotFound(t *testing.T) {
	client := &fakeClient{getErr: &x402.UpstreamError{StatusCode: 500, Message: "HTTP 500"}}
	svc := newTestService(client)

	err := svc.Lookup(context.Background(), "pi_1")
	if err != invoicedomain.ErrIntentNotFound {
		t.Fatalf("expected ErrIntentNotFound, got %v", err)
	}
}

func TestLookupPassesThroughTransportErrors(t *testing.T) {
	transportErr := errors.New("connection refused")
	client := &fakeClient{getErr: transportErr}
	svc := newTestService(client)

	if err := svc.Lookup(context.Background(), "pi_1"); !errors.Is(err, transportErr) {
		t.Fatalf("expected transport error passthrough, got %v", err)
	}
}
