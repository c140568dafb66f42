package domain

import (
	"context"
	"errors"

	"github.com/benniethedev/invoice-gen/internal/x402"
)

// IntentIDPrefix is the lexical invariant for payment intent identifiers.
const IntentIDPrefix = "pi_"

// CreateInvoiceRequest is the proxy-side creation payload.
type CreateInvoiceRequest struct {
	Amount        int64                 `json:"amount"`
	Asset         string                `json:"asset"`
	Network       string                `json:"network,omitempty"`
	CustomerEmail string                `json:"customerEmail,omitempty"`
	Metadata      *x402.InvoiceMetadata `json:"metadata,omitempty"`
}

// InvoiceStatus is the derived display state for one intent read.
type InvoiceStatus struct {
	Intent        *x402.PaymentIntent `json:"intent"`
	Paid          bool                `json:"paid"`
	AmountDisplay string              `json:"amountDisplay"`
	FeesDisplay   string              `json:"feesDisplay"`
	NetDisplay    string              `json:"netDisplay"`
	ExplorerURL   string              `json:"explorerUrl,omitempty"`
	NetworkLabel  string              `json:"networkLabel,omitempty"`
}

// IntentClient is the slice of the x402 client the invoice service needs.
type IntentClient interface {
	CreatePaymentIntent(ctx context.Context, params x402.CreateIntentParams) (*x402.PaymentResult, error)
	GetPaymentIntent(ctx context.Context, id string) (*x402.PaymentIntent, error)
	DefaultNetwork() x402.Network
}

type Service interface {
	// Create validates the proxy payload and delegates to the API client.
	Create(ctx context.Context, req CreateInvoiceRequest) (*x402.PaymentResult, error)
	// Compose validates a draft, converts it to microunits and creates
	// the intent with generated metadata.
	Compose(ctx context.Context, draft Draft) (*x402.PaymentResult, error)
	// Status re-reads an intent and derives its display state.
	Status(ctx context.Context, id string) (*InvoiceStatus, error)
	// Lookup checks an id's shape, then pre-checks existence upstream.
	Lookup(ctx context.Context, id string) error
}

var (
	ErrNoLineItems     = errors.New("add at least one line item")
	ErrZeroTotal       = errors.New("total must be greater than 0")
	ErrInvalidAmount   = errors.New("amount must be greater than 0")
	ErrMissingAsset    = errors.New("asset is required")
	ErrInvalidNetwork  = errors.New("invalid network")
	ErrInvalidIntentID = errors.New("invalid payment intent ID: must start with pi_")
	ErrIntentNotFound  = errors.New("invoice not found")
)
