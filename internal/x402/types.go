package x402

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Intent statuses the upstream API has been observed returning. Anything
// else is shown as pending; see PaymentIntent.IsPaid.
const (
	StatusPending   = "pending"
	StatusSucceeded = "succeeded"
	StatusCompleted = "completed"
)

var ErrMissingMerchantWallet = errors.New("merchant wallet address is required")

// UpstreamError carries a non-2xx response from the payment API. The message
// is the server-supplied one when the body had it, else a generic HTTP line.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func newUpstreamError(status int, body []byte) *UpstreamError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &payload)
	}
	message := payload.Error
	if message == "" {
		message = payload.Message
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &UpstreamError{StatusCode: status, Message: message}
}

// MetadataLineItem is one invoice line carried in intent metadata.
type MetadataLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// InvoiceMetadata is the free-form metadata block attached at creation.
// Known fields are typed; Extra keeps forward compatibility with fields this
// service does not interpret.
type InvoiceMetadata struct {
	InvoiceNumber string             `json:"invoice_number"`
	LineItems     []MetadataLineItem `json:"line_items"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     string             `json:"created_at"`

	Extra map[string]any `json:"-"`
}

// MarshalJSON merges Extra into the object alongside the known fields.
// Known fields win on key collisions.
func (m InvoiceMetadata) MarshalJSON() ([]byte, error) {
	type alias InvoiceMetadata
	known, err := json.Marshal(alias(m))
	if err != nil {
		return nil, err
	}
	if len(m.Extra) == 0 {
		return known, nil
	}
	merged := make(map[string]any, len(m.Extra)+4)
	for key, value := range m.Extra {
		merged[key] = value
	}
	var typed map[string]any
	if err := json.Unmarshal(known, &typed); err != nil {
		return nil, err
	}
	for key, value := range typed {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// UnmarshalJSON splits an object into the known fields and Extra.
func (m *InvoiceMetadata) UnmarshalJSON(data []byte) error {
	type alias InvoiceMetadata
	var typed alias
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range []string{"invoice_number", "line_items", "notes", "created_at"} {
		delete(raw, key)
	}
	*m = InvoiceMetadata(typed)
	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}

// CreateIntentParams are the inputs to CreatePaymentIntent. Amount is in
// microunits of the asset (6 decimal places) and must be positive.
type CreateIntentParams struct {
	Amount        int64
	Asset         string
	CustomerEmail string
	Metadata      *InvoiceMetadata
	Network       Network
	Resource      string
}

// Receipt is attached by the upstream API once an intent is paid.
type Receipt struct {
	URL                  string `json:"url"`
	ContentHash          string `json:"content_hash"`
	Memo                 string `json:"memo"`
	TransactionSignature string `json:"transaction_signature"`
}

// X402Context describes the facilitator and network coordinating settlement.
type X402Context struct {
	FacilitatorID string `json:"facilitator_id"`
	Network       string `json:"network"`
	Resource      string `json:"resource,omitempty"`
}

// PaymentIntent is the upstream read model. It is never mutated locally;
// every page view re-reads it from the API.
type PaymentIntent struct {
	ID             string       `json:"id"`
	Status         string       `json:"status"`
	Amount         int64        `json:"amount"`
	AmountFees     int64        `json:"amount_fees"`
	AmountMerchant int64        `json:"amount_merchant"`
	Currency       string       `json:"currency"`
	PaymentURL     string       `json:"payment_url"`
	CustomerEmail  string       `json:"customer_email,omitempty"`
	Receipt        *Receipt     `json:"receipt,omitempty"`
	X402Context    *X402Context `json:"x402_context,omitempty"`
}

// IsPaid reports whether the intent settled. "succeeded" and "completed" are
// upstream synonyms.
func (p *PaymentIntent) IsPaid() bool {
	if p == nil {
		return false
	}
	return p.Status == StatusSucceeded || p.Status == StatusCompleted
}

// Network returns the x402 context network string, if any.
func (p *PaymentIntent) Network() string {
	if p == nil || p.X402Context == nil {
		return ""
	}
	return p.X402Context.Network
}

// AmountBreakdown is the normalized amount view returned from creation.
// Requested echoes the caller input; the rest come from the server.
type AmountBreakdown struct {
	Requested int64 `json:"requested"`
	Total     int64 `json:"total"`
	Fees      int64 `json:"fees"`
	Net       int64 `json:"net"`
}

// PaymentResult is the normalized creation response handed back to callers.
type PaymentResult struct {
	IntentID   string          `json:"intentId"`
	PaymentURL string          `json:"paymentUrl"`
	Status     string          `json:"status"`
	Amount     AmountBreakdown `json:"amount"`
}
