package domain

import (
	"github.com/benniethedev/invoice-gen/internal/explorer"
	"github.com/benniethedev/invoice-gen/internal/x402"
)

// DeriveStatus computes the display state for an intent read. Amounts are
// shown as returned; amount_merchant is never recomputed locally.
func DeriveStatus(intent *x402.PaymentIntent) *InvoiceStatus {
	status := &InvoiceStatus{
		Intent:        intent,
		Paid:          intent.IsPaid(),
		AmountDisplay: FormatAmount(intent.Amount),
		FeesDisplay:   FormatAmount(intent.AmountFees),
		NetDisplay:    FormatAmount(intent.AmountMerchant),
		NetworkLabel:  intent.Network(),
	}
	if intent.Receipt != nil {
		status.ExplorerURL = explorer.TransactionURL(intent.Receipt.TransactionSignature, intent.Network())
	}
	return status
}
