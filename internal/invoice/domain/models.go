package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/benniethedev/invoice-gen/internal/x402"
	"github.com/bwmarrin/snowflake"
)

// MicroUnitsPerUnit is the integer scale used for asset amounts: six
// decimal places, matching the upstream API.
const MicroUnitsPerUnit = 1_000_000

// LineItem is one row of a draft invoice. ID is local to the compose flow
// and never sent upstream.
type LineItem struct {
	ID          snowflake.ID `json:"id"`
	Description string       `json:"description"`
	Quantity    float64      `json:"quantity"`
	Price       float64      `json:"price"`
}

// Draft is a composed invoice before submission.
type Draft struct {
	Items         []LineItem `json:"items"`
	CustomerEmail string     `json:"customerEmail,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Network       string     `json:"network,omitempty"`
}

// Subtotal sums quantity times price over the items.
func Subtotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Quantity * item.Price
	}
	return total
}

// ToMicroUnits converts a subtotal to the integer microunit representation.
func ToMicroUnits(subtotal float64) int64 {
	return int64(math.Round(subtotal * MicroUnitsPerUnit))
}

// FormatAmount renders a microunit amount with two decimal places.
func FormatAmount(micro int64) string {
	return fmt.Sprintf("%.2f", float64(micro)/MicroUnitsPerUnit)
}

// FilterItems drops items whose description is empty after trimming.
func FilterItems(items []LineItem) []LineItem {
	kept := make([]LineItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// Validate checks a draft in submission order: at least one item with a
// description, then a positive subtotal over ALL items. Rows without a
// description still count toward the total; they are dropped only from the
// metadata sent upstream.
func (d Draft) Validate() error {
	if len(FilterItems(d.Items)) == 0 {
		return ErrNoLineItems
	}
	if Subtotal(d.Items) <= 0 {
		return ErrZeroTotal
	}
	return nil
}

// InvoiceNumber derives a client-generated invoice number from a timestamp.
func InvoiceNumber(now time.Time) string {
	return "INV-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// Metadata builds the intent metadata block for a validated draft.
func Metadata(d Draft, now time.Time) *x402.InvoiceMetadata {
	items := FilterItems(d.Items)
	lines := make([]x402.MetadataLineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, x402.MetadataLineItem{
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return &x402.InvoiceMetadata{
		InvoiceNumber: InvoiceNumber(now),
		LineItems:     lines,
		Notes:         strings.TrimSpace(d.Notes),
		CreatedAt:     now.Format(time.RFC3339),
	}
}
