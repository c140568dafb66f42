package web

// ComposeView feeds the invoice compose page.
type ComposeView struct {
	DefaultNetwork string
	Networks       []string
}

// ReceiptView is the settled-payment block on the invoice page.
type ReceiptView struct {
	URL         string
	Memo        string
	ContentHash string
	Signature   string
	ExplorerURL string
}

// InvoiceView feeds the invoice status page. Error is exclusive with the
// rest: a failed initial fetch renders the error state and nothing polls.
type InvoiceView struct {
	ID            string
	Status        string
	Paid          bool
	AmountDisplay string
	FeesDisplay   string
	NetDisplay    string
	Currency      string
	PaymentURL    string
	QRDataURL     string
	NetworkLabel  string
	CustomerEmail string
	Receipt       *ReceiptView
	Error         string
}

// LookupView feeds the status lookup page.
type LookupView struct {
	Error string
}
