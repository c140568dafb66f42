package x402

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/benniethedev/invoice-gen/internal/config"
	"github.com/benniethedev/invoice-gen/internal/observability/tracing"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const intentsPath = "/api/v1/payment_intents"

type createIntentBody struct {
	Amount         int64            `json:"amount"`
	Currency       string           `json:"currency"`
	MerchantWallet string           `json:"merchant_wallet"`
	CustomerEmail  string           `json:"customer_email,omitempty"`
	Metadata       *InvoiceMetadata `json:"metadata,omitempty"`
	X402Context    X402Context      `json:"x402_context"`
}

// Client talks to the hosted payment-intent API. All payment state lives
// upstream; this client only creates intents and re-reads them.
type Client struct {
	http           *resty.Client
	cfg            config.Config
	log            *zap.Logger
	defaultNetwork Network
}

// NewClient builds the API client. A missing merchant wallet is a
// configuration error and fails construction, not the first request.
func NewClient(cfg config.Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.MerchantWallet) == "" {
		return nil, ErrMissingMerchantWallet
	}
	defaultNetwork, err := ParseNetwork(cfg.DefaultNetwork)
	if err != nil {
		return nil, fmt.Errorf("default network: %w", err)
	}

	httpClient := tracing.WrapHTTPClient(&http.Client{Timeout: cfg.HTTPClientTimeout})
	rest := resty.NewWithClient(httpClient).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:           rest,
		cfg:            cfg,
		log:            log.Named("x402.client"),
		defaultNetwork: defaultNetwork,
	}, nil
}

// DefaultNetwork returns the network used when a request omits one.
func (c *Client) DefaultNetwork() Network {
	return c.defaultNetwork
}

// PaymentPageURL derives the hosted payment page for an intent. Used as the
// fallback whenever the API response omits payment_url.
func (c *Client) PaymentPageURL(network Network, id string) string {
	return c.cfg.BaseURL(network.String()) + "/pay/" + id
}

// CreatePaymentIntent creates an intent upstream and normalizes the response.
func (c *Client) CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (*PaymentResult, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0, got %d", params.Amount)
	}
	network := params.Network
	if network == "" {
		network = c.defaultNetwork
	}

	body := createIntentBody{
		Amount:         params.Amount,
		Currency:       params.Asset,
		MerchantWallet: c.cfg.MerchantWallet,
		CustomerEmail:  params.CustomerEmail,
		Metadata:       params.Metadata,
		X402Context: X402Context{
			FacilitatorID: c.cfg.FacilitatorID,
			Network:       network.String(),
			Resource:      params.Resource,
		},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-merchant-wallet", c.cfg.MerchantWallet).
		SetBody(body).
		Post(c.cfg.BaseURL(network.String()) + intentsPath)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, newUpstreamError(resp.StatusCode(), resp.Body())
	}

	var intent PaymentIntent
	if err := json.Unmarshal(resp.Body(), &intent); err != nil {
		return nil, fmt.Errorf("decode payment intent: %w", err)
	}

	c.log.Info("payment intent created",
		zap.String("intent_id", intent.ID),
		zap.String("network", network.String()),
		zap.Int64("amount", params.Amount),
	)

	return c.normalizeResult(network, params.Amount, &intent), nil
}

// GetPaymentIntent re-reads an intent by id. Every call hits the network:
// the poll loop depends on never seeing a cached response, so the request
// carries no-cache headers and a cache-busting timestamp parameter.
//
// Reads always go to the default network's base: an intent id does not
// encode its network, so a distinct mainnet base must serve reads for
// intents it created. The payment-URL fallback does use the network the
// response reports.
func (c *Client) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Cache-Control", "no-cache").
		SetHeader("Pragma", "no-cache").
		SetQueryParam("_ts", strconv.FormatInt(time.Now().UnixNano(), 10)).
		Get(c.cfg.BaseURL(c.defaultNetwork.String()) + intentsPath + "/" + id)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, newUpstreamError(resp.StatusCode(), resp.Body())
	}

	var intent PaymentIntent
	if err := json.Unmarshal(resp.Body(), &intent); err != nil {
		return nil, fmt.Errorf("decode payment intent: %w", err)
	}
	if intent.PaymentURL == "" {
		network := c.defaultNetwork
		if parsed, parseErr := ParseNetwork(intent.Network()); parseErr == nil {
			network = parsed
		}
		intent.PaymentURL = c.PaymentPageURL(network, intent.ID)
	}
	return &intent, nil
}

func (c *Client) normalizeResult(network Network, requested int64, intent *PaymentIntent) *PaymentResult {
	paymentURL := intent.PaymentURL
	if paymentURL == "" {
		paymentURL = c.PaymentPageURL(network, intent.ID)
	}

	total := intent.Amount
	if total == 0 {
		total = requested
	}
	net := intent.AmountMerchant
	if net == 0 && intent.AmountFees == 0 {
		net = requested
	}

	return &PaymentResult{
		IntentID:   intent.ID,
		PaymentURL: paymentURL,
		Status:     intent.Status,
		Amount: AmountBreakdown{
			Requested: requested,
			Total:     total,
			Fees:      intent.AmountFees,
			Net:       net,
		},
	}
}
