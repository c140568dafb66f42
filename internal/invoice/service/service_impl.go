package service

import (
	"context"
	"errors"
	"strings"

	"github.com/benniethedev/invoice-gen/internal/clock"
	invoicedomain "github.com/benniethedev/invoice-gen/internal/invoice/domain"
	"github.com/benniethedev/invoice-gen/internal/x402"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Clock  clock.Clock
	Client invoicedomain.IntentClient
}

type Service struct {
	log    *zap.Logger
	clock  clock.Clock
	client invoicedomain.IntentClient
}

func NewService(p Params) invoicedomain.Service {
	return &Service{
		log:    p.Log.Named("invoice.service"),
		clock:  p.Clock,
		client: p.Client,
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (*x402.PaymentResult, error) {
	if req.Amount <= 0 {
		return nil, invoicedomain.ErrInvalidAmount
	}
	if strings.TrimSpace(req.Asset) == "" {
		return nil, invoicedomain.ErrMissingAsset
	}

	network := s.client.DefaultNetwork()
	if strings.TrimSpace(req.Network) != "" {
		parsed, err := x402.ParseNetwork(req.Network)
		if err != nil {
			return nil, invoicedomain.ErrInvalidNetwork
		}
		network = parsed
	}

	params := x402.CreateIntentParams{
		Amount:        req.Amount,
		Asset:         strings.TrimSpace(req.Asset),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		Metadata:      req.Metadata,
		Network:       network,
	}
	if req.Metadata != nil && req.Metadata.InvoiceNumber != "" {
		params.Resource = "invoice/" + req.Metadata.InvoiceNumber
	}

	return s.client.CreatePaymentIntent(ctx, params)
}

func (s *Service) Compose(ctx context.Context, draft invoicedomain.Draft) (*x402.PaymentResult, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	// The charged amount covers every row; description filtering applies
	// only to the metadata line items.
	subtotal := invoicedomain.Subtotal(draft.Items)
	now := s.clock.Now()

	return s.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Amount:        invoicedomain.ToMicroUnits(subtotal),
		Asset:         "USDC",
		Network:       draft.Network,
		CustomerEmail: draft.CustomerEmail,
		Metadata:      invoicedomain.Metadata(draft, now),
	})
}

func (s *Service) Status(ctx context.Context, id string) (*invoicedomain.InvoiceStatus, error) {
	intent, err := s.client.GetPaymentIntent(ctx, id)
	if err != nil {
		var upstream *x402.UpstreamError
		if errors.As(err, &upstream) && upstream.StatusCode == 404 {
			return nil, invoicedomain.ErrIntentNotFound
		}
		return nil, err
	}

	return invoicedomain.DeriveStatus(intent), nil
}

func (s *Service) Lookup(ctx context.Context, id string) error {
	if !strings.HasPrefix(id, invoicedomain.IntentIDPrefix) {
		return invoicedomain.ErrInvalidIntentID
	}
	if _, err := s.client.GetPaymentIntent(ctx, id); err != nil {
		var upstream *x402.UpstreamError
		if errors.As(err, &upstream) {
			return invoicedomain.ErrIntentNotFound
		}
		return err
	}
	return nil
}
