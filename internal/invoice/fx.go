package invoice

import (
	invoicedomain "github.com/benniethedev/invoice-gen/internal/invoice/domain"
	"github.com/benniethedev/invoice-gen/internal/invoice/service"
	"github.com/benniethedev/invoice-gen/internal/invoice/watch"
	"github.com/benniethedev/invoice-gen/internal/x402"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(func(client *x402.Client) invoicedomain.IntentClient {
		return client
	}),
	fx.Provide(service.NewService),
	fx.Provide(watch.DefaultConfig),
	fx.Provide(watch.NewWatcher),
)
