// Package watch polls an unpaid payment intent until it settles.
package watch

import (
	"context"
	"time"

	invoicedomain "github.com/benniethedev/invoice-gen/internal/invoice/domain"
	"github.com/benniethedev/invoice-gen/internal/x402"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config controls the intent watch loop.
type Config struct {
	PollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{PollInterval: 5 * time.Second}
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultConfig().PollInterval
	}
	return c
}

// Snapshot is one observation of an intent. Err is terminal: the stream
// closes after an errored snapshot.
type Snapshot struct {
	Intent *x402.PaymentIntent
	Paid   bool
	Err    error
}

type Params struct {
	fx.In

	Log    *zap.Logger
	Client invoicedomain.IntentClient
	Config Config `optional:"true"`
}

// Watcher re-reads intents on a fixed interval. There is no backoff and no
// retry cap: an unpaid intent is polled until the caller's context ends.
type Watcher struct {
	log    *zap.Logger
	client invoicedomain.IntentClient
	cfg    Config
}

func NewWatcher(p Params) *Watcher {
	return &Watcher{
		log:    p.Log.Named("invoice.watch"),
		client: p.Client,
		cfg:    p.Config.withDefaults(),
	}
}

// Watch fetches the intent immediately, then on every tick while it remains
// unpaid. The stream closes on the first paid snapshot, on the first fetch
// error, or when ctx is cancelled. The ticker is stopped on every exit path.
//
// Each fetch is independent; a slow response does not suppress the next
// tick. Reads are idempotent, so last-response-wins is acceptable.
func (w *Watcher) Watch(ctx context.Context, id string) <-chan Snapshot {
	out := make(chan Snapshot)

	go func() {
		defer close(out)

		ticker := time.NewTicker(w.cfg.PollInterval)
		defer ticker.Stop()

		for {
			snapshot := w.fetch(ctx, id)

			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
			if snapshot.Err != nil {
				w.log.Warn("intent watch stopped on error", zap.String("intent_id", id), zap.Error(snapshot.Err))
				return
			}
			if snapshot.Paid {
				w.log.Info("intent settled", zap.String("intent_id", id))
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return out
}

func (w *Watcher) fetch(ctx context.Context, id string) Snapshot {
	intent, err := w.client.GetPaymentIntent(ctx, id)
	if err != nil {
		return Snapshot{Err: err}
	}
	return Snapshot{Intent: intent, Paid: intent.IsPaid()}
}
