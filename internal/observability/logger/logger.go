package logger

import (
	"context"

	"github.com/benniethedev/invoice-gen/internal/config"
	obscontext "github.com/benniethedev/invoice-gen/internal/observability/context"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability.logger",
	fx.Provide(New),
)

// New builds the process logger. Production uses the JSON encoder; anything
// else gets the development console encoder. The logger also replaces the
// zap globals so FromContext works before fx wiring completes.
func New(cfg config.Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	log = log.Named("invoicegen")
	zap.ReplaceGlobals(log)
	return log, nil
}

// FromContext returns the global logger enriched with trace, span, request
// and intent identifiers carried by the context.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		log = log.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	if intentID := obscontext.IntentIDFromContext(ctx); intentID != "" {
		log = log.With(zap.String("intent_id", intentID))
	}
	return log
}
