package observability

import (
	"github.com/benniethedev/invoice-gen/internal/config"
	"github.com/benniethedev/invoice-gen/internal/observability/logger"
	"github.com/benniethedev/invoice-gen/internal/observability/metrics"
	"github.com/benniethedev/invoice-gen/internal/observability/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	logger.Module,
	fx.Provide(func() metric.MeterProvider {
		return otel.GetMeterProvider()
	}),
	fx.Provide(func() metrics.Config {
		return metrics.Config{ServiceName: "invoicegen"}
	}),
	fx.Provide(metrics.NewHTTPMetrics),
	fx.Provide(func(cfg config.Config) tracing.Config {
		return tracing.Config{
			Enabled:          cfg.Tracing.Enabled,
			ServiceName:      "invoicegen",
			Environment:      cfg.Environment,
			ExporterEndpoint: cfg.Tracing.ExporterEndpoint,
			ExporterProtocol: cfg.Tracing.ExporterProtocol,
			SamplingRatio:    cfg.Tracing.SamplingRatio,
		}
	}),
	fx.Invoke(tracing.NewProvider),
)
