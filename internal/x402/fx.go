package x402

import "go.uber.org/fx"

var Module = fx.Module("x402.client",
	fx.Provide(NewClient),
)
