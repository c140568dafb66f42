// @title           Invoice Gen
// @version         1.0
// @description     Invoice frontend for the x402 payment intent API

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

package main

import (
	"github.com/benniethedev/invoice-gen/internal/clock"
	"github.com/benniethedev/invoice-gen/internal/config"
	"github.com/benniethedev/invoice-gen/internal/invoice"
	"github.com/benniethedev/invoice-gen/internal/observability"
	"github.com/benniethedev/invoice-gen/internal/qr"
	"github.com/benniethedev/invoice-gen/internal/server"
	"github.com/benniethedev/invoice-gen/internal/web"
	"github.com/benniethedev/invoice-gen/internal/x402"
	"go.uber.org/fx"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		x402.Module,
		invoice.Module,
		qr.Module,
		web.Module,
		server.Module,
	)
	app.Run()
}
