package server

import (
	"context"
	"net/http"
	"time"

	"github.com/benniethedev/invoice-gen/internal/config"
	invoicedomain "github.com/benniethedev/invoice-gen/internal/invoice/domain"
	"github.com/benniethedev/invoice-gen/internal/invoice/watch"
	"github.com/benniethedev/invoice-gen/internal/observability/logger"
	"github.com/benniethedev/invoice-gen/internal/observability/metrics"
	"github.com/benniethedev/invoice-gen/internal/qr"
	"github.com/benniethedev/invoice-gen/internal/web"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server, engine *gin.Engine) {
		s.RegisterRoutes(engine)
	}),
	fx.Invoke(RunHTTP),
)

type Params struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	InvoiceSvc invoicedomain.Service
	Watcher    *watch.Watcher
	QR         *qr.Generator
	Renderer   web.Renderer
}

type Server struct {
	cfg        config.Config
	log        *zap.Logger
	invoiceSvc invoicedomain.Service
	watcher    *watch.Watcher
	qr         *qr.Generator
	renderer   web.Renderer
	limiter    *rateLimiter
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:        p.Cfg,
		log:        p.Log.Named("server"),
		invoiceSvc: p.InvoiceSvc,
		watcher:    p.Watcher,
		qr:         p.QR,
		renderer:   p.Renderer,
		limiter:    newRateLimiter(30, time.Minute),
	}
}

func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	node, _ := snowflake.NewNode(1)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		Node:      node,
		SkipPaths: []string{"/healthz"},
	}))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/", s.ComposePage)
	engine.GET("/invoice/:id", s.InvoicePage)
	engine.GET("/status", s.LookupPage)

	api := engine.Group("/api")
	api.POST("/create-invoice", s.rateLimited, s.CreateInvoice)
	api.POST("/invoices/compose", s.rateLimited, s.ComposeInvoice)
	api.GET("/invoices/:id", s.GetInvoice)
	api.POST("/invoices/:id/lookup", s.LookupInvoice)
	api.GET("/invoices/:id/events", s.WatchInvoice)
}

func (s *Server) rateLimited(c *gin.Context) {
	if !s.limiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}
	c.Next()
}

// RunHTTP starts the HTTP server on the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("http server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}
