package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

const (
	NetworkSolanaDevnet  = "solana:devnet"
	NetworkSolanaMainnet = "solana:mainnet"

	defaultAPIBaseDevnet = "https://api.devnet.x402pay.dev"
	defaultFacilitator   = "fct_x402pay"
)

var ErrMissingMerchantWallet = errors.New("merchant wallet address is required")

// Config holds all environment-derived settings. It is resolved once at
// process start and injected; nothing reads the environment after Load.
type Config struct {
	Environment string
	HTTPAddr    string

	APIBaseDevnet  string
	APIBaseMainnet string
	MerchantWallet string
	DefaultNetwork string
	FacilitatorID  string

	HTTPClientTimeout time.Duration

	Tracing TracingConfig
}

// TracingConfig configures the optional OTLP trace exporter.
type TracingConfig struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

// Load reads configuration from the environment, loading a .env file first
// when one exists. A missing or malformed merchant wallet is a fatal error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		APIBaseDevnet:     strings.TrimRight(getEnv("X402_API_BASE_DEVNET", defaultAPIBaseDevnet), "/"),
		APIBaseMainnet:    strings.TrimRight(getEnv("X402_API_BASE_MAINNET", ""), "/"),
		MerchantWallet:    strings.TrimSpace(os.Getenv("MERCHANT_WALLET")),
		DefaultNetwork:    getEnv("DEFAULT_NETWORK", NetworkSolanaDevnet),
		FacilitatorID:     getEnv("FACILITATOR_ID", defaultFacilitator),
		HTTPClientTimeout: 15 * time.Second,
		Tracing: TracingConfig{
			Enabled:          os.Getenv("OTEL_TRACING_ENABLED") == "true",
			ExporterEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", ""),
			ExporterProtocol: getEnv("OTEL_EXPORTER_PROTOCOL", "grpc"),
			SamplingRatio:    getFloat("OTEL_SAMPLING_RATIO", 1.0),
		},
	}

	if cfg.MerchantWallet == "" {
		return Config{}, ErrMissingMerchantWallet
	}
	if _, err := solana.PublicKeyFromBase58(cfg.MerchantWallet); err != nil {
		return Config{}, fmt.Errorf("invalid merchant wallet %q: %w", cfg.MerchantWallet, err)
	}

	switch cfg.DefaultNetwork {
	case NetworkSolanaDevnet, NetworkSolanaMainnet:
	default:
		return Config{}, fmt.Errorf("invalid default network %q", cfg.DefaultNetwork)
	}

	return cfg, nil
}

// BaseURL resolves the upstream API base for a network value. Mainnet uses
// the mainnet override when configured; everything else uses the devnet base.
func (c Config) BaseURL(network string) string {
	if strings.Contains(network, "mainnet") && c.APIBaseMainnet != "" {
		return c.APIBaseMainnet
	}
	return c.APIBaseDevnet
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}
