// Package qr renders payment URLs as scannable PNG data URLs.
package qr

import (
	"encoding/base64"
	"time"

	"github.com/benniethedev/invoice-gen/internal/cache"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const (
	imageSize = 256
	cacheTTL  = 10 * time.Minute
)

// Generator encodes URLs as QR PNG data URLs. Results are cached per URL;
// the encoded string for a given payment URL never changes.
type Generator struct {
	log   *zap.Logger
	cache *cache.TTLCache[string, string]
}

func NewGenerator(log *zap.Logger) *Generator {
	return &Generator{
		log:   log.Named("qr"),
		cache: cache.NewTTLCache[string, string](),
	}
}

// DataURL encodes the literal url string into a PNG QR image data URL.
// Failures are returned for the caller to degrade on; they are never fatal
// to a page render.
func (g *Generator) DataURL(url string) (string, error) {
	if url == "" {
		return "", nil
	}
	if cached, ok := g.cache.Get(url); ok {
		return cached, nil
	}

	png, err := qrcode.Encode(url, qrcode.Medium, imageSize)
	if err != nil {
		g.log.Warn("qr generation failed", zap.Error(err))
		return "", err
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	g.cache.Set(url, dataURL, cacheTTL)
	return dataURL, nil
}
