package server

import (
	"errors"
	"net/http"

	invoicedomain "github.com/benniethedev/invoice-gen/internal/invoice/domain"
	"github.com/benniethedev/invoice-gen/internal/observability/logger"
	"github.com/benniethedev/invoice-gen/internal/x402"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrTooManyRequests = errors.New("too many requests")
)

func invalidRequestError() error {
	return errInvalidRequest
}

var errInvalidRequest = errors.New("invalid request body")

// AbortWithError maps an error onto an HTTP status and a JSON body of the
// shape {"error": message}. Unexpected errors never leak details.
func AbortWithError(c *gin.Context, err error) {
	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, invoicedomain.ErrNoLineItems),
		errors.Is(err, invoicedomain.ErrZeroTotal),
		errors.Is(err, invoicedomain.ErrInvalidAmount),
		errors.Is(err, invoicedomain.ErrMissingAsset),
		errors.Is(err, invoicedomain.ErrInvalidNetwork),
		errors.Is(err, invoicedomain.ErrInvalidIntentID):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, invoicedomain.ErrIntentNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, err.Error()
	}

	var upstream *x402.UpstreamError
	if errors.As(err, &upstream) {
		if upstream.StatusCode == http.StatusNotFound {
			return http.StatusNotFound, invoicedomain.ErrIntentNotFound.Error()
		}
		// Upstream failures surface their message but not their status:
		// this service is the one that failed to fulfil the request.
		return http.StatusInternalServerError, upstream.Message
	}

	return http.StatusInternalServerError, "internal server error"
}
