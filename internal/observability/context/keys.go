package context

import "context"

type contextKey string

const (
	requestIDKey contextKey = "observability_request_id"
	intentIDKey  contextKey = "observability_intent_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithIntentID tags the context with the payment intent a request is about,
// so every log line for that request carries it.
func WithIntentID(ctx context.Context, intentID string) context.Context {
	if ctx == nil || intentID == "" {
		return ctx
	}
	return context.WithValue(ctx, intentIDKey, intentID)
}

func IntentIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(intentIDKey).(string)
	return value
}
