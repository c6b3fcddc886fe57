package utils

import (
	"context"

	"konsulin-assessment-engine/internal/pkg/constvars"
)

// WithRequestID stores the request id and whether the client supplied it.
func WithRequestID(ctx context.Context, requestID string, fromClient bool) context.Context {
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)
	return context.WithValue(ctx, constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY, fromClient)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}
