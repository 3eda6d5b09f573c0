// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	requestIDKey contextKey = "ctxutil.requestID"
	senderKey    contextKey = "ctxutil.sender"
	roomKey      contextKey = "ctxutil.room"
)

// WithRequestID adds a request ID to the context.
// The webhook layer assigns one per incoming command invocation so that
// all gateway calls made on its behalf can be correlated in logs.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID if found, empty string otherwise.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if requestID, ok := v.(string); ok && requestID != "" {
			return requestID
		}
	}
	return ""
}

// WithSender adds the invoking user's mention handle to the context.
// Used for rate limiting and log correlation.
func WithSender(ctx context.Context, mention string) context.Context {
	return context.WithValue(ctx, senderKey, mention)
}

// GetSender retrieves the sender mention handle from the context.
// Returns the handle if found, empty string otherwise.
func GetSender(ctx context.Context) string {
	if v := ctx.Value(senderKey); v != nil {
		if mention, ok := v.(string); ok && mention != "" {
			return mention
		}
	}
	return ""
}

// WithRoom adds the originating room handle to the context.
func WithRoom(ctx context.Context, room string) context.Context {
	return context.WithValue(ctx, roomKey, room)
}

// GetRoom retrieves the room handle from the context.
// Returns the handle if found, empty string otherwise.
func GetRoom(ctx context.Context) string {
	if v := ctx.Value(roomKey); v != nil {
		if room, ok := v.(string); ok && room != "" {
			return room
		}
	}
	return ""
}
