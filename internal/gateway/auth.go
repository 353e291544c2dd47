package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Identity is the caller's credentials. It travels on the request context
// rather than living in process-wide state.
type Identity struct {
	Token  string
	UserID string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id. Every Client call made
// with the returned context is authenticated as id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored on ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// authTransport is the single interception point for outgoing calls. It
// attaches the bearer token, the user id and a request id, and logs the
// outcome at debug level.
type authTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())

	if id, ok := IdentityFrom(req.Context()); ok {
		if id.Token != "" {
			req.Header.Set("Authorization", "Bearer "+id.Token)
		}
		if id.UserID != "" {
			req.Header.Set("X-User-ID", id.UserID)
		}
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Debug("gateway request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", reqID,
			"error", err,
		)
		return nil, err
	}
	t.logger.Debug("gateway request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", reqID,
	)
	return resp, nil
}
