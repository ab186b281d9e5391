package testutil

import (
	"net/http"
	"time"

	"nameplate/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock, the same way the requesttime
// middleware would, so revocation and expiry checks are deterministic.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID attaches a request id as the requestid middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
