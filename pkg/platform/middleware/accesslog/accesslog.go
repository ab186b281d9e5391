// Package accesslog emits one structured log line and one metric observation
// per HTTP request.
package accesslog

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mssola/useragent"

	"nameplate/pkg/requestcontext"
)

// Recorder receives per-request observations. A nil Recorder is allowed.
type Recorder interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Middleware logs method, route pattern, status and latency. Bot traffic is
// flagged so crawlers hammering identity pages can be filtered in dashboards.
func Middleware(logger *slog.Logger, recorder Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			elapsed := time.Since(start)
			if recorder != nil {
				recorder.ObserveHTTPRequest(r.Method, route, status, elapsed)
			}
			if logger == nil {
				return
			}

			ctx := r.Context()
			ua := useragent.New(r.UserAgent())
			browser, _ := ua.Browser()
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "http request",
				"request_id", requestcontext.RequestID(ctx),
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", elapsed.Milliseconds(),
				"client_ip", requestcontext.ClientIP(ctx),
				"ua_browser", browser,
				"ua_os", ua.OS(),
				"ua_bot", ua.Bot(),
			)
		})
	}
}

// routePattern keeps metric cardinality bounded by using the matched chi
// pattern instead of the raw path, which embeds addresses.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
