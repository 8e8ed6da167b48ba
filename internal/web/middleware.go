package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"hivecadlanding/internal/logger"
)

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.code == 0 {
		r.code = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.code == 0 {
		r.code = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Status() int {
	if r.code == 0 {
		return http.StatusOK
	}
	return r.code
}

// withRequestLog tags each request with an id and logs it once served.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()
		sw := &statusRecorder{ResponseWriter: w}

		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)

		next.ServeHTTP(sw, r.WithContext(ctx))

		level := slog.LevelInfo
		if sw.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log.Log(ctx, level, "site.serveHTTP",
			"http.method", r.Method,
			"http.path", r.URL.Path,
			"http.status", sw.Status(),
			"http.d", time.Since(start),
			"request_id", requestID,
		)
	})
}
