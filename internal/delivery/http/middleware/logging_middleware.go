package middleware

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

// Logging writes one structured log entry per request.
func Logging(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, params handlers.LogFormatterParams) {
			entry := log.WithFields(logrus.Fields{
				"method":      params.Request.Method,
				"path":        params.URL.Path,
				"status":      params.StatusCode,
				"size":        params.Size,
				"duration_ms": time.Since(params.TimeStamp).Milliseconds(),
			})
			if params.StatusCode >= http.StatusInternalServerError {
				entry.Warn("Request failed")
				return
			}
			entry.Info("Request handled")
		})
	}
}
