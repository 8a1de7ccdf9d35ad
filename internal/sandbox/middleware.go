package sandbox

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/alexbotov/iyzipay-go/internal/auth"
	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

// V2AuthMiddleware verifies IYZWSv2 signatures over the request URI and raw
// body, then hands the body on unchanged.
func (h *Handler) V2AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, iyzipay.Request{}, CodeInvalidRequest, "Invalid request body")
			return
		}

		if _, err := auth.VerifyV2(h.keys, r.Header.Get(auth.AuthorizationHeader), r.URL.RequestURI(), string(body)); err != nil {
			h.respondAuthError(w, err)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware logs all requests
func (h *Handler) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"client_version", r.Header.Get(auth.ClientVersionHeader),
			"duration", time.Since(start),
		)
	})
}

// RecoveryMiddleware recovers from panics
func (h *Handler) RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.logger.Error("panic in handler", "error", err, "path", r.URL.Path)
				h.respondError(w, http.StatusInternalServerError, iyzipay.Request{}, "INTERNAL_ERROR", "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
