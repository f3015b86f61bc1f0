// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/celskeggs/hwops/models"
)

// statusRecorder remembers the status code a handler wrote
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Log request
		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", GetClientIP(r),
		)

		// Call the next handler
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		// Log completion
		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// ErrorStatus maps an inventory error to the HTTP status reported to the user
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrUnknownRack), errors.Is(err, models.ErrUnknownDevice):
		return http.StatusNotFound
	case errors.Is(err, models.ErrSlotRange), errors.Is(err, models.ErrBadOwner), errors.Is(err, models.ErrInvalidParam):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorPage builds the page shown for a failed request. Internal errors are
// not described to the user.
func ErrorPage(status int, err error) models.ErrorPage {
	page := models.ErrorPage{
		Status: status,
		Title:  http.StatusText(status),
	}
	if status < http.StatusInternalServerError {
		page.Message = err.Error()
	} else {
		page.Message = "Something went wrong. The error has been logged."
	}
	return page
}

// GetClientIP extracts the client IP address
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func GetClientIP(r *http.Request) string {
	// Check X-Forwarded-For (load balancers)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take first IP in chain
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' || xff[i] == ' ' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP (nginx)
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	// Strip port if present
	addr := r.RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
	}
	return addr
}
