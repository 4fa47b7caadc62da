package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/shopfront/pkg/auth"
	"github.com/tair/shopfront/pkg/logger"
)

type contextKey string

// UsernameKey holds the authenticated session username in the request context
const UsernameKey contextKey = "username"

// LoggingMiddleware logs HTTP requests with structured logging
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		ww := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		ctx := r.Context()
		span := trace.SpanFromContext(ctx)
		traceID := "no-trace"
		if span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}

		logger.Debug(ctx).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Str("request_id", requestID).
			Str("trace_id", traceID).
			Msg("HTTP request started")

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logEvent := logger.WithContext(ctx).Info()
		if ww.statusCode >= 400 {
			logEvent = logger.WithContext(ctx).Error()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.statusCode).
			Dur("duration", duration).
			Str("request_id", requestID).
			Str("trace_id", traceID).
			Msg("HTTP request completed")
	})
}

// loggingResponseWriter wraps http.ResponseWriter to capture status code
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// TracingMiddleware wraps HTTP handlers with OpenTelemetry tracing
func TracingMiddleware(operationName string, next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, operationName)
}

// MetricsMiddleware records request counts and latency per route
func (h *ShoppingHandler) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(ww.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

// RegisterMiddlewares attaches logging, tracing and metrics to the router
func (h *ShoppingHandler) RegisterMiddlewares(router *mux.Router) {
	router.Use(LoggingMiddleware)
	router.Use(func(next http.Handler) http.Handler {
		return TracingMiddleware("http-request", next)
	})
	router.Use(h.MetricsMiddleware)
}

// AuthMiddleware validates the session token on mutating routes
func AuthMiddleware(tokens *auth.TokenMaker) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn(r.Context()).Msg("Missing authorization header")
				respondJSON(w, http.StatusUnauthorized, Response{
					Success: false,
					Error:   "Authorization header required",
				})
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Warn(r.Context()).Msg("Invalid authorization header format")
				respondJSON(w, http.StatusUnauthorized, Response{
					Success: false,
					Error:   "Invalid authorization header format",
				})
				return
			}

			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Invalid session token")
				respondJSON(w, http.StatusUnauthorized, Response{
					Success: false,
					Error:   "Invalid session token",
				})
				return
			}

			ctx := context.WithValue(r.Context(), UsernameKey, claims.Username)
			next(w, r.WithContext(ctx))
		}
	}
}
