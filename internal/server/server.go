// Package server provides the HTTP handlers that deliver dictionary commands.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/definer/internal/config"
	"github.com/at-ishikawa/definer/internal/dictionary"
)

// CommandExecutor runs a parsed command. *dictionary.Executor implements it.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd dictionary.Command) dictionary.Response
}

// parseText treats missing and blank text alike: both list every term.
func parseText(text *string) dictionary.Command {
	if text != nil && strings.TrimSpace(*text) == "" {
		text = nil
	}
	return dictionary.ParseCommand(text)
}

// NewMux mounts the slash command endpoint, the Connect service and a health check.
func NewMux(cfg config.ServerConfig, executor CommandExecutor, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(cfg.SlashCommandPath, NewSlashCommandHandler(executor, logger))

	path, h := NewDictionaryServiceHandler(NewDictionaryHandler(executor, logger))
	mux.Handle(path, h)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return requestLogger(logger, corsMiddleware(cfg.CORS.AllowedOrigins, mux))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.InfoContext(r.Context(), "request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && slices.Contains(allowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version")
			w.Header().Set("Access-Control-Max-Age", "3600")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
