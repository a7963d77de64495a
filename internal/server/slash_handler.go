package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/slack-go/slack"

	"github.com/at-ishikawa/definer/internal/render"
)

const (
	maxSlashCommandBodyBytes = 64 << 10
	warmupBody               = "warmup=true"
)

// SlashCommandHandler serves Slack slash command requests.
// The form field "text" holds the command, and the reply is a Block Kit message.
type SlashCommandHandler struct {
	executor CommandExecutor
	logger   *slog.Logger
}

// NewSlashCommandHandler creates a new SlashCommandHandler.
func NewSlashCommandHandler(executor CommandExecutor, logger *slog.Logger) *SlashCommandHandler {
	return &SlashCommandHandler{
		executor: executor,
		logger:   logger,
	}
}

func (h *SlashCommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSlashCommandBodyBytes))
	if err != nil {
		http.Error(w, "failed to read the request body", http.StatusRequestEntityTooLarge)
		return
	}
	// Keep-warm pings from the scheduler are acknowledged without touching the store.
	if string(body) == warmupBody {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	command, err := slack.SlashCommandParse(r)
	if err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	h.logger.DebugContext(r.Context(), "slash command received",
		"command", command.Command,
		"user_id", command.UserID,
		"text", command.Text)

	resp := h.executor.Execute(r.Context(), parseText(&command.Text))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(render.Slack(resp)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write a slash command response", "error", err)
	}
}
