package server

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/definer/internal/dictionary"
)

// fakeExecutor records the last command and answers with a fixed response.
type fakeExecutor struct {
	mu   sync.Mutex
	last dictionary.Command
	resp dictionary.Response
}

func (f *fakeExecutor) Execute(_ context.Context, cmd dictionary.Command) dictionary.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = cmd
	return f.resp
}

func (f *fakeExecutor) got() dictionary.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
