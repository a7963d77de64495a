// Package cli provides the interactive terminal session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/definer/internal/dictionary"
	"github.com/at-ishikawa/definer/internal/render"
)

var errEnd = errors.New("end")

const prompt = "definer> "

// Executor runs the text of one request. A nil text lists every term.
// *client.Client implements it for a remote server and LocalExecutor for a local store.
type Executor interface {
	Execute(ctx context.Context, text *string) (dictionary.Response, error)
}

// LocalExecutor adapts a dictionary.Executor to Executor.
type LocalExecutor struct {
	executor *dictionary.Executor
}

func NewLocalExecutor(executor *dictionary.Executor) *LocalExecutor {
	return &LocalExecutor{executor: executor}
}

func (e *LocalExecutor) Execute(ctx context.Context, text *string) (dictionary.Response, error) {
	return e.executor.Execute(ctx, dictionary.ParseCommand(text)), nil
}

// REPL reads one command per line and prints each response.
type REPL struct {
	executor     Executor
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	terminal     *render.Terminal
	red          *color.Color
}

func NewREPL(executor Executor, stdin io.Reader, stdout io.Writer) *REPL {
	return &REPL{
		executor:     executor,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		terminal:     render.NewTerminal(stdout),
		red:          color.New(color.FgRed),
	}
}

// Run reads lines until EOF, ":quit" or an interrupt.
// An empty line lists every term.
func (r *REPL) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	_, _ = fmt.Fprintln(r.stdoutWriter, `Type "word" to look it up, "word=definition" to save it, "word=" to delete it, or ":quit".`)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			if ctx.Err() != nil {
				return
			}
			if err := r.session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(r.stdoutWriter, "\nReceived interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

func (r *REPL) session(ctx context.Context) error {
	_, _ = fmt.Fprint(r.stdoutWriter, prompt)
	line, err := r.stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stdinReader.ReadString() > %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		_, _ = fmt.Fprintln(r.stdoutWriter)
		return errEnd
	}

	input := strings.TrimRight(line, "\r\n")
	switch strings.TrimSpace(input) {
	case ":quit", ":q":
		return errEnd
	}

	var text *string
	if strings.TrimSpace(input) != "" {
		text = &input
	}
	resp, execErr := r.executor.Execute(ctx, text)
	if execErr != nil {
		_, _ = r.red.Fprintf(r.stdoutWriter, "failed to run %q: %v\n", input, execErr)
	} else if printErr := r.terminal.Print(resp); printErr != nil {
		return fmt.Errorf("terminal.Print() > %w", printErr)
	}

	if errors.Is(err, io.EOF) {
		return errEnd
	}
	return nil
}
