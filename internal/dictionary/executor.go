package dictionary

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	noWordsMessage     = "There seem to be no words available."
	defineErrorMessage = "An error has occurred while attempting to define."
	deleteErrorMessage = "An error has occurred while attempting to delete."
)

// lookupFailure separates why a Get fell back to the similar words search.
// Both kinds produce the same response.
type lookupFailure string

const (
	lookupMiss        lookupFailure = "miss"
	lookupUnavailable lookupFailure = "unavailable"
)

// Executor runs commands against a Repository and builds the response for each.
// Store failures never escape as errors; they become user facing messages.
type Executor struct {
	repository Repository
	logger     *slog.Logger
}

// NewExecutor creates a new Executor. A nil logger uses slog.Default().
func NewExecutor(repository Repository, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		repository: repository,
		logger:     logger,
	}
}

// Execute runs cmd and returns its response.
// It panics if cmd is not one of the four command types.
func (e *Executor) Execute(ctx context.Context, cmd Command) Response {
	switch c := cmd.(type) {
	case ListCommand:
		return e.list(ctx, c)
	case GetCommand:
		return e.get(ctx, c)
	case PutCommand:
		return e.put(ctx, c)
	case DeleteCommand:
		return e.delete(ctx, c)
	default:
		panic(fmt.Sprintf("dictionary: unknown command %T", cmd))
	}
}

func (e *Executor) list(ctx context.Context, cmd ListCommand) Response {
	entries, err := e.repository.FindAll(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to list terms", "prefix", cmd.Prefix, "error", err)
		return NewTextResponse(noWordsMessage)
	}

	matched := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Term, cmd.Prefix) {
			matched = append(matched, entry)
		}
	}
	if len(matched) == 0 {
		return NewTextResponse(noWordsMessage)
	}

	slices.SortFunc(matched, func(a, b Entry) int {
		return cmp.Compare(a.Term, b.Term)
	})
	displayTerms := make([]string, 0, len(matched))
	for _, entry := range matched {
		displayTerms = append(displayTerms, entry.DisplayTerm)
	}
	return NewTextResponse(strings.Join(displayTerms, ", "))
}

func (e *Executor) get(ctx context.Context, cmd GetCommand) Response {
	entry, err := e.repository.FindByTerm(ctx, cmd.Term)
	switch {
	case err != nil:
		e.logger.ErrorContext(ctx, "failed to look up a term", "term", cmd.Term, "error", err)
		return e.searchSimilar(ctx, cmd, lookupUnavailable)
	case entry == nil:
		e.logger.InfoContext(ctx, "term not found", "term", cmd.Term)
		return e.searchSimilar(ctx, cmd, lookupMiss)
	}

	return NewDefinitionResponse(
		entry.DisplayTerm,
		fmt.Sprintf("Is defined as: %s", entry.Definition),
	)
}

// searchSimilar lists the terms sharing the first character of the missing term.
func (e *Executor) searchSimilar(ctx context.Context, cmd GetCommand, reason lookupFailure) Response {
	prefix := firstCharacter(cmd.Term)
	e.logger.DebugContext(ctx, "looking up similar terms", "term", cmd.Term, "prefix", prefix, "reason", reason)

	similar := e.list(ctx, NewListCommand(prefix))
	return NewDefinitionResponse(
		fmt.Sprintf("%s could not be found, we tried to look up similar words:", cmd.DisplayTerm),
		similar.Body(),
	)
}

func (e *Executor) put(ctx context.Context, cmd PutCommand) Response {
	entry := &Entry{
		Term:        cmd.Term,
		DisplayTerm: cmd.DisplayTerm,
		Definition:  cmd.Definition,
	}
	if err := e.repository.Upsert(ctx, entry); err != nil {
		e.logger.ErrorContext(ctx, "failed to save a term", "term", cmd.Term, "error", err)
		return NewTextResponse(defineErrorMessage)
	}

	e.logger.InfoContext(ctx, "term saved", "term", cmd.Term)
	return NewDefinitionResponse(
		cmd.DisplayTerm,
		fmt.Sprintf("Was saved as: %s", cmd.Definition),
	)
}

func (e *Executor) delete(ctx context.Context, cmd DeleteCommand) Response {
	if err := e.repository.Delete(ctx, cmd.Term); err != nil {
		e.logger.ErrorContext(ctx, "failed to delete a term", "term", cmd.Term, "error", err)
		return NewTextResponse(deleteErrorMessage)
	}

	e.logger.InfoContext(ctx, "term deleted", "term", cmd.Term)
	return NewTextResponse(fmt.Sprintf("%s has been deleted", cmd.DisplayTerm))
}

// firstCharacter returns the first rune of term, or "" for an empty term.
func firstCharacter(term string) string {
	if term == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(term)
	return term[:size]
}
