// Package datasync provides import/export orchestration between YAML files and the database.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/at-ishikawa/definer/internal/dictionary"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	New     int
	Skipped int
	Updated int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer writes entries read from YAML into a repository.
type Importer struct {
	repository dictionary.Repository
	writer     io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(repository dictionary.Repository, writer io.Writer) *Importer {
	return &Importer{
		repository: repository,
		writer:     writer,
	}
}

// normalizeEntries recomputes term keys from display terms and rejects
// entries without a term or definition. A later entry for the same key wins.
func normalizeEntries(entries []dictionary.Entry) ([]dictionary.Entry, error) {
	var errs []error
	byTerm := make(map[string]int, len(entries))
	normalized := make([]dictionary.Entry, 0, len(entries))
	for i, e := range entries {
		displayTerm := strings.TrimSpace(e.DisplayTerm)
		if displayTerm == "" {
			displayTerm = strings.TrimSpace(e.Term)
		}
		definition := strings.TrimSpace(e.Definition)
		switch {
		case displayTerm == "":
			errs = append(errs, fmt.Errorf("entry %d: term is empty", i))
			continue
		case definition == "":
			errs = append(errs, fmt.Errorf("entry %d (%s): definition is empty", i, displayTerm))
			continue
		}

		entry := dictionary.Entry{
			Term:        dictionary.NormalizeTerm(displayTerm),
			DisplayTerm: displayTerm,
			Definition:  definition,
		}
		if j, ok := byTerm[entry.Term]; ok {
			normalized[j] = entry
			continue
		}
		byTerm[entry.Term] = len(normalized)
		normalized = append(normalized, entry)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return normalized, nil
}

// Import upserts entries that do not exist yet, and existing entries
// when UpdateExisting is set. Nothing is written on DryRun.
func (imp *Importer) Import(ctx context.Context, entries []dictionary.Entry, opts ImportOptions) (*ImportResult, error) {
	sourceEntries, err := normalizeEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid entries: %w", err)
	}

	existingEntries, err := imp.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing entries: %w", err)
	}
	existing := make(map[string]dictionary.Entry, len(existingEntries))
	for _, e := range existingEntries {
		existing[e.Term] = e
	}

	var result ImportResult
	var writes []dictionary.Entry
	for _, src := range sourceEntries {
		current, ok := existing[src.Term]
		switch {
		case !ok:
			_, _ = fmt.Fprintf(imp.writer, "  [NEW]  %q\n", src.DisplayTerm)
			result.New++
			writes = append(writes, src)
		case current == src:
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %q (unchanged)\n", src.DisplayTerm)
			result.Skipped++
		case opts.UpdateExisting:
			_, _ = fmt.Fprintf(imp.writer, "  [UPDATE]  %q\n", src.DisplayTerm)
			result.Updated++
			writes = append(writes, src)
		default:
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", src.DisplayTerm)
			result.Skipped++
		}
	}

	if opts.DryRun {
		return &result, nil
	}
	for i := range writes {
		if err := imp.repository.Upsert(ctx, &writes[i]); err != nil {
			return nil, fmt.Errorf("upsert %s: %w", writes[i].Term, err)
		}
	}
	return &result, nil
}

// Exporter reads every entry from a repository and hands them to a sink sorted by term key.
type Exporter struct {
	repository dictionary.Repository
}

// EntrySink receives exported entries.
type EntrySink interface {
	WriteAll(entries []dictionary.Entry) error
}

// NewExporter creates a new Exporter.
func NewExporter(repository dictionary.Repository) *Exporter {
	return &Exporter{repository: repository}
}

// Export writes all entries to sink and returns how many were written.
func (exp *Exporter) Export(ctx context.Context, sink EntrySink) (int, error) {
	entries, err := exp.repository.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load entries: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Term < entries[j].Term
	})
	if err := sink.WriteAll(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}
