package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/at-ishikawa/definer/internal/assets"
	"github.com/at-ishikawa/definer/internal/dictionary"
)

// GlossaryOptions controls how a glossary is written.
type GlossaryOptions struct {
	Title        string
	TemplatePath string
	Date         time.Time
	Logger       *slog.Logger
}

// WriteGlossary writes entries as a markdown glossary grouped by initial letter
// and returns the path of the PDF rendered from it.
func WriteGlossary(entries []dictionary.Entry, markdownPath string, opts GlossaryOptions) (string, error) {
	if err := os.MkdirAll(filepath.Dir(markdownPath), 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(markdownPath), err)
	}

	output, err := os.Create(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}
	defer func() {
		_ = output.Close()
	}()

	title := opts.Title
	if title == "" {
		title = "Glossary"
	}
	templateData := assets.GlossaryTemplate{
		Title:    title,
		Date:     opts.Date,
		Sections: glossarySections(entries),
	}
	if err := assets.WriteGlossary(output, opts.TemplatePath, templateData, opts.Logger); err != nil {
		return "", fmt.Errorf("assets.WriteGlossary(%s) > %w", markdownPath, err)
	}
	if err := output.Close(); err != nil {
		return "", fmt.Errorf("output.Close() > %w", err)
	}

	pdfPath, err := ConvertMarkdownToPDF(markdownPath)
	if err != nil {
		return "", fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", markdownPath, err)
	}
	return pdfPath, nil
}

func glossarySections(entries []dictionary.Entry) []assets.GlossarySection {
	sorted := make([]dictionary.Entry, len(entries))
	copy(sorted, entries)
	// "#" comes first and holds every non-letter term, wherever it sorts.
	sort.SliceStable(sorted, func(i, j int) bool {
		iLetter := sectionLetter(sorted[i].Term) != "#"
		jLetter := sectionLetter(sorted[j].Term) != "#"
		if iLetter != jLetter {
			return jLetter
		}
		return sorted[i].Term < sorted[j].Term
	})

	var sections []assets.GlossarySection
	for _, e := range sorted {
		letter := sectionLetter(e.Term)
		if len(sections) == 0 || sections[len(sections)-1].Letter != letter {
			sections = append(sections, assets.GlossarySection{Letter: letter})
		}
		last := &sections[len(sections)-1]
		last.Entries = append(last.Entries, assets.GlossaryEntry{
			DisplayTerm: e.DisplayTerm,
			Definition:  e.Definition,
		})
	}
	return sections
}

// sectionLetter is the upper-cased first letter of a term, or "#" for anything else.
func sectionLetter(term string) string {
	r, _ := utf8.DecodeRuneInString(term)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "#"
	}
	return strings.ToUpper(string(r))
}
