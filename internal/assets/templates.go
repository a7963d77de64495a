// Package assets holds the markdown templates used by exports.
package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/glossary.md.go.tmpl
var fallbackGlossaryTemplate string

const fallbackGlossaryTemplateName = "glossary.md.go.tmpl"

// GlossaryTemplate is the top-level data structure for glossary templates
type GlossaryTemplate struct {
	Title    string
	Date     time.Time
	Sections []GlossarySection
}

// GlossarySection groups entries by the first letter of their term key
type GlossarySection struct {
	Letter  string
	Entries []GlossaryEntry
}

type GlossaryEntry struct {
	DisplayTerm string
	Definition  string
}

func ParseGlossaryTemplate(templatePath string, logger *slog.Logger) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, fallbackGlossaryTemplateName, fallbackGlossaryTemplate, logger)
}

func WriteGlossary(output io.Writer, templatePath string, templateData GlossaryTemplate, logger *slog.Logger) error {
	tmpl, err := ParseGlossaryTemplate(templatePath, logger)
	if err != nil {
		return fmt.Errorf("ParseGlossaryTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string, logger *slog.Logger) (*template.Template, error) {
	if logger == nil {
		logger = slog.Default()
	}
	funcMap := template.FuncMap{
		"join":  strings.Join,
		"upper": strings.ToUpper,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			logger.Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
