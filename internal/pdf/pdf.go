// Package pdf renders exported glossaries as PDF documents.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// pdfPathFor returns the PDF path next to a markdown file.
func pdfPathFor(markdownPath string) (string, error) {
	ext := filepath.Ext(markdownPath)
	if !strings.EqualFold(ext, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}
	return strings.TrimSuffix(markdownPath, ext) + ".pdf", nil
}

// ConvertMarkdownToPDF renders a markdown file with mdtopdf and returns the absolute path
// of the PDF written next to it.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	pdfPath, err := pdfPathFor(markdownPath)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process(%s) > %w", markdownPath, err)
	}

	if absPath, err := filepath.Abs(pdfPath); err == nil {
		return absPath, nil
	}
	return pdfPath, nil
}
