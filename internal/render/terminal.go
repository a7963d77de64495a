package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/at-ishikawa/definer/internal/dictionary"
)

// Terminal prints responses for a person reading a terminal.
type Terminal struct {
	writer io.Writer
	bold   *color.Color
	faint  *color.Color
}

// NewTerminal creates a new Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{
		writer: w,
		bold:   color.New(color.Bold),
		faint:  color.New(color.Faint),
	}
}

// Print writes resp followed by a newline.
func (t *Terminal) Print(resp dictionary.Response) error {
	if !resp.HasBlocks() {
		_, err := fmt.Fprintln(t.writer, resp.Text)
		return err
	}

	width := 0
	for _, b := range resp.Blocks {
		width = max(width, utf8.RuneCountInString(b.Text))
	}
	for _, b := range resp.Blocks {
		var err error
		switch b.Kind {
		case dictionary.BlockKindHeader:
			_, err = t.bold.Fprintln(t.writer, b.Text)
		case dictionary.BlockKindDivider:
			_, err = t.faint.Fprintln(t.writer, strings.Repeat("-", max(width, 3)))
		default:
			_, err = fmt.Fprintln(t.writer, b.Text)
		}
		if err != nil {
			return fmt.Errorf("fmt.Fprintln > %w", err)
		}
	}
	return nil
}
