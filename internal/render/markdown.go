package render

import (
	"strings"

	"github.com/at-ishikawa/definer/internal/dictionary"
)

// Markdown renders a response as a markdown fragment ending with a newline.
func Markdown(resp dictionary.Response) string {
	if !resp.HasBlocks() {
		return resp.Text + "\n"
	}

	var sb strings.Builder
	for i, b := range resp.Blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch b.Kind {
		case dictionary.BlockKindHeader:
			sb.WriteString("## " + b.Text + "\n")
		case dictionary.BlockKindDivider:
			sb.WriteString("---\n")
		default:
			sb.WriteString(b.Text + "\n")
		}
	}
	return sb.String()
}
