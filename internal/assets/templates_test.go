package assets

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGlossaryTemplate(t *testing.T) {
	tests := []struct {
		name         string
		templatePath func(t *testing.T) string

		wantTemplateName string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`{{ .Title }}`), 0644))
				return templatePath
			},
			wantTemplateName: "custom.md.go.tmpl",
		},
		{
			name: "uses embedded template when file doesn't exist",
			templatePath: func(t *testing.T) string {
				return "/non/existent/glossary.md.go.tmpl"
			},
			wantTemplateName: "glossary.md.go.tmpl",
		},
		{
			name: "uses embedded template when path is empty",
			templatePath: func(t *testing.T) string {
				return ""
			},
			wantTemplateName: "glossary.md.go.tmpl",
		},
		{
			name: "uses embedded template when filesystem template is invalid",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "invalid.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`Bad: {{ .Unclosed`), 0644))
				return templatePath
			},
			wantTemplateName: "glossary.md.go.tmpl",
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseGlossaryTemplate(tt.templatePath(t), logger)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplateName, tmpl.Name())
		})
	}
}

func TestWriteGlossary(t *testing.T) {
	tests := []struct {
		name string
		data GlossaryTemplate
		want string
	}{
		{
			name: "sections and entries",
			data: GlossaryTemplate{
				Title: "Glossary",
				Date:  time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
				Sections: []GlossarySection{
					{
						Letter: "A",
						Entries: []GlossaryEntry{
							{DisplayTerm: "API", Definition: "application programming interface"},
						},
					},
				},
			},
			want: "# Glossary\n\n_Exported on 2026-10-19_\n\n## A\n\n**API**\n\napplication programming interface\n\n\n",
		},
		{
			name: "no sections",
			data: GlossaryTemplate{Title: "Glossary"},
			want: "# Glossary\n\nThere seem to be no words available.\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteGlossary(&buf, "", tt.data, nil))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	t.Run("execution error", func(t *testing.T) {
		templatePath := filepath.Join(t.TempDir(), "broken.md.go.tmpl")
		require.NoError(t, os.WriteFile(templatePath, []byte(`{{ .Missing }}`), 0644))

		var buf bytes.Buffer
		err := WriteGlossary(&buf, templatePath, GlossaryTemplate{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tmpl.Execute()")
	})
}
