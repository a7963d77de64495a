package datasync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/definer/internal/dictionary"
)

func TestYAMLEntrySink_WriteAll(t *testing.T) {
	tests := []struct {
		name     string
		entries  []dictionary.Entry
		wantYAML string
	}{
		{
			name: "entries use snake_case field names",
			entries: []dictionary.Entry{
				{Term: "api", DisplayTerm: "API", Definition: "application programming interface"},
				{Term: "sla", DisplayTerm: "SLA", Definition: "service level agreement"},
			},
			wantYAML: `- term: api
  display_term: API
  definition: application programming interface
- term: sla
  display_term: SLA
  definition: service level agreement
`,
		},
		{
			name:    "nil entries",
			entries: nil,
			wantYAML: `[]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			sink := NewYAMLEntrySink(dir)

			err := sink.WriteAll(tt.entries)
			require.NoError(t, err)

			got, err := os.ReadFile(filepath.Join(dir, EntriesFileName))
			require.NoError(t, err)
			assert.Equal(t, tt.wantYAML, string(got))
		})
	}

	t.Run("MkdirAll error returns error", func(t *testing.T) {
		dir := t.TempDir()
		filePath := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))

		sink := NewYAMLEntrySink(filepath.Join(filePath, "subdir"))
		err := sink.WriteAll(nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "create output directory")
	})

	t.Run("writeYAML error returns error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, EntriesFileName), 0o755))

		sink := NewYAMLEntrySink(dir)
		err := sink.WriteAll([]dictionary.Entry{{Term: "api"}})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "write dictionary.yml")
	})
}

func TestReadYAMLEntries(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		want            []dictionary.Entry
		wantErrorString string
	}{
		{
			name: "entries",
			content: `- term: api
  display_term: API
  definition: application programming interface
- display_term: SLA
  definition: service level agreement
`,
			want: []dictionary.Entry{
				{Term: "api", DisplayTerm: "API", Definition: "application programming interface"},
				{DisplayTerm: "SLA", Definition: "service level agreement"},
			},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
		{
			name: "unknown field",
			content: `- term: api
  meaning: x
`,
			wantErrorString: "field meaning not found",
		},
		{
			name:            "not a list",
			content:         "term: api\n",
			wantErrorString: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), EntriesFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := ReadYAMLEntries(path)
			if tt.wantErrorString != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadYAMLEntries(filepath.Join(t.TempDir(), "missing.yml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestYAMLEntrySink_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	entries := []dictionary.Entry{
		{Term: "k8s", DisplayTerm: "K8s", Definition: "kubernetes: a container orchestrator"},
	}
	sink := NewYAMLEntrySink(dir)
	require.NoError(t, sink.WriteAll(entries))

	got, err := ReadYAMLEntries(sink.Path())
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
