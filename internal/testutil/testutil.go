// Package testutil provides shared test helpers for creating config files and dictionary fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/definer/internal/dictionary"
)

// ConfigOption configures optional fields of the generated config file.
type ConfigOption func(*testConfig)

type testConfig struct {
	table     string
	serverURL string
}

// WithTable sets database.table.
func WithTable(table string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.table = table
	}
}

// WithServerURL sets client.base_url.
func WithServerURL(url string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.serverURL = url
	}
}

// SetupTestConfig creates a config file backed by a SQLite database under tmpDir
// with auto migration enabled. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		table:     dictionary.DefaultTable,
		serverURL: "http://localhost:8080",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "exports"), 0755))

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
  table: %s
  auto_migrate: true
log:
  level: info
client:
  base_url: %s
  retry_attempts: 0
exports:
  directory: %s
`,
		filepath.Join(tmpDir, "definer.db"),
		cfg.table,
		cfg.serverURL,
		filepath.Join(tmpDir, "exports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CreateEntriesFile writes entries as a YAML list to path.
func CreateEntriesFile(t *testing.T, path string, entries []dictionary.Entry) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	content, err := yaml.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content, 0644))
}
