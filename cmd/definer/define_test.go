package main

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/definer/internal/config"
	"github.com/at-ishikawa/definer/internal/database"
	"github.com/at-ishikawa/definer/internal/dictionary"
	"github.com/at-ishikawa/definer/internal/server"
	"github.com/at-ishikawa/definer/internal/testutil"
	"github.com/at-ishikawa/definer/schemas"
)

func TestDefineCommand(t *testing.T) {
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "empty dictionary",
			args: []string{"define"},
			want: "There seem to be no words available.\n",
		},
		{
			name: "save",
			args: []string{"define", "SLA=service", "level", "agreement"},
			want: "SLA\n-------------------------------------\nWas saved as: service level agreement\n",
		},
		{
			name: "look up",
			args: []string{"define", "sla"},
			want: "SLA\n--------------------------------------\nIs defined as: service level agreement\n",
		},
		{
			name: "look up as markdown",
			args: []string{"define", "sla", "--output", "markdown"},
			want: "## SLA\n\n---\n\nIs defined as: service level agreement\n",
		},
		{
			name: "list",
			args: []string{"define"},
			want: "SLA\n",
		},
		{
			name: "delete",
			args: []string{"define", "sla="},
			want: "sla has been deleted\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := executeCommand(t, "", append(tt.args, "--config", cfgPath)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestREPLCommand(t *testing.T) {
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())

	got, err := executeCommand(t, "API=application programming interface\napi\n:quit\n", "repl", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, got, "Was saved as: application programming interface\n")
	assert.Contains(t, got, "Is defined as: application programming interface\n")
}

func TestRemoteCommand(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = database.Migrate(t.Context(), db, schemas.Migrations, dictionary.DefaultTable)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	executor := dictionary.NewExecutor(dictionary.NewDBRepository(db, dictionary.DefaultTable), logger)
	ts := httptest.NewServer(server.NewMux(config.ServerConfig{SlashCommandPath: "/slack/commands"}, executor, logger))
	t.Cleanup(ts.Close)

	cfgPath := testutil.SetupTestConfig(t, t.TempDir(), testutil.WithServerURL(ts.URL))

	got, err := executeCommand(t, "", "remote", "K8s=kubernetes", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "K8s\n------------------------\nWas saved as: kubernetes\n", got)

	got, err = executeCommand(t, "", "remote", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "K8s\n", got)

	got, err = executeCommand(t, "", "remote", "k8s", "-o", "markdown", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "## K8s\n\n---\n\nIs defined as: kubernetes\n", got)

	t.Run("server flag overrides the config", func(t *testing.T) {
		_, err := executeCommand(t, "", "remote", "k8s", "--config", cfgPath, "--server", "http://127.0.0.1:1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client.Execute(http://127.0.0.1:1)")
	})
}

func TestOutputFormat_Set(t *testing.T) {
	var format OutputFormat
	require.NoError(t, format.Set("markdown"))
	assert.Equal(t, OutputFormatMarkdown, format)

	err := format.Set("html")
	require.Error(t, err)
	assert.Equal(t, "invalid output format: html", err.Error())
	assert.Equal(t, OutputFormatMarkdown, format)
}

func TestRequestText(t *testing.T) {
	assert.Nil(t, requestText(nil))
	got := requestText([]string{"word=a", "long", "text"})
	require.NotNil(t, got)
	assert.Equal(t, "word=a long text", *got)
}
