package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/definer/internal/config"
	"github.com/at-ishikawa/definer/internal/dictionary"
	"github.com/at-ishikawa/definer/internal/testutil"
)

func TestOpenDatabase(t *testing.T) {
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })

	cfg, err := loadConfig()
	require.NoError(t, err)

	db, err := openDatabase(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM "+dictionary.DefaultTable))
	assert.Equal(t, 0, count)
}

func TestOpenDatabase_Error(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "postgres"}}
	_, err := openDatabase(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.Open()")
}

func TestNewHTTPServer(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	})
	srv := newHTTPServer(config.ServerConfig{Port: 9090, ReadHeaderTimeoutSeconds: 5}, handler)
	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, "5s", srv.ReadHeaderTimeout.String())

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()
	resp, err := http.Post(ts.URL, "application/x-www-form-urlencoded", strings.NewReader(url.Values{"text": {"apple"}}.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "text=apple", string(got))
}
