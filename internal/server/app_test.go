package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/guestbook/internal/logging"
	"github.com/dmitrijs2005/guestbook/internal/server/config"
	"github.com/dmitrijs2005/guestbook/internal/server/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = filepath.Join(t.TempDir(), "data", "entries.db")
	c.StaticDir = t.TempDir()
	c.Workers = 2
	c.ShutdownPollInterval = 10 * time.Millisecond
	c.ShutdownPolls = 100
	return c
}

func TestNewApp_FailsWhenStoreCannotOpen(t *testing.T) {
	c := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	c.DatabaseDSN = filepath.Join(blocker, "sub", "entries.db")

	_, err := newApp(context.Background(), c, logging.Nop())
	assert.Error(t, err)
}

func TestApp_RunListener_CleanShutdown(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(c.StaticDir, "index.html"), []byte("hello"), 0o600))

	app, err := newApp(context.Background(), c, logging.Nop())
	require.NoError(t, err)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- app.RunListener(ctx, l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/")
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", string(b))

	resp, err = http.Get("http://" + l.Addr().String() + "/visitor_count")
	require.NoError(t, err)
	b, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "0", string(b))

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunListener did not return")
	}
	assert.Equal(t, lifecycle.Stopped, app.coordinator.State())
}

func TestApp_CounterDisabled(t *testing.T) {
	c := testConfig(t)
	c.VisitorCounter = false

	app, err := newApp(context.Background(), c, logging.Nop())
	require.NoError(t, err)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- app.RunListener(ctx, l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/visitor_count")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	assert.NoError(t, <-errc)
}
