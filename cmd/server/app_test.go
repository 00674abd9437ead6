package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, mr *miniredis.Miniredis) *config.Config {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            3000,
			LogLevel:        "debug",
			ShutdownTimeout: 5 * time.Second,
		},
		Store: config.StoreConfig{
			Driver:         config.DriverRedis,
			Host:           mr.Host(),
			Port:           port,
			Name:           "tasks",
			ConnectTimeout: 2 * time.Second,
		},
		Writes: config.WritesConfig{Workers: 2, QueueSize: 10},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*application, *logger.TestLogBuffer) {
	t.Helper()
	testLogger, logBuf := logger.GetTestLogger(t)

	app, err := newApplication(context.Background(), cfg, testLogger)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app, logBuf
}

func TestTaskLifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	app, _ := newTestApp(t, testConfig(t, mr))
	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}

	resp, err := client.PostForm(srv.URL+"/tasks", url.Values{"text": {"buy milk"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/tasks", resp.Header.Get("Location"))

	stored := hkeys(t, mr)
	require.Len(t, stored, 1)
	assert.Equal(t, "buy milk", mr.HGet("tasks", stored[0]))

	page := get(t, client, srv.URL+"/tasks")
	assert.Contains(t, page, "buy milk")
	assert.Contains(t, page, "/tasks/delete/"+stored[0])

	resp, err = client.Post(srv.URL+"/tasks/delete/"+stored[0], "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Empty(t, hkeys(t, mr))

	resp, err = client.Post(srv.URL+"/tasks/delete/000000000000000000000000", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/tasks", resp.Header.Get("Location"))
}

func TestGreetingRoutes(t *testing.T) {
	mr := miniredis.RunT(t)
	app, logBuf := newTestApp(t, testConfig(t, mr))
	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)

	assert.Equal(t, "Hello World", get(t, http.DefaultClient, srv.URL+"/"))
	assert.Equal(t, "Hello, hello world!", get(t, http.DefaultClient, srv.URL+"/hello%20world"))
	assert.Contains(t, get(t, http.DefaultClient, srv.URL+"/index"), "John Doe")

	logger.AssertLogContains(t, logBuf, "trace_id")
	logger.AssertLogContains(t, logBuf, "request completed")
}

func TestDetachedWritesAreDrainedOnCleanup(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, mr)
	cfg.Writes.Detached = true

	testLogger, _ := logger.GetTestLogger(t)
	app, err := newApplication(context.Background(), cfg, testLogger)
	require.NoError(t, err)
	require.NotNil(t, app.writer)

	srv := httptest.NewServer(app.setupRouter())
	defer srv.Close()

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	for _, text := range []string{"one", "two", "three"} {
		resp, err := client.PostForm(srv.URL+"/tasks", url.Values{"text": {text}})
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	}

	app.cleanup()
	assert.Len(t, hkeys(t, mr), 3)
}

func TestStartupWithUnreachableStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, mr)
	cfg.Store.Port = 1
	cfg.Store.Host = "127.0.0.1"

	app, logBuf := newTestApp(t, cfg)
	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)

	assert.Equal(t, "Hello World", get(t, http.DefaultClient, srv.URL+"/"))
	assert.Contains(t, get(t, http.DefaultClient, srv.URL+"/tasks"), "No tasks yet.")
	logger.AssertLogContains(t, logBuf, "store connection failed")
}

func TestUnsupportedDriver(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, mr)
	cfg.Store.Driver = "mongodb"

	testLogger, _ := logger.GetTestLogger(t)
	_, err := newApplication(context.Background(), cfg, testLogger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported store driver "mongodb"`)
}

func TestServeFailsWhenPortIsTaken(t *testing.T) {
	mr := miniredis.RunT(t)
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	cfg := testConfig(t, mr)
	cfg.Server.Port = taken.Addr().(*net.TCPAddr).Port

	app, _ := newTestApp(t, cfg)
	err = app.serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	mr := miniredis.RunT(t)
	app, logBuf := newTestApp(t, testConfig(t, mr))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.serveListener(ctx, app.newHTTPServer(app.setupRouter()), ln)
	}()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	logger.AssertLogContains(t, logBuf, "server shutdown completed")
}

func get(t *testing.T, client *http.Client, target string) string {
	t.Helper()
	resp, err := client.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb bytes.Buffer
	_, err = sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	return sb.String()
}

func hkeys(t *testing.T, mr *miniredis.Miniredis) []string {
	t.Helper()
	if !mr.Exists("tasks") {
		return nil
	}
	keys, err := mr.HKeys("tasks")
	require.NoError(t, err)
	return keys
}
