package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sioemitter/pkg/httpserver"
)

func startServer(t *testing.T, ctx context.Context, srv *httpserver.Server, h http.Handler, started <-chan string) (string, <-chan error) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()

	select {
	case addr := <-started:
		return addr, done
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
	return "", done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("run did not finish")
	}
	return nil
}

func TestRunAndCancel(t *testing.T) {
	t.Parallel()

	started := make(chan string, 1)
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithShutdownTimeout(100*time.Millisecond),
		httpserver.WithOnStart(func(addr string) { started <- addr }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, done := startServer(t, ctx, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}), started)
	assert.Equal(t, addr, srv.Addr())

	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	cancel()
	require.NoError(t, waitDone(t, done))
	require.NoError(t, srv.Shutdown(context.Background()), "repeated shutdown is a no-op")
}

func TestManualShutdownRunsOnStop(t *testing.T) {
	t.Parallel()

	started := make(chan string, 1)
	var stopped atomic.Bool
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithShutdownTimeout(100*time.Millisecond),
		httpserver.WithOnStart(func(addr string) { started <- addr }),
		httpserver.WithOnStop(func(context.Context) { stopped.Store(true) }),
	)

	_, done := startServer(t, context.Background(), srv, http.NewServeMux(), started)
	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, waitDone(t, done))
	assert.True(t, stopped.Load())
}

func TestStartError(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr(":invalid"))
	err := srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.Empty(t, srv.Addr())
}

func TestRunAfterListenFailure(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := busy.Addr().String()

	started := make(chan string, 1)
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		httpserver.WithOnStart(func(bound string) { started <- bound }),
	)

	err = srv.Run(context.Background(), nil)
	require.ErrorIs(t, err, httpserver.ErrStart)
	assert.NotErrorIs(t, err, httpserver.ErrAlreadyRunning)

	require.NoError(t, busy.Close())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got, done := startServer(t, ctx, srv, http.NewServeMux(), started)
	assert.Equal(t, addr, got)

	cancel()
	require.NoError(t, waitDone(t, done))
}

func TestAlreadyRunning(t *testing.T) {
	t.Parallel()

	started := make(chan string, 1)
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		httpserver.WithOnStart(func(addr string) { started <- addr }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, done := startServer(t, ctx, srv, http.NewServeMux(), started)

	err := srv.Run(context.Background(), http.NewServeMux())
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)

	cancel()
	require.NoError(t, waitDone(t, done))
}

func TestShutdownBeforeRun(t *testing.T) {
	t.Parallel()

	srv := httpserver.New()
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	started := make(chan string, 1)
	srv := httpserver.NewFromConfig(httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: 50 * time.Millisecond},
		httpserver.WithOnStart(func(addr string) { started <- addr }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	_, done := startServer(t, ctx, srv, http.NewServeMux(), started)
	cancel()
	require.NoError(t, waitDone(t, done))
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { httpserver.WithAddr("") })
	assert.Panics(t, func() { httpserver.WithReadTimeout(0) })
	assert.Panics(t, func() { httpserver.WithWriteTimeout(-1) })
	assert.Panics(t, func() { httpserver.WithIdleTimeout(0) })
	assert.Panics(t, func() { httpserver.WithShutdownTimeout(0) })
	assert.Panics(t, func() { httpserver.WithOnStart(nil) })
	assert.Panics(t, func() { httpserver.WithOnStop(nil) })
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpserver.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("redis down") }

	tests := []struct {
		name   string
		checks []httpserver.Check
		code   int
		body   string
	}{
		{"no checks", nil, http.StatusOK, "READY"},
		{"all pass", []httpserver.Check{ok, ok}, http.StatusOK, "READY"},
		{"one fails", []httpserver.Check{ok, fail}, http.StatusServiceUnavailable, "NOT_READY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			httpserver.ReadinessHandler(nil, tt.checks...)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			assert.Equal(t, tt.code, rec.Code)
			body, err := io.ReadAll(rec.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestReadinessHandler_UsesRequestContext(t *testing.T) {
	t.Parallel()

	var deadline atomic.Bool
	check := func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		deadline.Store(ok)
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	httpserver.ReadinessHandler(nil, check)(rec, req)

	assert.True(t, deadline.Load())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
