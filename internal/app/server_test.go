//go:build !integration

package app

import (
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewServer(t *testing.T) {
	server := NewServer(okHandler(), "8080")

	require.NotNil(t, server)
	require.NotNil(t, server.httpServer)
	assert.Equal(t, ":8080", server.httpServer.Addr)
	assert.Equal(t, 15*time.Second, server.httpServer.ReadTimeout)
	assert.Equal(t, 5*time.Second, server.httpServer.ReadHeaderTimeout)
	assert.Equal(t, 15*time.Second, server.httpServer.WriteTimeout)
	assert.Equal(t, 60*time.Second, server.httpServer.IdleTimeout)
	assert.Equal(t, 10*time.Second, server.shutdownTimeout)
}

func TestServer_Shutdown_RunsHooksInOrder(t *testing.T) {
	server := NewServer(okHandler(), "0")

	var calls []string
	server.OnShutdown(func() { calls = append(calls, "logger") })
	server.OnShutdown(func() { calls = append(calls, "database") })

	require.NoError(t, server.Shutdown())
	assert.Equal(t, []string{"logger", "database"}, calls)

	// Hooks run once.
	require.NoError(t, server.Shutdown())
	assert.Len(t, calls, 2)
}

func TestServer_Run_WithError(t *testing.T) {
	server := NewServer(okHandler(), "invalid-port")

	hookCalled := make(chan struct{}, 1)
	server.OnShutdown(func() { hookCalled <- struct{}{} })

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	select {
	case err := <-errChan:
		assert.Error(t, err)
		select {
		case <-hookCalled:
		default:
			t.Fatal("shutdown hook not run after listen error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not fail on an invalid port")
	}
}

func TestServer_Run_GracefulShutdown(t *testing.T) {
	server := NewServer(okHandler(), "0")

	hookCalled := false
	server.OnShutdown(func() { hookCalled = true })

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	time.Sleep(100 * time.Millisecond)

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGTERM))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
		assert.True(t, hookCalled)
	case <-time.After(2 * time.Second):
		require.Fail(t, "Server did not shutdown gracefully")
	}
}
