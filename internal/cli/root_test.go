package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveOne(t *testing.T, path string, handler fiber.Handler) *http.Response {
	t.Helper()

	app := fiber.New()
	app.Get(path, handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func stubPingDatabase(t *testing.T, fn func() error) {
	t.Helper()
	original := pingDatabase
	pingDatabase = fn
	t.Cleanup(func() {
		pingDatabase = original
	})
}

func TestHandleHealthPayload(t *testing.T) {
	resp := serveOne(t, "/health", handleHealth)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "midas", payload["service"])
}

func TestHandleUpReturnsOKWhenDatabaseHealthy(t *testing.T) {
	stubPingDatabase(t, func() error {
		return nil
	})

	resp := serveOne(t, "/up", handleUp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleUpReturnsServiceUnavailableWhenPingFails(t *testing.T) {
	stubPingDatabase(t, func() error {
		return errors.New("boom")
	})

	resp := serveOne(t, "/up", handleUp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleVersionReturnsCurrentVersion(t *testing.T) {
	originalVersion := Version
	Version = "1.2.3"
	t.Cleanup(func() {
		Version = originalVersion
	})

	resp := serveOne(t, "/api/version", handleVersion)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "1.2.3", payload["version"])
}

func TestRootCmdRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range RootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"serve", "plan", "user", "seed", "healthcheck"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
