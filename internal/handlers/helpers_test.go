package handlers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"github.com/midas-analytics/midas/internal/database"
)

// setupMockDB swaps the shared pool for a sqlmock connection for the
// duration of the test.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	original := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = original
		_ = db.Close()
	})

	return mock
}

func newTestApp(method, route string, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Add([]string{method}, route, handler)
	return app
}
