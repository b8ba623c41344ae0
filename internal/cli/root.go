package cli

import (
	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	fiberzap "github.com/gofiber/contrib/v3/zap"

	"github.com/midas-analytics/midas/internal/config"
	"github.com/midas-analytics/midas/internal/database"
	"github.com/midas-analytics/midas/internal/handlers"
	"github.com/midas-analytics/midas/internal/logging"
)

var Version string

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:   "midas",
	Short: "Marketing analytics for furniture retail",
	Long: `Midas - marketing analytics service.

Midas aggregates ad platform delivery data into campaign dashboards and
runs statistical significance tests over creative A/B experiments.`,
	Version: Version,
	// Default to serve command if no subcommand provided
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return serveDashboard("", "")
		}
		return cmd.Help()
	},
}

// Execute is called by main
func Execute(version string) error {
	Version = version
	RootCmd.Version = version

	return RootCmd.Execute()
}

// serveDashboard runs the Midas server
func serveDashboard(databaseURL, port string) error {
	cfg, err := config.LoadWithOverrides(databaseURL, port)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		logging.Fatal("database URL is required; set DATABASE_URL or database_url in midas.toml")
	}

	logging.L().Info("running database migrations")
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logging.L().Warn("migration warning", zap.Error(err))
	}

	if err := database.ConnectURL(cfg.DatabaseURL); err != nil {
		logging.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if err := database.Close(); err != nil {
			logging.L().Warn("error closing database", zap.Error(err))
		}
	}()

	rollup := database.NewRollupScheduler(cfg.RollupInterval)
	rollup.Start()
	defer rollup.Stop()

	app := fiber.New(fiber.Config{
		AppName: "Midas - marketing analytics",
	})

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logging.L(),
	}))

	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Midas-Version", Version)
		return c.Next()
	})

	app.Get("/health", handleHealth)
	app.Get("/up", handleUp) // Docker health check
	app.Get("/api/version", handleVersion)

	// Dashboard API
	app.Get("/api/overview", handlers.HandleOverview)
	app.Get("/api/campaigns", handlers.HandleCampaigns)
	app.Get("/api/timeseries", handlers.HandleTimeSeries)
	app.Get("/api/pacing", handlers.HandleBudgetPacing)
	app.Get("/api/segments", handlers.HandleSegments)

	// A/B testing API
	app.Get("/api/abtests", handlers.HandleListTests)
	app.Get("/api/abtests/:test_id/results", handlers.HandleTestResults)
	app.Get("/api/abtests/:test_id/winner", handlers.HandleTestWinner)
	app.Post("/api/plan", handlers.HandlePlan)

	logging.L().Info("midas starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}

	return nil
}

// pingDatabase is swapped out in tests
var pingDatabase = func() error {
	return database.DB.Ping()
}

func handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "midas",
	})
}

func handleUp(c fiber.Ctx) error {
	// Returns 200 OK if the server is running and can reach the database
	if err := pingDatabase(); err != nil {
		return c.Status(503).SendString("database unavailable")
	}
	return c.SendStatus(200)
}

func handleVersion(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": Version,
	})
}
