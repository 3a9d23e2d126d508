package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pak-index/core/loader"
	"pak-index/core/logger"
	"pak-index/core/middleware/auth"
	"pak-index/core/middleware/rayid"
	"pak-index/feature/cosmetics"
	"pak-index/feature/packages"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the index server",
	Long:  `Extracts every package in the configured directory and serves the index over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		logg := rt.log
		defer logg.Sync()

		if err := rt.cfg.Server.Validate(); err != nil {
			return err
		}

		cosmeticsFeature, err := cosmetics.NewFeature(rt.engine, logg)
		if err != nil {
			return fmt.Errorf("failed to create cosmetics feature: %w", err)
		}
		packagesFeature := packages.NewFeature(rt.engine, rt.catalog, logg)
		packagesFeature.Service().Record(ctx)

		mgr := loader.NewManager()
		mgr.Register(cosmeticsFeature)
		mgr.Register(packagesFeature)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every later log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{
			ApiKey: rt.cfg.Server.ApiKey,
			Public: []string{"/metrics"},
		}))
		app.Get("/metrics", adaptor.HTTPHandler(rt.metrics.Handler()))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(rt.cfg.Server.ShutdownTimeout())
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
