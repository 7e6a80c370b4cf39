package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tintd/tintd/config"
	"github.com/tintd/tintd/dbusapi"
	"github.com/tintd/tintd/display"
	"github.com/tintd/tintd/engine"
	"github.com/tintd/tintd/solar"
)

var runVerbose bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the adjustment daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if runVerbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, v, err := config.Load(path)
		if err != nil {
			return err
		}

		backend, changes, err := display.NewX11(cfg.Display, logger)
		if err != nil {
			return fmt.Errorf("connect to X display: %w", err)
		}
		defer backend.Close()

		eng := engine.New(backend, cfg.Tick, logger)
		defer eng.Close()
		for _, id := range eng.Displays() {
			logger.Info("managing display", "display", id)
		}

		var schedule *solar.Schedule
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		if cfg.Solar.Enabled {
			schedule = solar.New(cfg.Solar.Params())
			go schedule.Run(ctx, eng, logger)
			logger.Info("solar schedule enabled",
				"latitude", cfg.Solar.Latitude, "longitude", cfg.Solar.Longitude)
		}

		config.Watch(v, func(cfg *config.Config) {
			if schedule != nil && cfg.Solar.Enabled {
				schedule.Update(cfg.Solar.Params())
				logger.Info("config reloaded")
			}
		})

		svc, err := dbusapi.Listen(eng, schedule, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		for {
			select {
			case <-changes:
				logger.Debug("display change notification")
				eng.CaptureBaselines()
				eng.Refresh()
			case sig := <-sigCh:
				logger.Info("shutting down, restoring baselines", "signal", sig)
				eng.ResetAll()
				return nil
			}
		}
	},
}

func init() {
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "enable debug logs")
}
