package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/motion/settings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	scenarioPath string
	ticks        int
)

var rootCmd = &cobra.Command{
	Use:   "motionsim",
	Short: "Run a motion scenario against a box world",
	Long: `motionsim loads a YAML scenario of boxes and moving objects, resolves the motion of every
object tick by tick and prints the final positions together with a digest of them.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&settingsPath, "settings", "c", "motion.toml", "path of the settings file, created if missing")
	rootCmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path of the scenario file")
	rootCmd.Flags().IntVarP(&ticks, "ticks", "t", 0, "amount of ticks to run, overriding the scenario")
	_ = rootCmd.MarkFlagRequired("scenario")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	set, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}
	scenario, err := LoadScenario(scenarioPath)
	if err != nil {
		return err
	}
	if ticks > 0 {
		scenario.Ticks = ticks
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	level, err := logrus.ParseLevel(set.LogLevel)
	if err != nil {
		return fmt.Errorf("settings: log level: %w", err)
	}
	log.SetLevel(level)

	slogLevel := slog.LevelInfo
	if level >= logrus.DebugLevel {
		slogLevel = slog.LevelDebug
	}
	slogger := slog.New(slog.NewTextHandler(log.Out, &slog.HandlerOptions{Level: slogLevel}))

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	sim, err := NewSimulation(ctx, scenario, set, log, slogger)
	if err != nil {
		return err
	}
	defer sim.Close()

	log.Infof("running scenario %s for %d ticks with %d objects", scenario.Name, scenario.Ticks, len(scenario.Objects))
	if err := sim.Run(ctx); err != nil {
		return err
	}

	positions := sim.Positions()
	for _, o := range scenario.Objects {
		log.Infof("%s ended at %v", o.Name, positions[o.Name])
	}
	log.Infof("digest %016x", sim.Digest())
	return nil
}
