// Command battlestats replays a recorded encounter through the battle stats
// tracker using an in-memory game host.
//
// Usage:
//
//	battlestats -scenario scenarios/bandit_ambush.yaml [-realtime]
//
// The config path is read from BATTLESTATS_CONFIG (default config/battlestats.yaml);
// variables from .env are loaded first.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/battlestats/internal/battle"
	"github.com/udisondev/battlestats/internal/config"
	"github.com/udisondev/battlestats/internal/events"
	"github.com/udisondev/battlestats/internal/host/sim"
	"github.com/udisondev/battlestats/internal/tracker"
)

func main() {
	scenarioPath := flag.String("scenario", "scenarios/bandit_ambush.yaml", "scenario YAML file to replay")
	realtime := flag.Bool("realtime", false, "replay waits on the wall clock instead of a virtual one")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, *scenarioPath, *realtime); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, scenarioPath string, realtime bool) error {
	if err := config.LoadEnvFiles(); err != nil {
		return err
	}

	cfgPath := config.ConfigPath()
	cfg, err := config.LoadTracker(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.ApplyEnv(&cfg)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("config loaded", "path", cfgPath, "log_level", cfg.LogLevel)

	sc, err := sim.LoadScenario(scenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	world := sim.NewWorld()
	if err := sc.Populate(world); err != nil {
		return fmt.Errorf("populating world: %w", err)
	}

	loopOpts := []events.Option{events.WithQueueSize(cfg.QueueSize)}
	var (
		timeline  sim.Timeline = sim.RealTimeline{}
		trackOpts []tracker.Option
	)
	if !realtime {
		clock := sim.NewClock(time.Now())
		timeline = sim.VirtualTimeline{Clock: clock}
		loopOpts = append(loopOpts, events.WithAfterFunc(clock.AfterFunc))
		trackOpts = append(trackOpts, tracker.WithClock(clock.Now))
	}

	loop := events.NewLoop(loopOpts...)
	tracker.New(battle.NewStore(), world, sim.NewConsoleUI(os.Stdout), loop, cfg, trackOpts...).Register()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := loop.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("event loop: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer loop.Stop()
		if err := sim.NewReplayer(loop, world, timeline).Replay(gctx, sc); err != nil {
			return fmt.Errorf("replaying %s: %w", scenarioPath, err)
		}
		return nil
	})

	return g.Wait()
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
