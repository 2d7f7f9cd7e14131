package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/eashang1/terminal-s8/agent"
	"github.com/eashang1/terminal-s8/config"
	"github.com/eashang1/terminal-s8/ipc"
	"github.com/eashang1/terminal-s8/logging"
	"github.com/eashang1/terminal-s8/model"
	"github.com/eashang1/terminal-s8/recorder"
	"github.com/eashang1/terminal-s8/rules"
	"github.com/eashang1/terminal-s8/strategy"
)

const banner = `
 ___ _   _ _  _ _  _ ___ _
| __| | | | \| | \| | __| |
| _|| |_| | .' | .' | _|| |__
|_|  \___/|_|\_|_|\_|___|____|

Funnel Defense for Terminal`

func main() {
	if err := run(); err != nil {
		slog.Error("funnel stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".", executableDir())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var logFile io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logFile = f
	}
	// stdout belongs to the engine
	logging.Setup(os.Stderr, logFile, cfg.LogLevel)
	fmt.Fprintln(os.Stderr, banner)
	slog.Info("starting funnel", "config", config.ConfigFile(), "level", cfg.LogLevel)

	doctrine := rules.DefaultDoctrine()
	buildRules := rules.CompileDoctrine(doctrine)
	if len(cfg.Placement.Rules) > 0 {
		buildRules = cfg.Placement.Rules
		slog.Info("using placement rules from config", "rules", len(buildRules))
	}
	build, err := rules.NewEngine(buildRules)
	if err != nil {
		return fmt.Errorf("compile placement rules: %w", err)
	}
	waves, err := rules.NewEngine(rules.CompileOffense(doctrine))
	if err != nil {
		return fmt.Errorf("compile offense rules: %w", err)
	}
	slog.Debug("rules compiled", "doctrine", doctrine.Name, "placement", build.Names(), "offense", waves.Names())

	orchestrator, err := agent.NewOrchestrator(agent.Planners{
		Placement:     strategy.NewPlacement(build),
		Reinforcement: strategy.NewReinforcement(doctrine, cfg.Reinforcement.HistoryLimit),
		Offense:       strategy.NewOffense(waves, []model.Coordinate{doctrine.MainLane, doctrine.ForwardLane}, cfg.Offense.Options()),
	})
	if err != nil {
		return err
	}

	rec, err := recorder.New(cfg.Recorder)
	if err != nil {
		return fmt.Errorf("open recorder: %w", err)
	}
	defer rec.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Unblock the read loop on shutdown.
	go func() {
		<-ctx.Done()
		os.Stdin.Close()
	}()

	conn := ipc.NewConnection(os.Stdin, os.Stdout, nil)
	agent.New(conn, orchestrator, rec).Register(conn)

	if err := conn.ReadLoop(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	slog.Info("shutting down")
	return nil
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
