// Command srw-engine runs the battle simulator as an interactive console.
// Commands are read from stdin and routed through the dispatcher; the
// auto-play agent and enemy turns run in the background. Progress is
// checkpointed to the configured storage backend and resumed on restart.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srw-lite/engine/internal/battle"
	"github.com/srw-lite/engine/internal/config"
	"github.com/srw-lite/engine/internal/data"
	"github.com/srw-lite/engine/internal/delegation"
	"github.com/srw-lite/engine/internal/dispatcher"
	"github.com/srw-lite/engine/internal/logging"
	"github.com/srw-lite/engine/internal/narration"
	otelsetup "github.com/srw-lite/engine/internal/otel"
	"github.com/srw-lite/engine/internal/persist"
	"github.com/srw-lite/engine/internal/position"
	"github.com/srw-lite/engine/internal/scenario"
	"github.com/srw-lite/engine/internal/session"
	"github.com/srw-lite/engine/internal/stats"
	"github.com/srw-lite/engine/internal/storage"
	"github.com/srw-lite/engine/internal/storage/gormstore"
	"github.com/srw-lite/engine/internal/storage/memory"
	"github.com/srw-lite/engine/internal/unit"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Load("."); err != nil {
		return err
	}
	log := logging.NewDefault(config.GetString("logLevel"))

	seed := config.GetInt64("rng.seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Separate generators: the session's runs under its lock, the agent's
	// runs on the agent goroutine.
	sessionRng := rand.New(rand.NewSource(seed))
	agentRng := rand.New(rand.NewSource(seed + 1))

	otelCfg := otelsetup.Config{
		Enabled:        config.GetBool("otel.enabled"),
		ServiceName:    config.GetString("otel.serviceName"),
		ExportInterval: time.Duration(config.GetInt("otel.exportIntervalSec")) * time.Second,
		Endpoint:       config.GetString("otel.endpoint"),
		Insecure:       config.GetBool("otel.insecure"),
	}
	if path := config.GetString("otel.metricsFile"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening metrics file: %w", err)
		}
		defer f.Close()
		otelCfg.MetricWriter = f
	}
	otelProvider, err := otelsetup.New(otelCfg)
	if err != nil {
		return fmt.Errorf("configuring telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()

	store, err := openStorage(config.Storage())
	if err != nil {
		return fmt.Errorf("creating storage backend: %w", err)
	}
	if err := store.Init(); err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()
	log.Info().Str("type", config.Storage().Type).Msg("storage ready")

	gateway := persist.NewGateway(store, config.GetString("save.slot"), log)

	cat := data.Default()
	eng := stats.NewEngine(cat)
	stepDelay := time.Duration(config.GetInt("automation.stepDelayMs")) * time.Millisecond
	deps := session.Deps{
		Catalog:   cat,
		Stats:     eng,
		Factory:   unit.NewFactory(cat, eng, position.NewRandomSource(sessionRng)),
		Resolver:  battle.NewResolver(sessionRng),
		Director:  scenario.NewDirector(cat),
		Narrator:  narration.NewCanned(sessionRng),
		Gateway:   gateway,
		Log:       log,
		StepDelay: stepDelay,
	}

	sess, err := loadOrStart(deps, gateway)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agent := delegation.New(sess, log, stepDelay, config.GetFloat64("automation.spiritChance"), agentRng)
	go agent.Run(ctx)

	disp, err := dispatcher.New(logging.NewDispatcherLogger(log))
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}
	repl := newREPL(sess, disp, log)
	repl.registerHandlers()

	repl.loop(ctx)

	if err := sess.SaveNow(); err != nil {
		log.Error().Err(err).Msg("final save failed")
	} else {
		log.Info().Msg("progress saved")
	}
	return nil
}

// openStorage selects the storage backend from configuration.
func openStorage(cfg config.StorageConfig) (storage.Backend, error) {
	switch cfg.Type {
	case "postgres":
		return gormstore.NewPostgres(cfg.Postgres.DSN)
	case "sqlite":
		return gormstore.NewSqlite(cfg.Sqlite.Path)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

func loadOrStart(deps session.Deps, gateway *persist.Gateway) (*session.Session, error) {
	saved, err := gateway.Load()
	if err != nil {
		return nil, fmt.Errorf("loading save: %w", err)
	}
	if saved != nil {
		sess, err := session.Restore(deps, saved)
		if err == nil {
			return sess, nil
		}
		deps.Log.Warn().Err(err).Msg("checkpoint unusable, starting fresh")
	}
	return session.New(deps)
}
