package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"cloud.google.com/go/firestore"
	"github.com/rpggio/folio/internal/config"
	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/domain/editor"
	"github.com/rpggio/folio/internal/domain/gate"
	fsstore "github.com/rpggio/folio/internal/firestore"
	"github.com/rpggio/folio/internal/memory"
	"github.com/rpggio/folio/internal/sqlite"
)

// app holds the wired services for one process.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *content.Store
	activity *activity.Service
	editor   *editor.Service
	closers  []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

// newApp loads configuration, opens the configured storage driver and
// initializes the content store.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	a := &app{cfg: cfg}
	a.logger = a.newLogger()

	slots, activityRepo, err := a.openStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	pins, err := gate.NewService(cfg.Admin.PIN, a.logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.store = content.NewStore(content.NewAdapter(slots, cfg.Storage.Slot), a.logger)
	a.store.Initialize(ctx)
	a.activity = activity.NewService(activityRepo, a.logger)
	a.editor = editor.NewService(a.store, pins, a.activity, a.logger)
	return a, nil
}

func (a *app) openStorage(ctx context.Context) (content.SlotRepository, activity.Repository, error) {
	storage := a.cfg.Storage
	switch storage.Driver {
	case config.DriverMemory:
		a.logger.Warn("memory storage driver: edits are lost on exit")
		return memory.NewSlotStore(storage.QuotaBytes), memory.NewActivityStore(), nil

	case config.DriverFirestore:
		client, err := firestore.NewClient(ctx, storage.Firestore.ProjectID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		a.closers = append(a.closers, client)
		a.logger.Info("using firestore storage", "project", storage.Firestore.ProjectID, "collection", storage.Firestore.Collection)
		return fsstore.NewSlotStore(client, storage.Firestore.Collection, storage.QuotaBytes),
			fsstore.NewActivityStore(client, storage.Firestore.ActivityCollection), nil

	default:
		if err := ensureDBDir(a.cfg.DB.Path); err != nil {
			return nil, nil, fmt.Errorf("failed to prepare database path: %w", err)
		}
		db, err := sqlite.New(a.cfg.DB.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.closers = append(a.closers, db)
		if err := db.RunMigrations(); err != nil {
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return sqlite.NewSlotRepository(db, storage.QuotaBytes), sqlite.NewActivityRepository(db), nil
	}
}

func (a *app) newLogger() *slog.Logger {
	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if a.cfg.Transport.Mode == config.TransportStdio {
		logWriter = os.Stderr
	}
	if a.cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(a.cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, file)
			logWriter = fileWriter
		}
	}
	return slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(a.cfg.Log.Level),
	}))
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
