package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/trililingo/trililingo-api/assets"
	"github.com/trililingo/trililingo-api/internal/config"
	"github.com/trililingo/trililingo-api/internal/content"
	"github.com/trililingo/trililingo-api/internal/domain/srs"
	"github.com/trililingo/trililingo-api/internal/platform/logger"
	"github.com/trililingo/trililingo-api/internal/platform/sqlite"
	"github.com/trililingo/trililingo-api/internal/service/prefs"
	"github.com/trililingo/trililingo-api/internal/service/study"
	"github.com/trililingo/trililingo-api/internal/store"
	"github.com/trililingo/trililingo-api/internal/task"
)

// application holds the wired dependencies for the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	itemStore    store.ItemStore
	prefsService *prefs.Service
	studyService *study.Service
	flusher      *task.Flusher
}

// newApplication loads config, sets up logging, opens and migrates the
// database, seeds the content catalog, and wires the services.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_path", cfg.Database.Path)

	db, err := sqlite.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := sqlite.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	itemStore := sqlite.NewItemStore(db, log)
	stateStore := sqlite.NewRepetitionStateStore(db, log)
	sessionStore := sqlite.NewSessionStore(db, log)
	attemptStore := sqlite.NewAttemptStore(db, log)
	eventStore := sqlite.NewSyncEventStore(db, log)
	kvStore := sqlite.NewKVStore(db)
	prefsStore := sqlite.NewPrefsStore(kvStore, log)

	loader := content.NewLoader(assets.Packs, assets.PacksRoot, log)

	// Apply the catalog in one transaction so a crash mid-seed never
	// leaves items without their default repetition states.
	err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		seeder := content.NewSeeder(loader,
			itemStore.WithTx(tx), stateStore.WithTx(tx), kvStore.WithTx(tx), log)
		return seeder.EnsureSeeded(ctx, false)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed content: %w", err)
	}

	nowMs := func() int64 { return time.Now().UnixMilli() }

	prefsService := prefs.NewService(prefsStore, nowMs, log)
	studyService := study.NewService(
		itemStore,
		stateStore,
		sessionStore,
		attemptStore,
		eventStore,
		prefsService,
		srs.NewDefaultStrategy(),
		study.Config{
			DailyLength:    cfg.Study.DailyLength,
			PracticeLength: cfg.Study.PracticeLength,
			OptionCount:    cfg.Study.OptionCount,
		},
		nowMs,
		log,
	)

	flusher := task.NewFlusher(eventStore, task.FlusherConfig{
		Interval:  cfg.Sync.FlushInterval,
		BatchSize: cfg.Sync.BatchSize,
	}, log)

	return &application{
		config:       cfg,
		logger:       log,
		db:           db,
		itemStore:    itemStore,
		prefsService: prefsService,
		studyService: studyService,
		flusher:      flusher,
	}, nil
}

// cleanup releases resources on shutdown.
func (app *application) cleanup() {
	app.flusher.Stop()
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
