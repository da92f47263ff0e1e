package cmd

import (
	"fmt"
	"io"

	"config-manager/core/command"
	"config-manager/core/config"
	"config-manager/core/database"
	"config-manager/core/diff"
	"config-manager/core/history"
	"config-manager/core/logger"
	"config-manager/core/plugin"
	"config-manager/core/reload"
	"config-manager/core/source"
	"config-manager/core/storage"
	"config-manager/feature/reconciler"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// session bundles everything a command needs to work on managed files.
type session struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *plugin.Registry
	source   source.Source
	recorder *history.Recorder
	db       *gorm.DB
}

// setup loads configuration and wires the managed file registry. Drift
// reports produced by status checks are written to out.
func setup(out io.Writer) (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	manifest, err := plugin.LoadManifest(cfg.Plugins.Manifest)
	if err != nil {
		return nil, err
	}

	runner := command.NewRunner(logg)
	reloader, err := reload.New(cfg.Reload, runner, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create reloader: %w", err)
	}

	registry, err := reconciler.NewRegistry(manifest, diff.NewExecDiffer(runner), reloader, out, logg)
	if err != nil {
		return nil, err
	}

	var client storage.Client
	if cfg.Source.Kind == source.KindObject {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	src, err := source.New(cfg.Source, client, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}

	// History is optional; without a database updates are only logged.
	var db *gorm.DB
	if cfg.Database.Driver != "" {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else if err := history.Migrate(conn); err != nil {
			logg.Warn("Failed to migrate history schema", zap.Error(err))
		} else {
			db = conn
		}
	}

	return &session{
		cfg:      cfg,
		logger:   logg,
		registry: registry,
		source:   src,
		recorder: history.NewRecorder(db, logg, registry),
		db:       db,
	}, nil
}

// close flushes the logger and releases the database.
func (s *session) close() {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = s.logger.Sync()
}
