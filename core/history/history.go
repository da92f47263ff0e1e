package history

import (
	"context"
	"time"

	"config-manager/core/plugin"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileUpdate records one rewrite of a managed file.
type FileUpdate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ConfigKey string    `gorm:"column:config_key;size:255;index" json:"key"`
	File      string    `gorm:"size:1024" json:"file"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName overrides the GORM table name.
func (FileUpdate) TableName() string {
	return "file_updates"
}

// Migrate creates or updates the history schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&FileUpdate{})
}

// Recorder is the alarm used outside the plugin host: it logs each file
// update and, when a database is available, stores it.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
	keys   map[string]string
	now    func() time.Time
}

var _ plugin.Alarm = (*Recorder)(nil)

// NewRecorder creates a recorder. db may be nil. Keys are resolved from the
// registered plugins by file path.
func NewRecorder(db *gorm.DB, logger *zap.Logger, registry *plugin.Registry) *Recorder {
	keys := make(map[string]string)
	if registry != nil {
		for _, p := range registry.All() {
			keys[p.File()] = p.Key()
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{db: db, logger: logger, keys: keys, now: time.Now}
}

// UpdateFile logs and persists the update. Persistence failures are logged,
// never returned, since the file itself was already rewritten.
func (r *Recorder) UpdateFile(file string) {
	update := FileUpdate{
		ConfigKey: r.keys[file],
		File:      file,
		UpdatedAt: r.now().UTC(),
	}

	r.logger.Info("Managed file updated",
		zap.String("key", update.ConfigKey),
		zap.String("file", file),
	)

	if r.db == nil {
		return
	}
	if err := r.db.Create(&update).Error; err != nil {
		r.logger.Warn("Failed to record file update", zap.String("file", file), zap.Error(err))
	}
}

// Recent returns the latest updates, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]FileUpdate, error) {
	if r.db == nil {
		return []FileUpdate{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	var updates []FileUpdate
	err := r.db.WithContext(ctx).
		Order("updated_at desc").
		Limit(limit).
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

// Enabled reports whether updates are persisted.
func (r *Recorder) Enabled() bool {
	return r.db != nil
}
