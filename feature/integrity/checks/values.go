package checks

import (
	"context"
	"errors"
	"os"

	"config-manager/core/plugin"
	"config-manager/core/source"

	"go.uber.org/zap"
)

// CheckValues returns the keys that have no value in src.
func CheckValues(ctx context.Context, plugins []plugin.Plugin, src source.Source) ([]string, error) {
	missing := []string{}
	for _, p := range plugins {
		_, err := src.Get(ctx, p.Key())
		if errors.Is(err, source.ErrNotFound) {
			missing = append(missing, p.Key())
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return missing, nil
}

// SeedValues stores the current content of each managed file as the value
// for the missing keys. Files that cannot be read are skipped. It returns
// the keys that were seeded.
func SeedValues(ctx context.Context, plugins []plugin.Plugin, w source.Writer, logger *zap.Logger, missing []string) ([]string, error) {
	byKey := make(map[string]plugin.Plugin, len(plugins))
	for _, p := range plugins {
		byKey[p.Key()] = p
	}

	seeded := []string{}
	for _, key := range missing {
		p, ok := byKey[key]
		if !ok {
			continue
		}

		data, err := os.ReadFile(p.File())
		if err != nil {
			logger.Warn("Cannot seed value from unreadable file",
				zap.String("key", key),
				zap.String("file", p.File()),
				zap.Error(err),
			)
			continue
		}

		if err := w.Put(ctx, key, string(data)); err != nil {
			logger.Error("Failed to seed value", zap.String("key", key), zap.Error(err))
			return seeded, err
		}
		logger.Info("Seeded value from managed file", zap.String("key", key), zap.String("file", p.File()))
		seeded = append(seeded, key)
	}
	return seeded, nil
}
