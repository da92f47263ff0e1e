package reconciler

import (
	"io"

	"config-manager/core/diff"
	"config-manager/core/plugin"
	"config-manager/core/reload"

	"go.uber.org/zap"
)

// NewRegistry builds a registry holding one Reconciler per manifest entry.
func NewRegistry(m *plugin.Manifest, differ diff.Differ, reloader reload.Reloader, out io.Writer, logger *zap.Logger) (*plugin.Registry, error) {
	registry := plugin.NewRegistry()
	for _, entry := range m.Plugins {
		r := New(entry.File, entry.Key, differ, reloader,
			WithService(entry.Service),
			WithOutput(out),
			WithLogger(logger),
		)
		if err := registry.Register(r); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
