package drift

import (
	"context"
	"errors"
	"sync"

	"config-manager/core/history"
	"config-manager/core/plugin"
	"config-manager/core/reconcile"
	"config-manager/core/source"

	"go.uber.org/zap"
)

// PluginInfo describes a managed file.
type PluginInfo struct {
	Key  string `json:"key"`
	File string `json:"file"`
}

// Service runs drift checks and applies values for registered plugins.
type Service struct {
	registry *plugin.Registry
	source   source.Source
	recorder *history.Recorder
	logger   *zap.Logger

	// applyMu serializes file rewrites issued through the API.
	applyMu sync.Mutex
}

// NewService creates a new drift service.
func NewService(registry *plugin.Registry, src source.Source, recorder *history.Recorder, logger *zap.Logger) *Service {
	return &Service{
		registry: registry,
		source:   src,
		recorder: recorder,
		logger:   logger,
	}
}

// List returns the managed files in registration order.
func (s *Service) List() []PluginInfo {
	plugins := s.registry.All()
	out := make([]PluginInfo, 0, len(plugins))
	for _, p := range plugins {
		out = append(out, PluginInfo{Key: p.Key(), File: p.File()})
	}
	return out
}

// CheckAll reconciles every plugin and returns the plan that would fix drift.
func (s *Service) CheckAll(ctx context.Context) (*reconcile.ReconcilePlan, error) {
	return reconcile.ReconcileWithPlan(ctx, s.registry.All(), s.source)
}

// Check reconciles the plugin registered for key.
func (s *Service) Check(ctx context.Context, key string) (*reconcile.ReconcileResult, error) {
	p, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	return reconcile.ReconcileOne(ctx, p, s.source)
}

// Apply writes the current value for key to its file, reloads the service
// and returns the resulting state.
func (s *Service) Apply(ctx context.Context, key string) (*reconcile.ReconcileResult, error) {
	p, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}

	if c, ok := s.source.(*source.CachedSource); ok {
		c.Invalidate(key)
	}

	value, err := s.source.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	if err := p.OnConfigChanged(ctx, value, s.recorder); err != nil {
		return nil, err
	}
	return reconcile.ReconcileOne(ctx, p, s.source)
}

// History returns the latest recorded file updates.
func (s *Service) History(ctx context.Context, limit int) ([]history.FileUpdate, error) {
	return s.recorder.Recent(ctx, limit)
}

// isNotFound reports whether err means the key or its value does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, plugin.ErrUnknownKey) || errors.Is(err, source.ErrNotFound)
}
