package drift

import (
	"config-manager/core/history"
	"config-manager/core/plugin"
	"config-manager/core/source"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new drift feature.
func NewFeature(registry *plugin.Registry, src source.Source, recorder *history.Recorder, logger *zap.Logger) *Feature {
	svc := NewService(registry, src, recorder, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "drift"
}

// IsEnabled reports whether any file is managed.
func (f *Feature) IsEnabled() bool {
	return f.service.registry.Len() > 0
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
