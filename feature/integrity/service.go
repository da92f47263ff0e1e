package integrity

import (
	"context"
	"errors"
	"os/exec"

	"config-manager/core/plugin"
	"config-manager/core/reload"
	"config-manager/core/source"
	"config-manager/feature/integrity/checks"

	"go.uber.org/zap"
)

// ErrReadOnlySource is returned when values cannot be seeded.
var ErrReadOnlySource = errors.New("value source is read-only")

// Service handles integrity checks.
type Service struct {
	registry  *plugin.Registry
	source    source.Source
	reloadCfg reload.Config
	logger    *zap.Logger
	lookPath  checks.LookPathFunc
}

// NewService creates a new integrity service.
func NewService(registry *plugin.Registry, src source.Source, reloadCfg reload.Config, logger *zap.Logger) *Service {
	return &Service{
		registry:  registry,
		source:    src,
		reloadCfg: reloadCfg,
		logger:    logger,
		lookPath:  exec.LookPath,
	}
}

// CheckValues returns the managed keys without a value.
func (s *Service) CheckValues(ctx context.Context) ([]string, error) {
	return checks.CheckValues(ctx, s.registry.All(), s.source)
}

// FixValues seeds the missing keys from the current files.
func (s *Service) FixValues(ctx context.Context, missing []string) ([]string, error) {
	w, ok := s.source.(source.Writer)
	if !ok {
		return nil, ErrReadOnlySource
	}
	return checks.SeedValues(ctx, s.registry.All(), w, s.logger, missing)
}

// CheckStore verifies the bucket behind an object source. It returns nil
// when values are not stored in a bucket.
func (s *Service) CheckStore(ctx context.Context) (*checks.StoreReport, error) {
	obj := objectSource(s.source)
	if obj == nil {
		return nil, nil
	}
	return checks.CheckStructure(ctx, obj.Client(), obj.Bucket(), obj.Prefix())
}

// CheckTools reports the availability of diff and the reload program.
func (s *Service) CheckTools() []checks.ToolReport {
	return checks.CheckTools(s.reloadCfg, s.lookPath)
}

// objectSource unwraps src down to an object source, if any.
func objectSource(src source.Source) *source.ObjectSource {
	for {
		switch v := src.(type) {
		case *source.ObjectSource:
			return v
		case *source.CachedSource:
			src = v.Unwrap()
		default:
			return nil
		}
	}
}
