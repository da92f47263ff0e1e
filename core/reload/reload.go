package reload

import (
	"context"
	"fmt"
	"strings"
	"time"

	"config-manager/core/command"

	"go.uber.org/zap"
)

// Reloader asks a dependent service to reload its configuration.
type Reloader interface {
	Reload(ctx context.Context, service string) error
}

// CommandReloader reloads services by running a command template.
type CommandReloader struct {
	runner   command.Runner
	template string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewCommandReloader creates a reloader running template through runner.
// The template must contain exactly one %s for the service name.
func NewCommandReloader(runner command.Runner, template string, timeout time.Duration, logger *zap.Logger) (*CommandReloader, error) {
	if strings.Count(template, "%s") != 1 {
		return nil, fmt.Errorf("reload command %q must contain exactly one %%s", template)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandReloader{runner: runner, template: template, timeout: timeout, logger: logger}, nil
}

// Reload runs the reload command for service.
func (r *CommandReloader) Reload(ctx context.Context, service string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	line := fmt.Sprintf(r.template, service)
	r.logger.Info("Reloading service", zap.String("service", service), zap.String("command", line))

	if _, err := r.runner.Run(ctx, line); err != nil {
		return fmt.Errorf("failed to reload %s: %w", service, err)
	}
	return nil
}

// New builds the Reloader selected by cfg.
func New(cfg Config, runner command.Runner, logger *zap.Logger) (Reloader, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	switch cfg.Method {
	case MethodCommand, "":
		tmpl := cfg.Command
		if tmpl == "" {
			tmpl = "service %s reload"
		}
		return NewCommandReloader(runner, tmpl, timeout, logger)
	case MethodSystemd:
		return NewSystemdReloader(timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown reload method %q", cfg.Method)
	}
}
