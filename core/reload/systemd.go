package reload

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/dbus"
	"go.uber.org/zap"
)

// unitManager is the subset of the systemd D-Bus connection used here.
type unitManager interface {
	ReloadUnitContext(ctx context.Context, name string, mode string, ch chan<- string) (int, error)
	Close()
}

// SystemdReloader reloads services through the systemd D-Bus API.
type SystemdReloader struct {
	timeout time.Duration
	logger  *zap.Logger
	connect func(ctx context.Context) (unitManager, error)
}

// NewSystemdReloader creates a reloader talking to the system bus.
func NewSystemdReloader(timeout time.Duration, logger *zap.Logger) *SystemdReloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemdReloader{
		timeout: timeout,
		logger:  logger,
		connect: func(ctx context.Context) (unitManager, error) {
			conn, err := dbus.NewWithContext(ctx)
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
	}
}

// UnitName maps a service name to its systemd unit.
func UnitName(service string) string {
	if strings.Contains(service, ".") {
		return service
	}
	return service + ".service"
}

// Reload queues a reload job for the service's unit and waits for it.
func (r *SystemdReloader) Reload(ctx context.Context, service string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	conn, err := r.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer conn.Close()

	unit := UnitName(service)
	r.logger.Info("Reloading unit", zap.String("unit", unit))

	done := make(chan string, 1)
	if _, err := conn.ReloadUnitContext(ctx, unit, "replace", done); err != nil {
		return fmt.Errorf("failed to reload %s: %w", unit, err)
	}

	select {
	case result := <-done:
		if result != "done" {
			return fmt.Errorf("reload of %s finished with %q", unit, result)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("reload of %s: %w", unit, ctx.Err())
	}
}
