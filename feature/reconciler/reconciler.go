package reconciler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"config-manager/core/diff"
	"config-manager/core/logger"
	"config-manager/core/plugin"
	"config-manager/core/reload"

	"go.uber.org/zap"
)

// DefaultService is the dependent service reloaded after an update.
const DefaultService = "sprout"

// diffIndent prefixes diff output lines for readability.
const diffIndent = "     "

// Reconciler keeps one managed file in line with the value distributed for
// its configuration key.
type Reconciler struct {
	file     string
	key      string
	service  string
	differ   diff.Differ
	reloader reload.Reloader
	out      io.Writer
	logger   *zap.Logger
}

var _ plugin.Plugin = (*Reconciler)(nil)

// Option configures a Reconciler at construction.
type Option func(*Reconciler)

// WithService overrides the dependent service name.
func WithService(service string) Option {
	return func(r *Reconciler) {
		if service != "" {
			r.service = service
		}
	}
}

// WithOutput sets the operator-facing writer used for drift reports.
func WithOutput(w io.Writer) Option {
	return func(r *Reconciler) { r.out = w }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reconciler) { r.logger = l }
}

// New creates a Reconciler for file under key.
func New(file, key string, differ diff.Differ, reloader reload.Reloader, opts ...Option) *Reconciler {
	r := &Reconciler{
		file:     file,
		key:      key,
		service:  DefaultService,
		differ:   differ,
		reloader: reloader,
		out:      os.Stdout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.out == nil {
		r.out = io.Discard
	}
	r.logger = logger.WithPlugin(r.logger, key, file)
	return r
}

// Key returns the configuration key.
func (r *Reconciler) Key() string {
	return r.key
}

// File returns the managed file path.
func (r *Reconciler) File() string {
	return r.file
}

// Service returns the dependent service name.
func (r *Reconciler) Service() string {
	return r.service
}

// Status compares the managed file with expected. Any failure to read the
// file is reported as missing. On drift the difference is written to the
// operator output.
func (r *Reconciler) Status(ctx context.Context, expected string) (plugin.FileStatus, error) {
	current, err := os.ReadFile(r.file)
	if err != nil {
		r.logger.Debug("Managed file unreadable", zap.Error(err))
		return plugin.StatusMissing, nil
	}

	if bytes.Equal(current, []byte(expected)) {
		return plugin.StatusUpToDate, nil
	}

	if err := r.reportDrift(ctx, expected); err != nil {
		return "", err
	}
	return plugin.StatusOutOfSync, nil
}

// reportDrift writes expected to a private temp file and prints its diff
// against the managed file.
func (r *Reconciler) reportDrift(ctx context.Context, expected string) error {
	tmp, err := os.CreateTemp("", "value-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(expected); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	out, err := r.differ.Diff(ctx, r.file, tmp.Name())
	if err != nil {
		return err
	}

	removed, added := diff.Lines(out)
	r.logger.Info("Managed file out of sync",
		zap.Int("removed_lines", len(removed)),
		zap.Int("added_lines", len(added)),
	)

	fmt.Fprintf(r.out, " + %s is present but is out of sync:\n", r.file)
	fmt.Fprintf(r.out, "%s# %s\n", diffIndent, r.differ.CommandLine(r.file))
	indented := diff.Indent(out, diffIndent)
	if len(indented) > 0 && !bytes.HasSuffix(indented, []byte("\n")) {
		indented = append(indented, '\n')
	}
	_, err = r.out.Write(indented)
	return err
}

// OnConfigChanged overwrites the managed file with expected, reloads the
// dependent service and notifies alarm. Errors are returned to the caller;
// the alarm is only notified after a successful reload.
func (r *Reconciler) OnConfigChanged(ctx context.Context, expected string, alarm plugin.Alarm) error {
	r.logger.Info("Updating managed file")

	if err := os.WriteFile(r.file, []byte(expected), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.file, err)
	}

	if err := r.reloader.Reload(ctx, r.service); err != nil {
		return err
	}

	if alarm != nil {
		alarm.UpdateFile(r.file)
	}
	return nil
}
