package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"config-manager/core/plugin"
	"config-manager/core/reconcile"
	"config-manager/core/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncOnStart bool

// watchCmd applies values as soon as they change on disk.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Apply values whenever the value directory changes",
	Long: `Watches the value directory of a dir source. When the value of a managed
key is written, the file is checked and rewritten if it is missing or out
of sync. Requires source.kind=dir.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&syncOnStart, "sync", false, "Apply every drifted file before watching")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := setup(os.Stdout)
	if err != nil {
		return err
	}
	defer s.close()

	if s.cfg.Source.Kind != source.KindDir {
		return fmt.Errorf("watch requires a %q source, got %q", source.KindDir, s.cfg.Source.Kind)
	}
	// Read straight from disk so change events are never served from cache.
	dir := source.NewDirSource(s.cfg.Source.Dir).WithDebounce(s.cfg.Source.WatchDebounce())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if syncOnStart {
		opts := reconcile.ReconcileOptions{Confirmed: true}
		plan, executed, err := reconcile.ReconcileAndApply(ctx, s.registry.All(), dir, opts, s.recorder)
		if err != nil {
			return fmt.Errorf("initial sync failed: %w", err)
		}
		for _, r := range plan.Results {
			if r.Failed() {
				s.logger.Error("Managed file could not be checked", zap.String("key", r.Key), zap.String("error", r.Error))
			}
		}
		s.logger.Info("Initial sync complete", zap.Int("updated", executed))
	}

	return dir.Watch(ctx, s.logger, func(key string) {
		p, err := s.registry.Get(key)
		if err != nil {
			return
		}
		if err := syncPlugin(ctx, p, dir, s.recorder); err != nil {
			s.logger.Error("Failed to sync managed file",
				zap.String("key", key),
				zap.String("file", p.File()),
				zap.Error(err),
			)
		}
	})
}

// syncPlugin rewrites p's file when it does not match the source value.
func syncPlugin(ctx context.Context, p plugin.Plugin, src source.Source, alarm plugin.Alarm) error {
	value, err := src.Get(ctx, p.Key())
	if errors.Is(err, source.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	status, err := p.Status(ctx, value)
	if err != nil {
		return err
	}
	if !status.NeedsApply() {
		return nil
	}
	return p.OnConfigChanged(ctx, value, alarm)
}
