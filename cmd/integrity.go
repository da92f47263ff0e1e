package cmd

import (
	"io"

	"config-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check values, value store and required tools",
	Long: `Checks that every managed key has a value, that the bucket of an object
source exists and that diff and the reload program are installed.
With --fix, missing values are seeded from the current managed files.`,
	RunE: runIntegrity,
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Seed missing values from the managed files")
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := setup(io.Discard)
	if err != nil {
		return err
	}
	defer s.close()

	svc := integrity.NewService(s.registry, s.source, s.cfg.Reload, s.logger)

	// Tools
	for _, tool := range svc.CheckTools() {
		if tool.Found {
			s.logger.Info("Tool found", zap.String("name", tool.Name), zap.String("path", tool.Path))
		} else {
			s.logger.Warn("Tool missing", zap.String("name", tool.Name))
		}
	}

	// Store
	store, err := svc.CheckStore(ctx)
	if err != nil {
		s.logger.Error("Store check failed", zap.Error(err))
	} else if store != nil {
		s.logger.Info("Store check passed",
			zap.String("bucket", store.Bucket),
			zap.Int("values", len(store.Objects)),
		)
	}

	// Values
	missing, err := svc.CheckValues(ctx)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		s.logger.Info("All managed keys have a value")
		return nil
	}
	s.logger.Warn("Missing values detected", zap.Strings("missing", missing))

	if fixFlag {
		seeded, err := svc.FixValues(ctx, missing)
		if err != nil {
			return err
		}
		s.logger.Info("Seeded missing values", zap.Strings("keys", seeded))
	}
	return nil
}
