package cmd

import (
	"errors"
	"fmt"
	"os"

	"config-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errDrift is returned by status --fail-on-drift when any file needs an update.
var errDrift = errors.New("managed files are out of sync")

var failOnDrift bool

// statusCmd reports the state of managed files.
var statusCmd = &cobra.Command{
	Use:   "status [key...]",
	Short: "Check managed files against their values",
	Long: `Compares every managed file (or only the given keys) with the value
distributed for it and prints a diff for each file that is out of sync.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&failOnDrift, "fail-on-drift", false, "Exit with an error when any file is missing or out of sync")
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := setup(os.Stdout)
	if err != nil {
		return err
	}
	defer s.close()

	plugins, err := s.registry.Select(args...)
	if err != nil {
		return err
	}

	results, err := reconcile.ReconcileAll(cmd.Context(), plugins, s.source)
	if err != nil {
		return fmt.Errorf("failed to check managed files: %w", err)
	}

	fmt.Println(resultTable(results))

	sum := reconcile.Summarize(results)
	s.logger.Info("Status report",
		zap.Int("total_items", sum.TotalItems),
		zap.Int("up_to_date", sum.UpToDate),
		zap.Int("out_of_sync", sum.OutOfSync),
		zap.Int("missing", sum.Missing),
		zap.Int("missing_value", sum.MissingValue),
		zap.Int("failed", sum.Failed),
	)

	for _, r := range results {
		if r.Failed() {
			s.logger.Error("Managed file could not be checked", zap.String("key", r.Key), zap.String("error", r.Error))
		}
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d managed files could not be checked", sum.Failed)
	}

	if failOnDrift && sum.Drifted() {
		return errDrift
	}
	return nil
}
