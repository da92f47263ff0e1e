package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"config-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the apply command
	dryRunApply bool
	yesConfirm  bool
)

// applyCmd rewrites drifted files and reloads their services.
var applyCmd = &cobra.Command{
	Use:   "apply [key...]",
	Short: "Rewrite drifted files with their values",
	Long: `Plans an update for every managed file that is missing or out of sync
and, once confirmed, writes the value, reloads the dependent service and
records the update.

Examples:
  # Show what would change
  apply --dry-run

  # Apply with interactive confirmation
  apply

  # Apply a single key without prompting
  apply sprout_config --yes`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&dryRunApply, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	applyCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm file rewrites (non-interactive)")
	RootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := setup(os.Stdout)
	if err != nil {
		return err
	}
	defer s.close()

	plugins, err := s.registry.Select(args...)
	if err != nil {
		return err
	}

	// Step 1: Plan (always runs)
	s.logger.Info("Planning updates...")
	plan, err := reconcile.ReconcileWithPlan(ctx, plugins, s.source)
	if err != nil {
		return fmt.Errorf("failed to plan updates: %w", err)
	}

	// Step 2: Print report
	printPlanReport(s.logger, plan)

	if len(plan.Actions) == 0 {
		s.logger.Info("No actions required.")
		return nil
	}

	if dryRunApply {
		s.logger.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Step 3: Confirm
	if !confirmApply(os.Stdin, os.Stdout) {
		s.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	// Step 4: Apply
	s.logger.Info("Applying actions...")
	opts := reconcile.ReconcileOptions{DryRun: dryRunApply, Confirmed: true}
	executed, err := reconcile.ApplyPlan(ctx, plugins, plan, opts, s.recorder)
	if err != nil {
		return fmt.Errorf("failed to apply plan after %d updates: %w", executed, err)
	}

	s.logger.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printPlanReport logs the plan summary and a sample of planned actions.
func printPlanReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	sum := plan.Summary

	l.Info("Update plan",
		zap.Int("total_items", sum.TotalItems),
		zap.Int("up_to_date", sum.UpToDate),
		zap.Int("out_of_sync", sum.OutOfSync),
		zap.Int("missing", sum.Missing),
		zap.Int("missing_value", sum.MissingValue),
		zap.Int("failed", sum.Failed),
		zap.Int("apply_actions", sum.ApplyActions),
	)

	for _, r := range plan.Results {
		if r.Failed() {
			l.Error("Managed file could not be checked", zap.String("key", r.Key), zap.String("error", r.Error))
		}
	}

	maxShow := min(len(plan.Actions), 5)
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Planned action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmApply prompts on out for confirmation or uses the --yes flag.
func confirmApply(in io.Reader, out io.Writer) bool {
	if yesConfirm {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\nType 'yes' to rewrite the files above: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
