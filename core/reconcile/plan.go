package reconcile

import (
	"context"
	"fmt"
	"sort"

	"config-manager/core/plugin"
	"config-manager/core/source"
)

// ReconcileWithPlan performs reconciliation and returns a plan with results and actions.
// It does NOT execute actions; use ApplyPlan for that. Plugins that could not
// be checked carry an error in their result and get no action.
func ReconcileWithPlan(ctx context.Context, plugins []plugin.Plugin, src source.Source) (*ReconcilePlan, error) {
	plan := &ReconcilePlan{
		Results: make([]ReconcileResult, 0, len(plugins)),
		Actions: []Action{},
	}

	for _, p := range plugins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, value, err := reconcileOne(ctx, p, src)
		if err != nil {
			result.Error = err.Error()
		}
		plan.Results = append(plan.Results, result)

		if !result.Failed() && result.ValuePresent && result.Status.NeedsApply() {
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionApply,
				Key:    result.Key,
				Reason: fmt.Sprintf("file is %s", result.Status),
				Value:  value,
			})
		}
	}

	sort.Slice(plan.Results, func(i, j int) bool {
		return plan.Results[i].Key < plan.Results[j].Key
	})
	sort.Slice(plan.Actions, func(i, j int) bool {
		return plan.Actions[i].Key < plan.Actions[j].Key
	})

	plan.Summary = summarize(plan.Results, len(plan.Actions))
	return plan, nil
}

// ApplyPlan executes the actions in a reconcile plan.
// Returns the number of actions executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
// Execution stops at the first failure.
func ApplyPlan(ctx context.Context, plugins []plugin.Plugin, plan *ReconcilePlan, opts ReconcileOptions, alarm plugin.Alarm) (executed int, err error) {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	byKey := make(map[string]plugin.Plugin, len(plugins))
	for _, p := range plugins {
		byKey[p.Key()] = p
	}

	for _, action := range plan.Actions {
		if action.Type != ActionApply {
			return executed, fmt.Errorf("unsupported action %q for %s", action.Type, action.Key)
		}

		p, ok := byKey[action.Key]
		if !ok {
			return executed, fmt.Errorf("%w: %s", plugin.ErrUnknownKey, action.Key)
		}

		if err := p.OnConfigChanged(ctx, action.Value, alarm); err != nil {
			return executed, fmt.Errorf("failed to apply %s: %w", action.Key, err)
		}
		executed++
	}

	return executed, nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies actions.
// It returns the plan, number of actions executed, and any error.
func ReconcileAndApply(ctx context.Context, plugins []plugin.Plugin, src source.Source, opts ReconcileOptions, alarm plugin.Alarm) (*ReconcilePlan, int, error) {
	plan, err := ReconcileWithPlan(ctx, plugins, src)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, plugins, plan, opts, alarm)
	return plan, executed, err
}

// Summarize builds aggregate counts for results that have no plan.
func Summarize(results []ReconcileResult) PlanSummary {
	return summarize(results, 0)
}

// summarize builds aggregate counts for a plan.
func summarize(results []ReconcileResult, actions int) PlanSummary {
	summary := PlanSummary{
		TotalItems:   len(results),
		ApplyActions: actions,
	}

	for _, result := range results {
		if result.Failed() {
			summary.Failed++
			continue
		}
		if !result.ValuePresent {
			summary.MissingValue++
			continue
		}
		switch result.Status {
		case plugin.StatusUpToDate:
			summary.UpToDate++
		case plugin.StatusOutOfSync:
			summary.OutOfSync++
		case plugin.StatusMissing:
			summary.Missing++
		}
	}

	return summary
}
