package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"config-manager/core/plugin"
	"config-manager/core/source"
)

// ReconcileAll checks every plugin against its value and returns results
// sorted by key. A missing value is reported, not an error. Source or status
// failures are recorded on the plugin's result and the run continues; only
// a cancelled context aborts it.
func ReconcileAll(ctx context.Context, plugins []plugin.Plugin, src source.Source) ([]ReconcileResult, error) {
	results := make([]ReconcileResult, 0, len(plugins))
	for _, p := range plugins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, _, err := reconcileOne(ctx, p, src)
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	// Sort results by key for deterministic output
	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})

	return results, nil
}

// ReconcileOne checks a single plugin against its value.
func ReconcileOne(ctx context.Context, p plugin.Plugin, src source.Source) (*ReconcileResult, error) {
	result, _, err := reconcileOne(ctx, p, src)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// reconcileOne also returns the fetched value so that planning does not
// fetch it twice.
func reconcileOne(ctx context.Context, p plugin.Plugin, src source.Source) (ReconcileResult, string, error) {
	result := ReconcileResult{
		Key:  p.Key(),
		File: p.File(),
	}

	value, err := src.Get(ctx, p.Key())
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return result, "", nil
		}
		return result, "", err
	}
	result.ValuePresent = true

	status, err := p.Status(ctx, value)
	if err != nil {
		return result, "", fmt.Errorf("failed to check %s: %w", p.Key(), err)
	}
	result.Status = status

	return result, value, nil
}
