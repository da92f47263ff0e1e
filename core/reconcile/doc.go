// Package reconcile runs the file plugins of a registry against a value
// source and turns the outcome into a plan.
//
// # Flow
//
// 1. Reconcile: every plugin's Status is computed against the value the
//    source holds for its key. Keys without a value are reported but not
//    touched.
//
// 2. Plan: each file that is out of sync or missing gets an apply action
//    carrying the value to write.
//
// 3. Apply: actions run through Plugin.OnConfigChanged, but only when the
//    options are confirmed and not a dry run. The first failure stops the
//    run.
//
// # Usage Example
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, registry.All(), src)
//	if err != nil {
//	    return err
//	}
//	executed, err := reconcile.ApplyPlan(ctx, registry.All(), plan,
//	    reconcile.ReconcileOptions{Confirmed: true}, recorder)
package reconcile
