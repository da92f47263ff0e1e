package reconcile

import "config-manager/core/plugin"

// ReconcileResult represents the reconciliation output for a single plugin.
type ReconcileResult struct {
	// Key is the configuration key.
	Key string `json:"key"`

	// File is the managed file path.
	File string `json:"file"`

	// ValuePresent indicates whether the source holds a value for the key.
	ValuePresent bool `json:"value_present"`

	// Status is the file state relative to the value.
	// Empty when ValuePresent is false.
	Status plugin.FileStatus `json:"status,omitempty"`

	// Error is set when the value or the file could not be checked.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the check itself failed.
func (r ReconcileResult) Failed() bool {
	return r.Error != ""
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionApply rewrites the managed file and reloads its service.
	ActionApply ActionType = "apply"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the configuration key.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Value is the content to write.
	Value string `json:"-"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	// Results contains per-plugin reconciliation data.
	Results []ReconcileResult `json:"results"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the number of plugins checked.
	TotalItems int `json:"total_items"`

	// UpToDate counts files matching their value.
	UpToDate int `json:"up_to_date"`

	// OutOfSync counts files whose content differs.
	OutOfSync int `json:"out_of_sync"`

	// Missing counts files that could not be read.
	Missing int `json:"missing"`

	// MissingValue counts keys without a value in the source.
	MissingValue int `json:"missing_value"`

	// Failed counts plugins that could not be checked.
	Failed int `json:"failed"`

	// ApplyActions counts planned apply actions.
	ApplyActions int `json:"apply_actions"`
}

// Drifted reports whether any file needs an update.
func (s PlanSummary) Drifted() bool {
	return s.OutOfSync > 0 || s.Missing > 0
}

// ReconcileOptions controls whether planned actions are executed.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates user has confirmed the changes.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}
