package plugin

import "context"

// FileStatus describes how a managed file compares to its expected value.
type FileStatus string

const (
	// StatusUpToDate means the file content equals the expected value byte-for-byte.
	StatusUpToDate FileStatus = "up_to_date"
	// StatusOutOfSync means the file exists but its content differs.
	StatusOutOfSync FileStatus = "out_of_sync"
	// StatusMissing means the file could not be opened or read.
	StatusMissing FileStatus = "missing"
)

// NeedsApply reports whether a file in this state should be rewritten.
func (s FileStatus) NeedsApply() bool {
	return s == StatusOutOfSync || s == StatusMissing
}

// Alarm is the host-provided notification hook raised after a managed file
// was rewritten. Bookkeeping behind it belongs to the host.
type Alarm interface {
	UpdateFile(file string)
}

// AlarmFunc adapts a plain function to the Alarm interface.
type AlarmFunc func(file string)

// UpdateFile calls f(file).
func (f AlarmFunc) UpdateFile(file string) {
	f(file)
}

// Plugin is the contract every configuration plugin satisfies.
type Plugin interface {
	// Key returns the configuration key this plugin is responsible for.
	Key() string

	// File returns the managed file path.
	File() string

	// Status compares the file on disk with the expected value.
	// An unreadable file is reported as StatusMissing, not as an error.
	Status(ctx context.Context, expected string) (FileStatus, error)

	// OnConfigChanged writes the expected value to the file, reloads the
	// dependent service and notifies the alarm, in that order.
	OnConfigChanged(ctx context.Context, expected string, alarm Alarm) error
}
