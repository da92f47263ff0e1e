// Package integrity validates what the reconciler depends on.
//
// Unlike the 'drift' package which compares managed files with their values,
// this package checks that values exist and that the environment can apply
// them.
//
// # Checks Provided
//
//   - Values: Lists managed keys that have no value. Missing values can be
//     seeded from the current content of the managed files.
//   - Store: Verifies the bucket of an object source exists and lists the stored keys.
//   - Tools: Reports whether diff and the reload program are installed.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/values : Runs values check (supports ?fix=true).
//   - GET /integrity/store : Runs store check.
//   - GET /integrity/tools : Runs tools check.
package integrity
