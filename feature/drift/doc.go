// Package drift exposes the reconcilers over HTTP.
//
// # HTTP Endpoints
//
//   - GET /plugins : Lists managed files.
//   - GET /plugins/status : Checks every file (results, planned actions, summary).
//   - GET /plugins/:key : Checks one file.
//   - POST /plugins/:key/apply : Writes the current value, reloads the service.
//   - GET /history : Recent file updates (supports ?limit=N).
//
// Unknown keys and keys without a value answer 404.
package drift
