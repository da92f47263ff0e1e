// Package source supplies the expected value for each configuration key.
//
// In production the value comes from the cluster key-value store owned by
// the plugin host. Operators and development setups use one of:
//
//   - DirSource: one file per key in a local directory, watchable with
//     fsnotify so that edits trigger an update
//   - ObjectSource: one object per key under a prefix in an S3/MinIO bucket
//
// CachedSource puts a TTL cache with stampede protection in front of either.
package source
