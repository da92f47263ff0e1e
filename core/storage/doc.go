// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that configuration values can be kept in an
// S3-compatible bucket (see core/source.ObjectSource). The Client interface is
// the seam used by tests (core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - PutObject: Uploads a value.
//   - GetObject: Retrieves a value as a stream.
//   - ListObjects: Lists values under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "config")
package storage
