package checks

import (
	"context"
	"fmt"
	"path"
	"strings"

	"config-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// StoreReport describes the bucket holding values.
type StoreReport struct {
	Bucket  string   `json:"bucket"`
	Prefix  string   `json:"prefix"`
	Objects []string `json:"objects"`
}

// CheckStructure verifies the bucket exists and lists the keys stored under
// prefix.
func CheckStructure(ctx context.Context, client storage.Client, bucket, prefix string) (*StoreReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	folder := strings.Trim(prefix, "/")
	if folder != "" {
		folder += "/"
	}

	report := &StoreReport{Bucket: bucket, Prefix: prefix, Objects: []string{}}
	opts := minio.ListObjectsOptions{Prefix: folder, Recursive: false}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list values: %w", obj.Err)
		}
		// Sub-folders are reported with a trailing slash and hold no value.
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		report.Objects = append(report.Objects, path.Base(obj.Key))
	}
	return report, nil
}
