package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"config-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("value not found")

// Source provides the expected value for a configuration key.
type Source interface {
	Get(ctx context.Context, key string) (string, error)
}

// Writer is a Source that can store values.
type Writer interface {
	Source
	Put(ctx context.Context, key, value string) error
}

// validKey rejects keys that would escape the source namespace.
func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

// DirSource serves values from files named after their key.
type DirSource struct {
	dir      string
	debounce time.Duration
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir, debounce: DefaultDebounce}
}

// Dir returns the root directory.
func (s *DirSource) Dir() string {
	return s.dir
}

// Path returns the file holding key's value.
func (s *DirSource) Path(key string) string {
	return filepath.Join(s.dir, key)
}

// Get reads the value for key.
func (s *DirSource) Get(ctx context.Context, key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return "", fmt.Errorf("failed to read value for %s: %w", key, err)
	}
	return string(data), nil
}

// Put stores value as the file for key.
func (s *DirSource) Put(ctx context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create value directory: %w", err)
	}
	if err := os.WriteFile(s.Path(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write value for %s: %w", key, err)
	}
	return nil
}

// ObjectSource serves values from objects under a prefix in a bucket.
type ObjectSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectSource creates a source reading <prefix>/<key> from bucket.
func NewObjectSource(client storage.Client, bucket, prefix string) *ObjectSource {
	return &ObjectSource{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// ObjectName returns the object holding key's value.
func (s *ObjectSource) ObjectName(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

// Get downloads the value for key.
func (s *ObjectSource) Get(ctx context.Context, key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.ObjectName(key), minio.GetObjectOptions{})
	if err != nil {
		return "", s.wrap(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", s.wrap(key, err)
	}
	return string(data), nil
}

// Put uploads value as the object for key.
func (s *ObjectSource) Put(ctx context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.ObjectName(key), strings.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		return fmt.Errorf("failed to upload value for %s: %w", key, err)
	}
	return nil
}

// Bucket returns the bucket holding the values.
func (s *ObjectSource) Bucket() string {
	return s.bucket
}

// Prefix returns the object prefix for values.
func (s *ObjectSource) Prefix() string {
	return s.prefix
}

// Client returns the storage client.
func (s *ObjectSource) Client() storage.Client {
	return s.client
}

func (s *ObjectSource) wrap(key string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return fmt.Errorf("failed to fetch value for %s: %w", key, err)
}

// New builds the Source selected by cfg. client and bucket are only used
// for the object kind.
func New(cfg Config, client storage.Client, bucket string) (Source, error) {
	var src Source
	switch cfg.Kind {
	case KindDir, "":
		src = NewDirSource(cfg.Dir).WithDebounce(cfg.WatchDebounce())
	case KindObject:
		if client == nil {
			return nil, errors.New("object source requires a storage client")
		}
		src = NewObjectSource(client, bucket, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}

	if cfg.CacheTTLSeconds > 0 {
		src = NewCachedSource(src, secondsToDuration(cfg.CacheTTLSeconds))
	}
	return src, nil
}
