package reconciler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"config-manager/core/command"
	"config-manager/core/diff"
	"config-manager/core/plugin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recorder captures reloads and alarm notifications in call order.
type recorder struct {
	events    []string
	reloadErr error
}

func (r *recorder) Reload(ctx context.Context, service string) error {
	if r.reloadErr != nil {
		return r.reloadErr
	}
	r.events = append(r.events, "reload:"+service)
	return nil
}

func (r *recorder) UpdateFile(file string) {
	r.events = append(r.events, "alarm:"+file)
}

// countingDiffer records invocations without running a tool.
type countingDiffer struct {
	mu       sync.Mutex
	calls    int
	expected []string
	output   string
	err      error
}

func (d *countingDiffer) Diff(ctx context.Context, current, expected string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	data, _ := os.ReadFile(expected)
	d.expected = append(d.expected, expected+"="+string(data))
	if d.err != nil {
		return nil, d.err
	}
	return []byte(d.output), nil
}

func (d *countingDiffer) CommandLine(current string) string {
	return "fake-diff " + current
}

func requireDiffTool(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff utility not available")
	}
}

func TestReconciler_Identity(t *testing.T) {
	r := New("/etc/clearwater/sprout.json", "sprout_json", &countingDiffer{}, &recorder{})
	assert.Equal(t, "sprout_json", r.Key())
	assert.Equal(t, "/etc/clearwater/sprout.json", r.File())
	assert.Equal(t, DefaultService, r.Service())

	r = New("/f", "k", &countingDiffer{}, &recorder{}, WithService("bono"))
	assert.Equal(t, "bono", r.Service())

	r = New("/f", "k", &countingDiffer{}, &recorder{}, WithService(""))
	assert.Equal(t, DefaultService, r.Service())
}

func TestReconciler_Status(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		d := &countingDiffer{}
		r := New(filepath.Join(t.TempDir(), "absent.json"), "k", d, &recorder{}, WithOutput(&bytes.Buffer{}))

		for _, v := range []string{"", "abc", "{\"a\":1}"} {
			status, err := r.Status(ctx, v)
			require.NoError(t, err)
			assert.Equal(t, plugin.StatusMissing, status)
		}
		assert.Zero(t, d.calls)
	})

	t.Run("UnreadableDirectory", func(t *testing.T) {
		r := New(t.TempDir(), "k", &countingDiffer{}, &recorder{})
		status, err := r.Status(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, plugin.StatusMissing, status)
	})

	t.Run("UpToDateSkipsDiff", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.json")
		require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

		d := &countingDiffer{}
		var out bytes.Buffer
		r := New(path, "k", d, &recorder{}, WithOutput(&out))

		status, err := r.Status(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, plugin.StatusUpToDate, status)
		assert.Zero(t, d.calls)
		assert.Empty(t, out.String())
	})

	t.Run("ByteForByte", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.json")
		require.NoError(t, os.WriteFile(path, []byte("abc\n"), 0o644))

		d := &countingDiffer{}
		r := New(path, "k", d, &recorder{}, WithOutput(&bytes.Buffer{}))

		status, err := r.Status(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, plugin.StatusOutOfSync, status)
		assert.Equal(t, 1, d.calls)
	})

	t.Run("OutOfSyncReportsAndCleansUp", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.json")
		require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

		d := &countingDiffer{output: "-abc\n+xyz\n"}
		var out bytes.Buffer
		r := New(path, "k", d, &recorder{}, WithOutput(&out))

		status, err := r.Status(ctx, "xyz")
		require.NoError(t, err)
		assert.Equal(t, plugin.StatusOutOfSync, status)

		require.Len(t, d.expected, 1)
		tmpPath, content, _ := strings.Cut(d.expected[0], "=")
		assert.Equal(t, "xyz", content)
		_, statErr := os.Stat(tmpPath)
		assert.True(t, os.IsNotExist(statErr), "temp file should be removed")

		lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, " + "+path+" is present but is out of sync:", lines[0])
		assert.Equal(t, "     # fake-diff "+path, lines[1])
		assert.Equal(t, "     -abc", lines[2])
		assert.Equal(t, "     +xyz", lines[3])
	})

	t.Run("UniqueTempFilePerCall", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.json")
		require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

		d := &countingDiffer{}
		r := New(path, "k", d, &recorder{}, WithOutput(&bytes.Buffer{}))
		_, err := r.Status(ctx, "one")
		require.NoError(t, err)
		_, err = r.Status(ctx, "two")
		require.NoError(t, err)

		require.Len(t, d.expected, 2)
		first, _, _ := strings.Cut(d.expected[0], "=")
		second, _, _ := strings.Cut(d.expected[1], "=")
		assert.NotEqual(t, first, second)
	})

	t.Run("ConcurrentCallsUseSeparateTempFiles", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.json")
		require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

		d := &countingDiffer{}
		r := New(path, "k", d, &recorder{}, WithOutput(io.Discard))

		const workers = 16
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				status, err := r.Status(ctx, fmt.Sprintf("value-%d", i))
				if err == nil && status != plugin.StatusOutOfSync {
					err = fmt.Errorf("worker %d: unexpected status %s", i, status)
				}
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		require.Len(t, d.expected, workers)
		paths := make(map[string]bool, workers)
		contents := make(map[string]bool, workers)
		for _, entry := range d.expected {
			tmpPath, content, _ := strings.Cut(entry, "=")
			paths[tmpPath] = true
			contents[content] = true
			_, statErr := os.Stat(tmpPath)
			assert.True(t, os.IsNotExist(statErr), "temp file should be removed")
		}
		assert.Len(t, paths, workers)
		for i := 0; i < workers; i++ {
			assert.True(t, contents[fmt.Sprintf("value-%d", i)], "worker %d saw another value", i)
		}
	})

	t.Run("DiffFailureIsFatal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.json")
		require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

		r := New(path, "k", &countingDiffer{err: errors.New("diff: not found")}, &recorder{}, WithOutput(&bytes.Buffer{}))
		_, err := r.Status(ctx, "xyz")
		assert.ErrorContains(t, err, "not found")
	})
}

func TestReconciler_OnConfigChanged(t *testing.T) {
	ctx := context.Background()

	t.Run("WritesReloadsThenAlarms", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.json")
		require.NoError(t, os.WriteFile(path, []byte("a much longer previous value"), 0o644))

		rec := &recorder{}
		r := New(path, "k", &countingDiffer{}, rec)

		require.NoError(t, r.OnConfigChanged(ctx, "new", rec))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		assert.Equal(t, []string{"reload:sprout", "alarm:" + path}, rec.events)
	})

	t.Run("WriteFailure", func(t *testing.T) {
		rec := &recorder{}
		r := New(filepath.Join(t.TempDir(), "no", "such", "dir", "f.json"), "k", &countingDiffer{}, rec)

		err := r.OnConfigChanged(ctx, "v", rec)
		assert.Error(t, err)
		assert.Empty(t, rec.events)
	})

	t.Run("ReloadFailure", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.json")
		rec := &recorder{reloadErr: errors.New("service not found")}
		r := New(path, "k", &countingDiffer{}, rec)

		err := r.OnConfigChanged(ctx, "v", rec)
		assert.ErrorContains(t, err, "service not found")
		assert.Empty(t, rec.events, "alarm must not fire when reload fails")

		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "v", string(data))
	})

	t.Run("ThenStatusIsUpToDate", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.json")
		rec := &recorder{}
		r := New(path, "k", &countingDiffer{}, rec)

		for _, v := range []string{"abc", "", "{\n  \"x\": 1\n}\n"} {
			require.NoError(t, r.OnConfigChanged(ctx, v, rec))
			status, err := r.Status(ctx, v)
			require.NoError(t, err)
			assert.Equal(t, plugin.StatusUpToDate, status)
		}
	})
}

func TestReconciler_Scenario(t *testing.T) {
	requireDiffTool(t)

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sprout.json")
	rec := &recorder{}
	var out bytes.Buffer

	r := New(path, "sprout_json", diff.NewExecDiffer(command.NewRunner(zap.NewNop())), rec, WithOutput(&out))

	status, err := r.Status(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, plugin.StatusMissing, status)

	require.NoError(t, r.OnConfigChanged(ctx, "abc", rec))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
	assert.Equal(t, []string{"reload:sprout", "alarm:" + path}, rec.events)

	status, err = r.Status(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, plugin.StatusUpToDate, status)
	assert.Empty(t, out.String())

	status, err = r.Status(ctx, "xyz")
	require.NoError(t, err)
	assert.Equal(t, plugin.StatusOutOfSync, status)
	assert.Contains(t, out.String(), "     -abc")
	assert.Contains(t, out.String(), "     +xyz")
	assert.Contains(t, out.String(), " + "+path+" is present but is out of sync:")
}

func TestReconciler_WhitespaceOnlyDrift(t *testing.T) {
	requireDiffTool(t)

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sprout.json")
	require.NoError(t, os.WriteFile(path, []byte("{\"a\": 1}\n"), 0o644))

	var out bytes.Buffer
	r := New(path, "sprout_json", diff.NewExecDiffer(command.NewRunner(zap.NewNop())), &recorder{}, WithOutput(&out))

	status, err := r.Status(ctx, "{\"a\":    1}\n")
	require.NoError(t, err)
	assert.Equal(t, plugin.StatusOutOfSync, status)
	assert.Contains(t, out.String(), "     -{\"a\": 1}")
	assert.Contains(t, out.String(), "     +{\"a\":    1}")
}

func TestNewRegistry(t *testing.T) {
	m := &plugin.Manifest{Plugins: []plugin.Entry{
		{Key: "sprout_json", File: "/etc/clearwater/sprout.json"},
		{Key: "enum_json", File: "/etc/clearwater/enum.json", Service: "bono"},
	}}

	reg, err := NewRegistry(m, &countingDiffer{}, &recorder{}, &bytes.Buffer{}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	p, err := reg.Get("enum_json")
	require.NoError(t, err)
	assert.Equal(t, "bono", p.(*Reconciler).Service())

	m.Plugins = append(m.Plugins, plugin.Entry{Key: "sprout_json", File: "/x"})
	_, err = NewRegistry(m, &countingDiffer{}, &recorder{}, &bytes.Buffer{}, zap.NewNop())
	assert.Error(t, err)
}
