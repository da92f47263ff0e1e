package drift_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"config-manager/core/database"
	"config-manager/core/diff"
	"config-manager/core/history"
	"config-manager/core/plugin"
	"config-manager/core/reconcile"
	"config-manager/core/source"
	"config-manager/feature/drift"
	"config-manager/feature/reconciler"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type nopDiffer struct{}

func (nopDiffer) Diff(ctx context.Context, current, expected string) ([]byte, error) {
	return []byte("-old\n+new\n"), nil
}

func (nopDiffer) CommandLine(current string) string { return "diff " + current }

type countingReloader struct{ services []string }

func (r *countingReloader) Reload(ctx context.Context, service string) error {
	r.services = append(r.services, service)
	return nil
}

var _ diff.Differ = nopDiffer{}

// failingDiffer fails like a diff binary exiting with status 2.
type failingDiffer struct{}

func (failingDiffer) Diff(ctx context.Context, current, expected string) ([]byte, error) {
	return nil, errors.New("diff exited 2")
}

func (failingDiffer) CommandLine(current string) string { return "diff " + current }

type fixture struct {
	app      *fiber.App
	filesDir string
	reloader *countingReloader
}

func setup(t *testing.T) fixture {
	t.Helper()
	return setupWith(t, nopDiffer{}, true)
}

func setupWith(t *testing.T, differ diff.Differ, withDB bool) fixture {
	t.Helper()

	filesDir := t.TempDir()
	valuesDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(valuesDir, "sprout_json"), []byte(`{"a":1}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(valuesDir, "enum_json"), []byte(`{"e":2}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(filesDir, "sprout.json"), []byte(`{"a":1}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(filesDir, "enum.json"), []byte(`{"e":0}`), 0o644))

	manifest := &plugin.Manifest{Plugins: []plugin.Entry{
		{Key: "sprout_json", File: filepath.Join(filesDir, "sprout.json")},
		{Key: "enum_json", File: filepath.Join(filesDir, "enum.json")},
		{Key: "bgcf_json", File: filepath.Join(filesDir, "bgcf.json")},
	}}

	reloader := &countingReloader{}
	registry, err := reconciler.NewRegistry(manifest, differ, reloader, io.Discard, zap.NewNop())
	require.NoError(t, err)

	var db *gorm.DB
	if withDB {
		db, err = database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, history.Migrate(db))
	}
	recorder := history.NewRecorder(db, zap.NewNop(), registry)

	feature := drift.NewFeature(registry, source.NewDirSource(valuesDir), recorder, zap.NewNop())
	require.True(t, feature.IsEnabled())
	assert.Equal(t, "drift", feature.Name())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	return fixture{app: app, filesDir: filesDir, reloader: reloader}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil), 2000)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHandleList(t *testing.T) {
	f := setup(t)

	var list []drift.PluginInfo
	assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "GET", "/plugins", &list))
	require.Len(t, list, 3)
	assert.Equal(t, "sprout_json", list[0].Key)
}

func TestHandleStatusAll(t *testing.T) {
	f := setup(t)

	var plan reconcile.ReconcilePlan
	assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "GET", "/plugins/status", &plan))

	assert.Equal(t, 3, plan.Summary.TotalItems)
	assert.Equal(t, 1, plan.Summary.UpToDate)
	assert.Equal(t, 1, plan.Summary.OutOfSync)
	assert.Equal(t, 1, plan.Summary.MissingValue)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "enum_json", plan.Actions[0].Key)
}

func TestHandleStatus(t *testing.T) {
	f := setup(t)

	var result reconcile.ReconcileResult
	assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "GET", "/plugins/enum_json", &result))
	assert.Equal(t, plugin.StatusOutOfSync, result.Status)

	assert.Equal(t, fiber.StatusNotFound, doJSON(t, f.app, "GET", "/plugins/unknown", nil))
}

func TestHandleApply(t *testing.T) {
	f := setup(t)

	var result reconcile.ReconcileResult
	assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "POST", "/plugins/enum_json/apply", &result))
	assert.Equal(t, plugin.StatusUpToDate, result.Status)
	assert.Equal(t, []string{reconciler.DefaultService}, f.reloader.services)

	data, err := os.ReadFile(filepath.Join(f.filesDir, "enum.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"e":2}`, string(data))

	var updates []history.FileUpdate
	assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "GET", "/history?limit=5", &updates))
	require.Len(t, updates, 1)
	assert.Equal(t, "enum_json", updates[0].ConfigKey)

	t.Run("NoValue", func(t *testing.T) {
		assert.Equal(t, fiber.StatusNotFound, doJSON(t, f.app, "POST", "/plugins/bgcf_json/apply", nil))
	})

	t.Run("UnknownKey", func(t *testing.T) {
		assert.Equal(t, fiber.StatusNotFound, doJSON(t, f.app, "POST", "/plugins/ghost/apply", nil))
	})
}

func TestHandleStatusAll_FailedPlugin(t *testing.T) {
	f := setupWith(t, failingDiffer{}, true)

	var plan reconcile.ReconcilePlan
	assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "GET", "/plugins/status", &plan))

	assert.Equal(t, 3, plan.Summary.TotalItems)
	assert.Equal(t, 1, plan.Summary.Failed)
	assert.Equal(t, 1, plan.Summary.UpToDate)
	assert.Empty(t, plan.Actions)

	require.Len(t, plan.Results, 3)
	assert.Equal(t, "enum_json", plan.Results[1].Key)
	assert.Contains(t, plan.Results[1].Error, "diff exited 2")
}

func TestHandleHistory(t *testing.T) {
	t.Run("Limit", func(t *testing.T) {
		f := setup(t)
		assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "POST", "/plugins/enum_json/apply", nil))
		assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "POST", "/plugins/sprout_json/apply", nil))

		var updates []history.FileUpdate
		assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "GET", "/history", &updates))
		assert.Len(t, updates, 2)

		updates = nil
		assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "GET", "/history?limit=1", &updates))
		assert.Len(t, updates, 1)
	})

	t.Run("NoDatabase", func(t *testing.T) {
		f := setupWith(t, nopDiffer{}, false)
		assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "POST", "/plugins/enum_json/apply", nil))

		var updates []history.FileUpdate
		assert.Equal(t, fiber.StatusOK, doJSON(t, f.app, "GET", "/history", &updates))
		assert.NotNil(t, updates)
		assert.Empty(t, updates)
	})
}
