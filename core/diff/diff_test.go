package diff

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"config-manager/core/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func requireDiffTool(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff utility not available")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecDiffer_Diff(t *testing.T) {
	requireDiffTool(t)

	dir := t.TempDir()
	d := NewExecDiffer(command.NewRunner(zap.NewNop()))
	ctx := context.Background()

	t.Run("Differs", func(t *testing.T) {
		current := writeFile(t, dir, "current", "abc\n")
		expected := writeFile(t, dir, "expected", "xyz\n")

		out, err := d.Diff(ctx, current, expected)
		require.NoError(t, err)

		removed, added := Lines(out)
		assert.Equal(t, []string{"-abc"}, removed)
		assert.Equal(t, []string{"+xyz"}, added)
		assert.Contains(t, string(out), ValueLabel)
	})

	t.Run("WhitespaceOnly", func(t *testing.T) {
		current := writeFile(t, dir, "ws-current", "{\"a\": 1}\n")
		expected := writeFile(t, dir, "ws-expected", "{\"a\":    1}\n")

		out, err := d.Diff(ctx, current, expected)
		require.NoError(t, err)

		removed, added := Lines(out)
		assert.Equal(t, []string{`-{"a": 1}`}, removed)
		assert.Equal(t, []string{`+{"a":    1}`}, added)
	})

	t.Run("Identical", func(t *testing.T) {
		current := writeFile(t, dir, "same-current", "abc\n")
		expected := writeFile(t, dir, "same-expected", "abc\n")

		out, err := d.Diff(ctx, current, expected)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("MissingInput", func(t *testing.T) {
		expected := writeFile(t, dir, "only", "x\n")
		_, err := d.Diff(ctx, filepath.Join(dir, "absent"), expected)
		assert.Error(t, err)
	})

	t.Run("MissingTool", func(t *testing.T) {
		current := writeFile(t, dir, "c2", "a\n")
		expected := writeFile(t, dir, "e2", "b\n")
		_, err := d.withTool("no-such-diff-tool").Diff(ctx, current, expected)
		assert.Error(t, err)
	})
}

func TestExecDiffer_CommandLine(t *testing.T) {
	d := NewExecDiffer(nil)
	assert.Equal(t, "diff -u /etc/a.json <etcd-conman-value>", d.CommandLine("/etc/a.json"))
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Empty", "", ""},
		{"Single", "a\n", "     a\n"},
		{"Multi", "a\nb\n", "     a\n     b\n"},
		{"NoTrailingNewline", "a\nb", "     a\n     b"},
		{"BlankLine", "a\n\nb\n", "     a\n     \n     b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Indent([]byte(tt.in), "     ")))
		})
	}
}

func TestLines(t *testing.T) {
	out := "--- a\n+++ b\n@@ -1,2 +1,2 @@\n-old\n same\n+new\n"
	removed, added := Lines([]byte(out))
	assert.Equal(t, []string{"-old"}, removed)
	assert.Equal(t, []string{"+new"}, added)
}
