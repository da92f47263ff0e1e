package diff

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"config-manager/core/command"
)

// ValueLabel names the expected-value side of a diff in operator output.
const ValueLabel = "<etcd-conman-value>"

// Differ compares the current file with a file holding the expected value.
type Differ interface {
	// Diff returns the textual difference between current and expected.
	// Differing files are not an error.
	Diff(ctx context.Context, current, expected string) ([]byte, error)
	// CommandLine describes the comparison for operator output.
	CommandLine(current string) string
}

// ExecDiffer shells out to the diff utility in unified mode. Whitespace is
// compared exactly, matching the byte-for-byte equality check, so every
// reported drift has changed lines.
type ExecDiffer struct {
	runner command.Runner
	tool   string
}

// NewExecDiffer creates a Differ backed by the diff binary.
func NewExecDiffer(runner command.Runner) *ExecDiffer {
	return &ExecDiffer{runner: runner, tool: "diff"}
}

// withTool returns a copy of the differ that runs the given binary.
func (d *ExecDiffer) withTool(tool string) *ExecDiffer {
	return &ExecDiffer{runner: d.runner, tool: tool}
}

func (d *ExecDiffer) args(current, expected string) []string {
	return []string{"-u", "-L", current, "-L", ValueLabel, current, expected}
}

// Diff runs the diff tool. Exit status 1 means the inputs differ and is
// treated as success; anything else is a failure of the tool itself.
func (d *ExecDiffer) Diff(ctx context.Context, current, expected string) ([]byte, error) {
	out, err := d.runner.RunArgs(ctx, d.tool, d.args(current, expected)...)
	if err != nil {
		if command.ExitCode(err) == 1 {
			return out, nil
		}
		return nil, fmt.Errorf("failed to diff %s: %w", current, err)
	}
	return out, nil
}

// CommandLine returns the diff invocation as shown to operators.
func (d *ExecDiffer) CommandLine(current string) string {
	return fmt.Sprintf("%s -u %s %s", d.tool, current, ValueLabel)
}

// Indent prefixes every line of text with prefix. A trailing newline is
// preserved and no prefix is added after it.
func Indent(text []byte, prefix string) []byte {
	if len(text) == 0 {
		return nil
	}

	var buf bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		buf.WriteString(prefix)
		buf.Write(scanner.Bytes())
		buf.WriteByte('\n')
	}

	if !bytes.HasSuffix(text, []byte("\n")) {
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	}
	return buf.Bytes()
}

// Lines splits diff output into its changed lines, keeping the leading
// '+' or '-' marker and dropping file headers and hunk markers.
func Lines(text []byte) (removed, added []string) {
	for _, line := range strings.Split(string(text), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			continue
		case strings.HasPrefix(line, "-"):
			removed = append(removed, line)
		case strings.HasPrefix(line, "+"):
			added = append(added, line)
		}
	}
	return removed, added
}
