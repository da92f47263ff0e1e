package checks

import (
	"config-manager/core/reload"

	"github.com/mattn/go-shellwords"
)

// ToolReport tells whether an external program is available.
type ToolReport struct {
	Name  string `json:"name"`
	Path  string `json:"path,omitempty"`
	Found bool   `json:"found"`
}

// LookPathFunc resolves a program name to a path.
type LookPathFunc func(file string) (string, error)

// RequiredTools returns the programs needed to check and reload files.
// Systemd reloads go over D-Bus and need no program.
func RequiredTools(cfg reload.Config) []string {
	tools := []string{"diff"}
	if cfg.Method == reload.MethodSystemd {
		return tools
	}
	words, err := shellwords.Parse(cfg.Command)
	if err == nil && len(words) > 0 {
		tools = append(tools, words[0])
	}
	return tools
}

// CheckTools reports which of the required programs can be found.
func CheckTools(cfg reload.Config, lookPath LookPathFunc) []ToolReport {
	names := RequiredTools(cfg)
	reports := make([]ToolReport, 0, len(names))
	for _, name := range names {
		p, err := lookPath(name)
		reports = append(reports, ToolReport{Name: name, Path: p, Found: err == nil})
	}
	return reports
}
