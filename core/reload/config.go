package reload

// Config holds configuration for reloading dependent services.
type Config struct {
	// Method selects the reload mechanism (command, systemd).
	Method string `mapstructure:"method" default:"command"`
	// Command is the reload command template; %s is replaced by the service name.
	Command string `mapstructure:"command" default:"service %s reload"`
	// TimeoutSeconds bounds a single reload.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	MethodCommand = "command"
	MethodSystemd = "systemd"
)

// IsValidMethod checks if the configured method is supported.
func (c Config) IsValidMethod() bool {
	switch c.Method {
	case MethodCommand, MethodSystemd:
		return true
	default:
		return false
	}
}
