package source

import "time"

// Config holds configuration for the value source.
type Config struct {
	// Kind selects the backend (dir, object).
	Kind string `mapstructure:"kind" default:"dir"`
	// Dir is the directory holding one file per key (kind=dir).
	Dir string `mapstructure:"dir" default:"values"`
	// Prefix is the object name prefix inside the bucket (kind=object).
	Prefix string `mapstructure:"prefix" default:"values"`
	// CacheTTLSeconds enables value caching when positive.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
	// WatchDebounceMs is how long a value file must stay unchanged before
	// the watch loop applies it (kind=dir). Zero applies every event.
	WatchDebounceMs int `mapstructure:"watch_debounce_ms" default:"500"`
}

// WatchDebounce returns the watch debounce interval.
func (c Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

const (
	KindDir    = "dir"
	KindObject = "object"
)
