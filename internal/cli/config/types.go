// Package config provides configuration management for the sqlfront CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	Dialect         string `koanf:"dialect"`
	Output          string `koanf:"output"`
	Verbose         bool   `koanf:"verbose"`
	StrictIntervals bool   `koanf:"strict_intervals"`
	HistoryFile     string `koanf:"history_file"`

	// ConfigFile is the file the configuration was read from, if any.
	ConfigFile string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // TTY=table, non-TTY=text
	DefaultHistoryFile = ".sqlfront_history"
	EnvPrefix          = "SQLFRONT_"
)

// configFileNames are searched, in order, in the working directory.
var configFileNames = []string{"sqlfront.yaml", "sqlfront.yml"}
