package probe

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tensorworks/dxgi-probe/internal/discovery"
	"github.com/tensorworks/dxgi-probe/internal/report"
)

// The name used for the configuration file and as the basis for environment variable names
const toolName = "dxgi-probe"

// The prefix for our environment variables
const envPrefix = "DXGI_PROBE_"

// ProbeConfig represents the available configuration options for the probe
type ProbeConfig struct {

	// The format used to print the report (table, json or yaml)
	Format string

	// Which outputs to include in the report (all, primary or secondary)
	Filter string

	// How the primary display is determined (auto, monitor or descriptor)
	PrimaryStrategy string

	// Specifies whether the report includes the host identity
	IncludeHost bool

	// If set, a Prometheus textfile with the enumeration results is written to this path
	MetricsFile string

	// The minimum level of log messages (debug, info, warn or error)
	LogLevel string

	// The encoding of log messages (console or json)
	LogFormat string

	// If set, log messages are also written to this file with rotation
	LogFile string

	// The rotation limits for the log file
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	// Forces debug-level logging
	Verbose bool
}

// The flags that can override configuration values, keyed by configuration key
var flagKeys = map[string]string{
	"format":          "format",
	"filter":          "filter",
	"primaryStrategy": "primary-strategy",
	"includeHost":     "include-host",
	"metricsFile":     "metrics-file",
	"logLevel":        "log-level",
	"logFile":         "log-file",
	"verbose":         "verbose",
}

// RegisterFlags adds the command-line flags understood by LoadConfig to the supplied flag set
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("format", "table", "output format (table, json, yaml)")
	flags.String("filter", "all", "outputs to report (all, primary, secondary)")
	flags.String("primary-strategy", "auto", "primary display detection (auto, monitor, descriptor)")
	flags.Bool("include-host", true, "include the host identity in json and yaml reports")
	flags.String("metrics-file", "", "write a Prometheus textfile with the enumeration results to this path")
	flags.String("log-level", "info", "minimum log level (debug, info, warn, error)")
	flags.String("log-file", "", "also write logs to this file, with rotation")
	flags.BoolP("verbose", "v", false, "enable verbose logging")
}

// LoadConfig loads the configuration data from the runtime environment.
// Precedence (highest first): changed flags, environment variables, configuration file, defaults.
func LoadConfig(flags *pflag.FlagSet, logger *zap.SugaredLogger) (*ProbeConfig, error) {

	// Set our default configuration values
	v := viper.New()
	v.SetDefault("format", string(report.FormatTable))
	v.SetDefault("filter", string(report.AllOutputs))
	v.SetDefault("primaryStrategy", discovery.PrimaryAuto.String())
	v.SetDefault("includeHost", true)
	v.SetDefault("metricsFile", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "console")
	v.SetDefault("logFile", "")
	v.SetDefault("logMaxSizeMB", 10)
	v.SetDefault("logMaxBackups", 3)
	v.SetDefault("logMaxAgeDays", 7)
	v.SetDefault("verbose", false)

	// The names of our environment variables are the upper snake case forms of the keys
	for _, key := range []string{
		"format", "filter", "primaryStrategy", "includeHost", "metricsFile", "logLevel",
		"logFormat", "logFile", "logMaxSizeMB", "logMaxBackups", "logMaxAgeDays", "verbose",
	} {
		v.BindEnv(key, envPrefix+envName(key))
	}

	// Bind any command-line flags, which only take effect when explicitly set
	if flags != nil {
		for key, flagName := range flagKeys {
			if flag := flags.Lookup(flagName); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}
	}

	// Check if a config file path was explicitly specified through an environment variable
	configPath, configPathExists := os.LookupEnv(envPrefix + "CONFIG_FILE")
	if configPathExists {

		// Verify that the specified value is an absolute path
		if !filepath.IsAbs(configPath) {
			return nil, errors.New("configuration file path must be an absolute path")
		}

		// Verify that the specified file exists
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("specified configuration file does not exist: %s", configPath)
		}

		// Use the specified path
		v.SetConfigFile(configPath)

	} else {

		// We search for the configuration file in both our global config directory and the current working directory
		v.SetConfigName(toolName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("\\etc\\dxgi-probe")
	}

	// Attempt to parse our YAML configuration file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.Debugw("Configuration file not found, using configuration values from flags and environment variables")
		} else {
			return nil, err
		}
	}

	// Load the parsed configuration values into our struct
	c := &ProbeConfig{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}

	// Verify that the enumerated values are ones we understand
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger.Debugw("Parsed configuration data", "config", c)
	return c, nil
}

// Validate checks that every enumerated configuration value is recognised
func (c *ProbeConfig) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if _, err := report.ParseFilter(c.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if _, err := discovery.ParsePrimaryStrategy(c.PrimaryStrategy); err != nil {
		return fmt.Errorf("primaryStrategy: %w", err)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}

	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("logFormat: invalid log format %q (expected console or json)", c.LogFormat)
	}

	return nil
}

// Converts a camel case configuration key into its upper snake case environment variable suffix
func envName(key string) string {
	var builder strings.Builder
	previousLower := false
	for _, r := range key {
		isUpper := r >= 'A' && r <= 'Z'
		if isUpper && previousLower {
			builder.WriteByte('_')
		}
		builder.WriteRune(r)
		previousLower = !isUpper
	}

	return strings.ToUpper(builder.String())
}
