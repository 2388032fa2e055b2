package probe

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tensorworks/dxgi-probe/internal/discovery"
	"github.com/tensorworks/dxgi-probe/internal/report"
)

// The version number for the probe
const Version = "0.1.0"

// CommonMain loads the configuration, performs one enumeration against the default platform,
// and writes the report to out. Errors are logged before being returned.
func CommonMain(flags *pflag.FlagSet, out io.Writer) error {

	// Create a bootstrap logger for use until the configured one is available
	bootstrap, err := zap.NewDevelopment(zap.IncreaseLevel(zap.InfoLevel))
	if err != nil {
		return fmt.Errorf("failed to create the logger: %w", err)
	}
	defer bootstrap.Sync()

	// Load the probe configuration data
	config, err := LoadConfig(flags, bootstrap.Sugar())
	if err != nil {
		bootstrap.Sugar().Errorf("Error: failed to load the probe configuration: %v", err)
		return err
	}

	// Create the configured logger and sugar it
	logger, err := NewLogger(config)
	if err != nil {
		bootstrap.Sugar().Errorf("Error: failed to create the logger: %v", err)
		return err
	}
	sugar := logger.Sugar()
	defer sugar.Sync()

	sugar.Debugf("DXGI display output probe, version %s", Version)

	// Enumerate and report
	if err := Run(config, discovery.DefaultPlatform(), out, sugar); err != nil {
		sugar.Errorf("Error: %v", err)
		return err
	}

	return nil
}

// Run performs one enumeration against the supplied platform and writes the report to out
func Run(config *ProbeConfig, platform discovery.Platform, out io.Writer, logger *zap.SugaredLogger) error {

	// Parse the enumerated configuration values
	format, err := report.ParseFormat(config.Format)
	if err != nil {
		return err
	}
	filter, err := report.ParseFilter(config.Filter)
	if err != nil {
		return err
	}
	strategy, err := discovery.ParsePrimaryStrategy(config.PrimaryStrategy)
	if err != nil {
		return err
	}

	// Create the enumerator
	enumerator, err := discovery.NewEnumerator(
		platform,
		discovery.WithLogger(logger),
		discovery.WithPrimaryStrategy(strategy),
	)
	if err != nil {
		return fmt.Errorf("failed to create the enumerator: %w", err)
	}

	// Perform the enumeration
	outputs, err := enumerator.Enumerate()
	if err != nil {
		return fmt.Errorf("failed to enumerate display outputs: %w", err)
	}

	summary := report.Summarize(outputs)
	logger.Infow(
		"Enumerated display outputs",
		"adapters", summary.AdapterIndices(),
		"outputs", summary.Outputs,
		"primaryStrategy", enumerator.Strategy(),
	)

	// Export the unfiltered results for the textfile collector if requested
	if config.MetricsFile != "" {
		if err := report.WriteMetrics(config.MetricsFile, outputs); err != nil {
			return fmt.Errorf("failed to write the metrics file: %w", err)
		}
		logger.Infow("Wrote metrics file", "path", config.MetricsFile)
	}

	// The host identity is only useful in structured reports, and is best-effort
	var host *report.Host
	if config.IncludeHost && format != report.FormatTable {
		host, err = report.CollectHost()
		if err != nil {
			logger.Warnw("Omitting host identity from the report", "error", err)
			host = nil
		}
	}

	return report.Write(out, report.New(filter.Apply(outputs), host), format)
}
