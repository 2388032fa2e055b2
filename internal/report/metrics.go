package report

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tensorworks/dxgi-probe/internal/discovery"
)

var outputLabels = []string{"adapter", "output", "device", "primary"}

// Registers gauges describing the outputs with a fresh registry
func newMetricsRegistry(outputs []discovery.Output) *prometheus.Registry {
	registry := prometheus.NewRegistry()

	outputCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dxgi_probe_outputs",
		Help: "Number of active display outputs reported by the last enumeration.",
	})
	adapterCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dxgi_probe_adapters",
		Help: "Number of adapters owning at least one reported display output.",
	})
	width := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dxgi_probe_output_width_pixels",
		Help: "Width of the output's desktop rectangle in pixels.",
	}, outputLabels)
	height := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dxgi_probe_output_height_pixels",
		Help: "Height of the output's desktop rectangle in pixels.",
	}, outputLabels)
	registry.MustRegister(outputCount, adapterCount, width, height)

	summary := Summarize(outputs)
	outputCount.Set(float64(summary.Outputs))
	adapterCount.Set(float64(summary.Adapters))

	for _, output := range outputs {
		labels := prometheus.Labels{
			"adapter": strconv.Itoa(output.AdapterIndex),
			"output":  strconv.Itoa(output.OutputIndex),
			"device":  output.DeviceName,
			"primary": strconv.FormatBool(output.Primary),
		}
		width.With(labels).Set(float64(output.Width))
		height.With(labels).Set(float64(output.Height))
	}

	return registry
}

// WriteMetrics writes the outputs as a Prometheus textfile, for collection by the node exporter's textfile collector
func WriteMetrics(path string, outputs []discovery.Output) error {
	return prometheus.WriteToTextfile(path, newMetricsRegistry(outputs))
}
