package report

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/exp/slices"

	"github.com/tensorworks/dxgi-probe/internal/discovery"
)

// Host identifies the machine an enumeration ran on
type Host struct {
	Hostname        string `json:"hostname" yaml:"hostname"`
	OS              string `json:"os" yaml:"os"`
	Platform        string `json:"platform" yaml:"platform"`
	PlatformVersion string `json:"platform_version" yaml:"platform_version"`
	KernelArch      string `json:"kernel_arch" yaml:"kernel_arch"`
}

// Summary aggregates the reported outputs
type Summary struct {

	// The number of distinct adapters that own at least one reported output
	Adapters int `json:"adapters" yaml:"adapters"`

	// The number of reported outputs
	Outputs int `json:"outputs" yaml:"outputs"`

	// The number of reported outputs marked primary
	Primary int `json:"primary" yaml:"primary"`

	// The number of reported outputs owned by each adapter index
	OutputsPerAdapter map[int]int `json:"outputs_per_adapter" yaml:"outputs_per_adapter"`
}

// Report is the document printed by the probe
type Report struct {
	Host    *Host              `json:"host,omitempty" yaml:"host,omitempty"`
	Outputs []discovery.Output `json:"outputs" yaml:"outputs"`
	Summary Summary            `json:"summary" yaml:"summary"`
}

// New builds a report for the supplied outputs. host may be nil.
func New(outputs []discovery.Output, host *Host) *Report {
	if outputs == nil {
		outputs = []discovery.Output{}
	}

	return &Report{
		Host:    host,
		Outputs: outputs,
		Summary: Summarize(outputs),
	}
}

// Summarize counts the adapters, outputs and primary outputs in a result set
func Summarize(outputs []discovery.Output) Summary {
	summary := Summary{
		Outputs:           len(outputs),
		OutputsPerAdapter: make(map[int]int),
	}

	for _, output := range outputs {
		summary.OutputsPerAdapter[output.AdapterIndex] += 1
		if output.Primary {
			summary.Primary += 1
		}
	}

	summary.Adapters = len(summary.OutputsPerAdapter)
	return summary
}

// AdapterIndices returns the distinct adapter indices in the summary, in ascending order
func (s Summary) AdapterIndices() []int {
	indices := make([]int, 0, len(s.OutputsPerAdapter))
	for index := range s.OutputsPerAdapter {
		indices = append(indices, index)
	}
	slices.Sort(indices)
	return indices
}

// CollectHost queries the operating system for the host identity
func CollectHost() (*Host, error) {
	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to query host information: %w", err)
	}

	return &Host{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelArch:      info.KernelArch,
	}, nil
}
