package report

import (
	"fmt"
	"strings"

	"github.com/tensorworks/dxgi-probe/internal/discovery"
)

// OutputFilter selects which enumerated outputs are reported
type OutputFilter string

const (
	AllOutputs       OutputFilter = "all"
	PrimaryOutputs   OutputFilter = "primary"
	SecondaryOutputs OutputFilter = "secondary"
)

// ParseFilter parses "all", "primary" or "secondary" (case-insensitive)
func ParseFilter(s string) (OutputFilter, error) {
	switch OutputFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", AllOutputs:
		return AllOutputs, nil
	case PrimaryOutputs:
		return PrimaryOutputs, nil
	case SecondaryOutputs:
		return SecondaryOutputs, nil
	default:
		return "", fmt.Errorf("invalid filter %q (expected all, primary, or secondary)", s)
	}
}

// Apply returns the outputs that pass the filter, preserving their order
func (f OutputFilter) Apply(outputs []discovery.Output) []discovery.Output {
	filtered := []discovery.Output{}
	for _, output := range outputs {
		switch {
		case f == PrimaryOutputs && !output.Primary:
		case f == SecondaryOutputs && output.Primary:
		default:
			filtered = append(filtered, output)
		}
	}

	return filtered
}
