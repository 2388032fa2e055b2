package discovery

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// PrimaryStrategy selects how the mapper decides whether an output is the primary display
type PrimaryStrategy int

const (

	// Use the monitor query when the platform offers one, otherwise the descriptor flag
	PrimaryAuto PrimaryStrategy = iota

	// Ask the window-management layer about the monitor handle referenced by the descriptor.
	// This reflects the live desktop arrangement and is authoritative.
	PrimaryFromMonitor

	// Use the flag embedded in the output descriptor
	PrimaryFromDescriptor
)

func (s PrimaryStrategy) String() string {
	switch s {
	case PrimaryAuto:
		return "auto"
	case PrimaryFromMonitor:
		return "monitor"
	case PrimaryFromDescriptor:
		return "descriptor"
	default:
		return fmt.Sprintf("PrimaryStrategy(%d)", int(s))
	}
}

// ParsePrimaryStrategy parses "auto", "monitor" or "descriptor" (case-insensitive)
func ParsePrimaryStrategy(s string) (PrimaryStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PrimaryAuto, nil
	case "monitor":
		return PrimaryFromMonitor, nil
	case "descriptor":
		return PrimaryFromDescriptor, nil
	default:
		return PrimaryAuto, fmt.Errorf("invalid primary strategy %q (expected auto, monitor, or descriptor)", s)
	}
}

// Converts one platform descriptor into an Output record. querier is nil under PrimaryFromDescriptor.
func mapDescriptor(adapterIndex int, outputIndex int, desc OutputDesc, querier MonitorQuerier) (Output, error) {

	// Width and height are derived from the desktop rectangle and must both be positive
	rect := desc.DesktopCoordinates
	width := int(rect.Right) - int(rect.Left)
	height := int(rect.Bottom) - int(rect.Top)
	if width <= 0 || height <= 0 {
		return Output{}, newEnumerationError(
			ErrDescriptorFetch,
			opGetDesc,
			adapterIndex,
			outputIndex,
			fmt.Errorf("desktop rectangle (%d,%d)-(%d,%d) has a non-positive extent", rect.Left, rect.Top, rect.Right, rect.Bottom),
		)
	}

	// Determine whether the output is the primary display
	primary := desc.PrimaryFlag
	if querier != nil {
		if desc.Monitor == 0 {
			return Output{}, newEnumerationError(ErrDescriptorFetch, opGetMonitorInfoW, adapterIndex, outputIndex, E_POINTER)
		}

		isPrimary, err := querier.IsPrimaryMonitor(desc.Monitor)
		if err != nil {
			return Output{}, newEnumerationError(ErrDescriptorFetch, opGetMonitorInfoW, adapterIndex, outputIndex, err)
		}
		primary = isPrimary
	}

	return Output{
		AdapterIndex: adapterIndex,
		OutputIndex:  outputIndex,
		DeviceName:   deviceNameString(desc.DeviceName),
		Width:        width,
		Height:       height,
		Primary:      primary,
	}, nil
}

// Decodes a wide-character device path up to its first NUL. Unpaired surrogates become U+FFFD.
func deviceNameString(name []uint16) string {
	for i, c := range name {
		if c == 0 {
			name = name[:i]
			break
		}
	}

	return string(utf16.Decode(name))
}
