package discovery

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrStrategyUnavailable is returned by NewEnumerator when the monitor strategy is forced on a
// platform that cannot query monitors
var ErrStrategyUnavailable = errors.New("primary strategy unavailable on this platform")

// Enumerator performs point-in-time enumeration of display outputs
type Enumerator struct {

	// The graphics-enumeration subsystem
	platform Platform

	// The monitor query used for primary detection, or nil when the descriptor flag is used
	querier MonitorQuerier

	// The resolved primary detection strategy
	strategy PrimaryStrategy

	// The logger used to log diagnostic information
	logger *zap.SugaredLogger
}

// Option configures an Enumerator
type Option func(*enumeratorOptions)

type enumeratorOptions struct {
	logger   *zap.SugaredLogger
	strategy PrimaryStrategy
}

// WithLogger sets the logger used for debug-level progress messages
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *enumeratorOptions) {
		o.logger = logger
	}
}

// WithPrimaryStrategy overrides the automatic choice of primary detection strategy
func WithPrimaryStrategy(strategy PrimaryStrategy) Option {
	return func(o *enumeratorOptions) {
		o.strategy = strategy
	}
}

// NewEnumerator creates an Enumerator for the supplied platform
func NewEnumerator(platform Platform, options ...Option) (*Enumerator, error) {

	// Apply any options over the defaults
	opts := &enumeratorOptions{
		logger:   zap.NewNop().Sugar(),
		strategy: PrimaryAuto,
	}
	for _, option := range options {
		option(opts)
	}

	// Resolve the primary detection strategy, so a single call never mixes the two
	querier, canQuery := platform.(MonitorQuerier)
	strategy := opts.strategy
	switch strategy {
	case PrimaryAuto:
		if canQuery {
			strategy = PrimaryFromMonitor
		} else {
			strategy = PrimaryFromDescriptor
		}

	case PrimaryFromMonitor:
		if !canQuery {
			return nil, ErrStrategyUnavailable
		}

	case PrimaryFromDescriptor:

	default:
		return nil, fmt.Errorf("unknown primary strategy %v", strategy)
	}

	if strategy == PrimaryFromDescriptor {
		querier = nil
	}

	return &Enumerator{
		platform: platform,
		querier:  querier,
		strategy: strategy,
		logger:   opts.logger,
	}, nil
}

// Strategy returns the resolved primary detection strategy
func (e *Enumerator) Strategy() PrimaryStrategy {
	return e.strategy
}

// Enumerate returns every active output in adapter-major, output-minor order.
// On failure it returns a nil slice and a single *EnumerationError.
func (e *Enumerator) Enumerate() ([]Output, error) {

	// Acquire the subsystem for the duration of the call
	session, err := e.platform.Open()
	if err != nil {
		return nil, newEnumerationError(ErrSubsystemInit, opCoInitializeEx, -1, -1, err)
	}
	defer session.Close()

	// Create the factory
	factory, err := session.CreateFactory()
	if err != nil {
		return nil, newEnumerationError(ErrFactoryCreation, opCreateDXGIFactory1, -1, -1, err)
	}
	defer factory.Release()

	e.logger.Debugw("Enumerating display outputs", "primaryStrategy", e.strategy)

	// Walk each adapter in turn, collecting its outputs
	outputs := []Output{}
	adapterIndex := 0
	for adapter, err := range adapterSequence(factory) {
		if err != nil {
			return nil, err
		}

		adapterOutputs, err := e.enumerateAdapter(adapterIndex, adapter)
		if err != nil {
			return nil, err
		}

		e.logger.Debugw("Enumerated adapter", "adapter", adapterIndex, "outputs", len(adapterOutputs))
		outputs = append(outputs, adapterOutputs...)
		adapterIndex += 1
	}

	e.logger.Debugw("Enumeration complete", "adapters", adapterIndex, "outputs", len(outputs))
	return outputs, nil
}

// Collects the outputs of a single adapter, releasing the adapter when done
func (e *Enumerator) enumerateAdapter(adapterIndex int, adapter Adapter) ([]Output, error) {
	defer adapter.Release()

	outputs := []Output{}
	platformIndex := 0
	for handle, err := range outputSequence(adapter, adapterIndex) {
		if err != nil {
			return nil, err
		}

		// Reported outputs are numbered densely, skipping any that are not part of the desktop
		output, active, err := e.describeOutput(adapterIndex, platformIndex, len(outputs), handle)
		if err != nil {
			return nil, err
		}
		if active {
			outputs = append(outputs, output)
		}
		platformIndex += 1
	}

	return outputs, nil
}

// Fetches and maps the descriptor for a single output, releasing the output when done.
// Errors name the platform's index for the output, while the record carries reportedIndex.
// Outputs that are not attached to the desktop are reported as inactive and are not mapped.
func (e *Enumerator) describeOutput(adapterIndex int, platformIndex int, reportedIndex int, handle OutputHandle) (Output, bool, error) {
	defer handle.Release()

	// Attempt to retrieve the output descriptor
	desc, err := handle.Desc()
	if err != nil {
		return Output{}, false, newEnumerationError(ErrDescriptorFetch, opGetDesc, adapterIndex, platformIndex, err)
	}

	if !desc.AttachedToDesktop {
		e.logger.Debugw("Skipping output not attached to the desktop", "adapter", adapterIndex, "platformOutput", platformIndex)
		return Output{}, false, nil
	}

	// Map the descriptor into a record
	output, err := mapDescriptor(adapterIndex, platformIndex, desc, e.querier)
	if err != nil {
		return Output{}, false, err
	}
	output.OutputIndex = reportedIndex

	e.logger.Debugw("Enumerated output", "output", output)
	return output, true, nil
}

// EnumerateOutputs enumerates the active display outputs using the default platform
func EnumerateOutputs() ([]Output, error) {
	enumerator, err := NewEnumerator(DefaultPlatform())
	if err != nil {
		return nil, err
	}

	return enumerator.Enumerate()
}
