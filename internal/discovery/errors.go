package discovery

import (
	"errors"
	"fmt"
)

// The kinds of failure that abort an enumeration call
var (
	// The subsystem could not be acquired on the calling thread
	ErrSubsystemInit = errors.New("subsystem initialization failed")

	// No usable entry point into the subsystem could be created
	ErrFactoryCreation = errors.New("factory creation failed")

	// Listing adapters failed for a reason other than exhaustion
	ErrAdapterEnumeration = errors.New("adapter enumeration failed")

	// Listing an adapter's outputs failed for a reason other than exhaustion
	ErrOutputEnumeration = errors.New("output enumeration failed")

	// An output's descriptor or monitor information could not be read
	ErrDescriptorFetch = errors.New("descriptor fetch failed")
)

// Platform operation names reported in errors
const (
	opCoInitializeEx     = "CoInitializeEx"
	opCreateDXGIFactory1 = "CreateDXGIFactory1"
	opEnumAdapters1      = "IDXGIFactory1::EnumAdapters1"
	opEnumOutputs        = "IDXGIAdapter::EnumOutputs"
	opGetDesc            = "IDXGIOutput::GetDesc"
	opGetMonitorInfoW    = "GetMonitorInfoW"
)

// EnumerationError describes the single failure that aborted an enumeration call
type EnumerationError struct {

	// One of the Err* sentinels above
	Kind error

	// The name of the platform operation that failed
	Op string

	// The index of the adapter being processed, or -1 if the failure was not adapter-specific
	Adapter int

	// The index of the output being processed, or -1 if the failure was not output-specific
	Output int

	// The underlying platform status code
	Status HRESULT

	// The underlying cause
	Err error
}

func newEnumerationError(kind error, op string, adapter int, output int, err error) *EnumerationError {
	return &EnumerationError{
		Kind:    kind,
		Op:      op,
		Adapter: adapter,
		Output:  output,
		Status:  statusOf(err),
		Err:     err,
	}
}

func (e *EnumerationError) Error() string {
	location := ""
	switch {
	case e.Adapter >= 0 && e.Output >= 0:
		location = fmt.Sprintf(" (adapter %d, output %d)", e.Adapter, e.Output)
	case e.Adapter >= 0:
		location = fmt.Sprintf(" (adapter %d)", e.Adapter)
	}

	// Only repeat the cause when it says more than the status code does
	cause := e.Status.Error()
	if e.Err != nil && e.Err.Error() != cause {
		cause = fmt.Sprintf("%s: %v", cause, e.Err)
	}

	return fmt.Sprintf("%v: %s%s: %s", e.Kind, e.Op, location, cause)
}

// Unwrap exposes both the failure kind and the underlying cause to errors.Is and errors.As
func (e *EnumerationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
