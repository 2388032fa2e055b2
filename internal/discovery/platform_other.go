//go:build !windows

package discovery

// unsupportedPlatform stands in for DXGI on systems that have no such subsystem
type unsupportedPlatform struct{}

// DefaultPlatform returns a platform whose factory creation always fails, since display
// enumeration is only implemented for DXGI on Windows
func DefaultPlatform() Platform {
	return unsupportedPlatform{}
}

func (unsupportedPlatform) Open() (Session, error) {
	return unsupportedSession{}, nil
}

type unsupportedSession struct{}

func (unsupportedSession) CreateFactory() (Factory, error) {
	return nil, E_NOTIMPL
}

func (unsupportedSession) Close() {}
