package discovery

import (
	"unicode/utf16"
)

// An in-memory platform that records every acquisition and release
type fakePlatform struct {
	openErr    error
	factoryErr error
	adapters   []fakeAdapterSpec

	// Returned in place of DXGI_ERROR_NOT_FOUND once the adapters run out
	adapterErr error

	opens             int
	closes            int
	factoriesCreated  int
	factoriesReleased int
	adaptersAcquired  int
	adaptersReleased  int
	outputsAcquired   int
	outputsReleased   int
	doubleReleases    int

	// The kind of each released resource, in release order
	releases []string
}

type fakeAdapterSpec struct {
	outputs []fakeOutputSpec

	// Returned in place of DXGI_ERROR_NOT_FOUND once the outputs run out
	outputErr error
}

type fakeOutputSpec struct {
	desc OutputDesc
	err  error
}

// A fake platform whose window-management layer can answer monitor queries
type fakeMonitorPlatform struct {
	*fakePlatform
	monitors   map[uintptr]bool
	monitorErr error
	queries    int
}

func (p *fakeMonitorPlatform) IsPrimaryMonitor(monitor uintptr) (bool, error) {
	p.queries += 1
	if p.monitorErr != nil {
		return false, p.monitorErr
	}

	return p.monitors[monitor], nil
}

func (p *fakePlatform) Open() (Session, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}

	p.opens += 1
	return &fakeSession{platform: p}, nil
}

// Reports whether every acquired resource was released exactly once
func (p *fakePlatform) balanced() bool {
	return p.opens == p.closes &&
		p.factoriesCreated == p.factoriesReleased &&
		p.adaptersAcquired == p.adaptersReleased &&
		p.outputsAcquired == p.outputsReleased &&
		p.doubleReleases == 0
}

type fakeSession struct {
	platform *fakePlatform
	closed   bool
}

func (s *fakeSession) CreateFactory() (Factory, error) {
	if s.platform.factoryErr != nil {
		return nil, s.platform.factoryErr
	}

	s.platform.factoriesCreated += 1
	return &fakeFactory{platform: s.platform}, nil
}

func (s *fakeSession) Close() {
	if s.closed {
		s.platform.doubleReleases += 1
		return
	}
	s.closed = true
	s.platform.closes += 1
	s.platform.releases = append(s.platform.releases, "session")
}

type fakeFactory struct {
	platform *fakePlatform
	released bool
}

func (f *fakeFactory) EnumAdapters(index uint32) (Adapter, error) {
	if int(index) >= len(f.platform.adapters) {
		if f.platform.adapterErr != nil {
			return nil, f.platform.adapterErr
		}
		return nil, DXGI_ERROR_NOT_FOUND
	}

	f.platform.adaptersAcquired += 1
	return &fakeAdapter{platform: f.platform, spec: f.platform.adapters[index]}, nil
}

func (f *fakeFactory) Release() {
	if f.released {
		f.platform.doubleReleases += 1
		return
	}
	f.released = true
	f.platform.factoriesReleased += 1
	f.platform.releases = append(f.platform.releases, "factory")
}

type fakeAdapter struct {
	platform *fakePlatform
	spec     fakeAdapterSpec
	released bool
}

func (a *fakeAdapter) EnumOutputs(index uint32) (OutputHandle, error) {
	if int(index) >= len(a.spec.outputs) {
		if a.spec.outputErr != nil {
			return nil, a.spec.outputErr
		}
		return nil, DXGI_ERROR_NOT_FOUND
	}

	a.platform.outputsAcquired += 1
	return &fakeOutput{platform: a.platform, spec: a.spec.outputs[index]}, nil
}

func (a *fakeAdapter) Release() {
	if a.released {
		a.platform.doubleReleases += 1
		return
	}
	a.released = true
	a.platform.adaptersReleased += 1
	a.platform.releases = append(a.platform.releases, "adapter")
}

type fakeOutput struct {
	platform *fakePlatform
	spec     fakeOutputSpec
	released bool
}

func (o *fakeOutput) Desc() (OutputDesc, error) {
	if o.spec.err != nil {
		return OutputDesc{}, o.spec.err
	}

	return o.spec.desc, nil
}

func (o *fakeOutput) Release() {
	if o.released {
		o.platform.doubleReleases += 1
		return
	}
	o.released = true
	o.platform.outputsReleased += 1
	o.platform.releases = append(o.platform.releases, "output")
}

// Builds a descriptor the way DXGI reports one, with the device name NUL-padded to 32 wide chars
func wideName(name string) []uint16 {
	wide := make([]uint16, 32)
	copy(wide, utf16.Encode([]rune(name)))
	return wide
}

// Builds a descriptor for an output that is not part of the desktop
func detached(name string) fakeOutputSpec {
	return fakeOutputSpec{desc: OutputDesc{DeviceName: wideName(name)}}
}

func display(name string, left int32, top int32, width int32, height int32, monitor uintptr) fakeOutputSpec {
	return fakeOutputSpec{
		desc: OutputDesc{
			DeviceName: wideName(name),
			DesktopCoordinates: Rect{
				Left:   left,
				Top:    top,
				Right:  left + width,
				Bottom: top + height,
			},
			AttachedToDesktop: true,
			Monitor:           monitor,
			PrimaryFlag:       left == 0 && top == 0,
		},
	}
}
