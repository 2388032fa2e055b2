package discovery

// Rect is a rectangle in virtual desktop coordinates
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// OutputDesc is the raw descriptor of an output as reported by the platform
type OutputDesc struct {

	// The device path as wide characters, possibly NUL-terminated
	DeviceName []uint16

	// The output's bounds in virtual desktop coordinates
	DesktopCoordinates Rect

	// Specifies whether the output is attached to the desktop
	AttachedToDesktop bool

	// The monitor handle referenced by the descriptor, or zero if the platform surface exposes none
	Monitor uintptr

	// The primary flag embedded in the descriptor itself
	PrimaryFlag bool
}

// Platform is the entry point into a graphics-enumeration subsystem
type Platform interface {

	// Acquires the subsystem for the calling thread
	Open() (Session, error)
}

// Session is one acquisition of the subsystem. Close must be called exactly once.
type Session interface {
	CreateFactory() (Factory, error)
	Close()
}

// Factory enumerates adapters by index. Returns DXGI_ERROR_NOT_FOUND past the last adapter.
type Factory interface {
	EnumAdapters(index uint32) (Adapter, error)
	Release()
}

// Adapter enumerates its outputs by index. Returns DXGI_ERROR_NOT_FOUND past the last output.
type Adapter interface {
	EnumOutputs(index uint32) (OutputHandle, error)
	Release()
}

// OutputHandle is a live reference to a platform output
type OutputHandle interface {
	Desc() (OutputDesc, error)
	Release()
}

// MonitorQuerier is implemented by platforms whose window-management layer can report
// whether a monitor handle refers to the primary monitor
type MonitorQuerier interface {
	IsPrimaryMonitor(monitor uintptr) (bool, error)
}
