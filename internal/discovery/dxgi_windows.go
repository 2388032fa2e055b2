//go:build windows

package discovery

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var (
	dxgidll                = windows.NewLazySystemDLL("dxgi.dll")
	procCreateDXGIFactory1 = dxgidll.NewProc("CreateDXGIFactory1")
	user32dll              = windows.NewLazySystemDLL("user32.dll")
	procGetMonitorInfoW    = user32dll.NewProc("GetMonitorInfoW")
	iidIDXGIFactory1       = ole.NewGUID("{770aae78-f26f-4dba-a829-253c83d1b387}")
)

// COM vtable slots (IUnknown occupies 0-2, IDXGIObject 3-6)
const (
	vtblFactory1EnumAdapters1 = 12
	vtblAdapterEnumOutputs    = 7
	vtblOutputGetDesc         = 7
)

// Matches the layout of DXGI_OUTPUT_DESC
type dxgiOutputDesc struct {
	DeviceName         [32]uint16
	DesktopCoordinates windows.Rect
	AttachedToDesktop  int32
	Rotation           uint32
	Monitor            uintptr
}

// Matches the layout of MONITORINFO
type monitorInfo struct {
	Size    uint32
	Monitor windows.Rect
	Work    windows.Rect
	Flags   uint32
}

const monitorInfoPrimary = 0x00000001

// Invokes the COM method at the given vtable slot of obj
func comCall(obj *ole.IUnknown, slot int, args ...uintptr) HRESULT {
	vtable := *(*uintptr)(unsafe.Pointer(obj))
	fn := *(*uintptr)(unsafe.Pointer(vtable + uintptr(slot)*unsafe.Sizeof(uintptr(0))))
	allArgs := append([]uintptr{uintptr(unsafe.Pointer(obj))}, args...)
	result, _, _ := syscall.SyscallN(fn, allArgs...)
	return HRESULT(result)
}

// Converts the error from a failed Win32 call into an HRESULT
func hresultFromWin32(err error) HRESULT {
	if errno, ok := err.(windows.Errno); ok && errno != 0 {
		return HRESULT(0x80070000 | (uint32(errno) & 0xFFFF))
	}

	return E_FAIL
}

// dxgiPlatform enumerates outputs through DXGI and answers primary queries through user32
type dxgiPlatform struct{}

// DefaultPlatform returns the DXGI platform binding
func DefaultPlatform() Platform {
	return &dxgiPlatform{}
}

func (p *dxgiPlatform) Open() (Session, error) {

	// COM apartment state is per OS thread, so pin this goroutine until the session closes
	runtime.LockOSThread()

	// S_FALSE means COM was already initialized on this thread in a compatible mode, which still needs balancing
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil && statusOf(err) != S_FALSE {
		runtime.UnlockOSThread()
		return nil, err
	}

	return &dxgiSession{}, nil
}

// IsPrimaryMonitor asks the window manager whether the monitor is the primary one
func (p *dxgiPlatform) IsPrimaryMonitor(monitor uintptr) (bool, error) {

	// Attempt to load user32.dll
	if err := procGetMonitorInfoW.Find(); err != nil {
		return false, fmt.Errorf("failed to load %s: %w", user32dll.Name, E_NOTIMPL)
	}

	info := monitorInfo{}
	info.Size = uint32(unsafe.Sizeof(info))
	result, _, err := procGetMonitorInfoW.Call(monitor, uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return false, hresultFromWin32(err)
	}

	return info.Flags&monitorInfoPrimary != 0, nil
}

type dxgiSession struct {
	closed bool
}

func (s *dxgiSession) CreateFactory() (Factory, error) {

	// Attempt to load dxgi.dll, which is absent when there is no graphics stack
	if err := procCreateDXGIFactory1.Find(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", dxgidll.Name, E_NOTIMPL)
	}

	var factory *ole.IUnknown
	result, _, _ := procCreateDXGIFactory1.Call(
		uintptr(unsafe.Pointer(iidIDXGIFactory1)),
		uintptr(unsafe.Pointer(&factory)),
	)
	if hr := HRESULT(result); hr.Failed() {
		return nil, hr
	}
	if factory == nil {
		return nil, E_POINTER
	}

	return &dxgiFactory{factory}, nil
}

func (s *dxgiSession) Close() {
	if s.closed {
		return
	}
	s.closed = true

	ole.CoUninitialize()
	runtime.UnlockOSThread()
}

// Wraps an IDXGIFactory1
type dxgiFactory struct {
	obj *ole.IUnknown
}

func (f *dxgiFactory) EnumAdapters(index uint32) (Adapter, error) {
	var adapter *ole.IUnknown
	if hr := comCall(f.obj, vtblFactory1EnumAdapters1, uintptr(index), uintptr(unsafe.Pointer(&adapter))); hr.Failed() {
		return nil, hr
	}
	if adapter == nil {
		return nil, E_POINTER
	}

	return &dxgiAdapter{adapter}, nil
}

func (f *dxgiFactory) Release() {
	f.obj.Release()
}

// Wraps an IDXGIAdapter1
type dxgiAdapter struct {
	obj *ole.IUnknown
}

func (a *dxgiAdapter) EnumOutputs(index uint32) (OutputHandle, error) {
	var output *ole.IUnknown
	if hr := comCall(a.obj, vtblAdapterEnumOutputs, uintptr(index), uintptr(unsafe.Pointer(&output))); hr.Failed() {
		return nil, hr
	}
	if output == nil {
		return nil, E_POINTER
	}

	return &dxgiOutput{output}, nil
}

func (a *dxgiAdapter) Release() {
	a.obj.Release()
}

// Wraps an IDXGIOutput
type dxgiOutput struct {
	obj *ole.IUnknown
}

func (o *dxgiOutput) Desc() (OutputDesc, error) {
	desc := dxgiOutputDesc{}
	if hr := comCall(o.obj, vtblOutputGetDesc, uintptr(unsafe.Pointer(&desc))); hr.Failed() {
		return OutputDesc{}, hr
	}

	rect := Rect{
		Left:   desc.DesktopCoordinates.Left,
		Top:    desc.DesktopCoordinates.Top,
		Right:  desc.DesktopCoordinates.Right,
		Bottom: desc.DesktopCoordinates.Bottom,
	}

	// DXGI_OUTPUT_DESC has no primary flag of its own, so the descriptor strategy falls back to
	// the primary display's defining property: it hosts the virtual desktop origin
	return OutputDesc{
		DeviceName:         desc.DeviceName[:],
		DesktopCoordinates: rect,
		AttachedToDesktop:  desc.AttachedToDesktop != 0,
		Monitor:            desc.Monitor,
		PrimaryFlag:        rect.Left == 0 && rect.Top == 0,
	}, nil
}

func (o *dxgiOutput) Release() {
	o.obj.Release()
}
