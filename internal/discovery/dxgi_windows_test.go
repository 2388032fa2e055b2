//go:build windows && amd64

package discovery

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/windows"
)

func TestDescriptorLayouts(t *testing.T) {
	assert.Equal(t, uintptr(96), unsafe.Sizeof(dxgiOutputDesc{}))
	assert.Equal(t, uintptr(88), unsafe.Offsetof(dxgiOutputDesc{}.Monitor))
	assert.Equal(t, uintptr(40), unsafe.Sizeof(monitorInfo{}))
}

func TestHresultFromWin32(t *testing.T) {
	assert.Equal(t, HRESULT(0x80070578), hresultFromWin32(windows.Errno(0x578)))
	assert.Equal(t, E_FAIL, hresultFromWin32(nil))
}
