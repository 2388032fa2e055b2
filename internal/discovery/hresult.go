package discovery

import (
	"errors"
	"fmt"

	"github.com/go-ole/go-ole"
)

// HRESULT is a status code returned by the platform graphics subsystem
type HRESULT uint32

const (
	S_OK                      HRESULT = 0x00000000
	S_FALSE                   HRESULT = 0x00000001
	E_NOTIMPL                 HRESULT = 0x80004001
	E_POINTER                 HRESULT = 0x80004003
	E_FAIL                    HRESULT = 0x80004005
	RPC_E_CHANGED_MODE        HRESULT = 0x80010106
	DXGI_ERROR_INVALID_CALL   HRESULT = 0x887A0001
	DXGI_ERROR_NOT_FOUND      HRESULT = 0x887A0002
	DXGI_ERROR_DEVICE_REMOVED HRESULT = 0x887A0005
	DXGI_ERROR_UNSUPPORTED    HRESULT = 0x887A0004
)

var hresultNames = map[HRESULT]string{
	S_OK:                      "S_OK",
	S_FALSE:                   "S_FALSE",
	E_NOTIMPL:                 "E_NOTIMPL",
	E_POINTER:                 "E_POINTER",
	E_FAIL:                    "E_FAIL",
	RPC_E_CHANGED_MODE:        "RPC_E_CHANGED_MODE",
	DXGI_ERROR_INVALID_CALL:   "DXGI_ERROR_INVALID_CALL",
	DXGI_ERROR_NOT_FOUND:      "DXGI_ERROR_NOT_FOUND",
	DXGI_ERROR_DEVICE_REMOVED: "DXGI_ERROR_DEVICE_REMOVED",
	DXGI_ERROR_UNSUPPORTED:    "DXGI_ERROR_UNSUPPORTED",
}

// Failed reports whether the status code has the severity bit set
func (hr HRESULT) Failed() bool {
	return int32(hr) < 0
}

func (hr HRESULT) Error() string {
	if name, known := hresultNames[hr]; known {
		return fmt.Sprintf("HRESULT 0x%08X (%s)", uint32(hr), name)
	}

	return fmt.Sprintf("HRESULT 0x%08X", uint32(hr))
}

// Extracts the platform status code carried by an error, falling back to E_FAIL when the error carries none
func statusOf(err error) HRESULT {

	// Prefer an HRESULT anywhere in the chain
	var hr HRESULT
	if errors.As(err, &hr) {
		return hr
	}

	// COM errors raised through go-ole carry their own code
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) {
		return HRESULT(oleErr.Code())
	}

	return E_FAIL
}
