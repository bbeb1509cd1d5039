// Package recycle drives the Windows Recycle Bin through the shell32 API.
// The bin is not a plain directory, so it cannot go through the regular
// delete-contents path.
package recycle

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	modShell32          = syscall.NewLazyDLL("shell32.dll")
	procQueryRecycleBin = modShell32.NewProc("SHQueryRecycleBinW")
	procEmptyRecycleBin = modShell32.NewProc("SHEmptyRecycleBinW")
)

const (
	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004
)

// shQueryRBInfo mirrors the Windows SHQUERYRBINFO struct. Go's natural
// alignment adds padding after cbSize on AMD64, matching the C layout.
type shQueryRBInfo struct {
	cbSize      uint32
	i64Size     int64
	i64NumItems int64
}

// Bin empties the Recycle Bin across all drives. The zero value is ready to
// use.
type Bin struct{}

// Size returns the total byte size of items currently in the Recycle Bin.
// The Shell API reports an aggregate, so the figure is an estimate rather
// than a per-file measurement.
func (Bin) Size() (int64, error) {
	var info shQueryRBInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	ret, _, _ := procQueryRecycleBin.Call(
		0, // NULL = all drives
		uintptr(unsafe.Pointer(&info)),
	)
	if ret != 0 {
		return 0, fmt.Errorf("SHQueryRecycleBinW failed: HRESULT 0x%08x", uint32(ret))
	}
	return info.i64Size, nil
}

// Empty empties the Recycle Bin on all drives without confirmation, progress
// UI, or sound.
func (Bin) Empty() error {
	flags := uintptr(sherbNoConfirmation | sherbNoProgressUI | sherbNoSound)
	ret, _, _ := procEmptyRecycleBin.Call(0, 0, flags)

	hr := uint32(ret)
	// S_OK = success, E_UNEXPECTED = bin already empty.
	if hr != 0 && hr != 0x8000FFFF {
		return fmt.Errorf("SHEmptyRecycleBinW failed: HRESULT 0x%08x", hr)
	}
	return nil
}
