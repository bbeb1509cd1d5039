// Package sysinfo reports Windows version and volume usage for the status
// command.
package sysinfo

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"
)

// ─── Windows version ─────────────────────────────────────────────────────────

// GetWindowsVersion returns the major, minor, and build numbers of the
// current Windows version. RtlGetNtVersionNumbers works on all Windows
// versions without manifest requirements.
func GetWindowsVersion() (major, minor, build uint32) {
	major, minor, build = windows.RtlGetNtVersionNumbers()
	// The build number comes back with high bits set; mask them off.
	build &= 0xFFFF
	return major, minor, build
}

// WindowsVersionString returns a human-readable Windows version string,
// e.g. "Windows 11 (Build 22621)".
func WindowsVersionString() string {
	major, minor, build := GetWindowsVersion()

	var name string
	switch {
	case major == 10 && build >= 22000:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	case major == 6 && minor == 3:
		name = "Windows 8.1"
	case major == 6 && minor == 2:
		name = "Windows 8"
	case major == 6 && minor == 1:
		name = "Windows 7"
	default:
		name = fmt.Sprintf("Windows %d.%d", major, minor)
	}

	return fmt.Sprintf("%s (Build %d)", name, build)
}

// ─── Volumes ─────────────────────────────────────────────────────────────────

// Volume describes one fixed local disk.
type Volume struct {
	DeviceID    string // "C:"
	Label       string
	Total       uint64
	Free        uint64
	UsedPercent float64
}

// Win32_LogicalDisk is the WMI class shape; the name must match the class.
type Win32_LogicalDisk struct {
	DeviceID   string
	VolumeName *string
}

// Volumes enumerates fixed local disks (WMI DriveType 3) with their usage.
func Volumes() ([]Volume, error) {
	var disks []Win32_LogicalDisk
	query := wmi.CreateQuery(&disks, "WHERE DriveType = 3")
	if err := wmi.Query(query, &disks); err != nil {
		return nil, fmt.Errorf("query logical disks: %w", err)
	}

	var vols []Volume
	for _, d := range disks {
		v := Volume{DeviceID: d.DeviceID}
		if d.VolumeName != nil {
			v.Label = *d.VolumeName
		}
		usage, err := disk.Usage(d.DeviceID + `\`)
		if err != nil {
			// Keep the volume visible even when usage is unreadable.
			vols = append(vols, v)
			continue
		}
		v.Total = usage.Total
		v.Free = usage.Free
		v.UsedPercent = usage.UsedPercent
		vols = append(vols, v)
	}
	return vols, nil
}

// FreeSpace returns the free bytes on the volume holding path. Used to show
// the free-space delta around a cleaning run.
func FreeSpace(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}
