//go:build unix

package config

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Machine returns the hardware name reported by uname, e.g. x86_64.
func Machine() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return runtime.GOARCH
	}
	return unix.ByteSliceToString(uts.Machine[:])
}
