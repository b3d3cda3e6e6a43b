//go:build !unix

package config

import "runtime"

// Machine returns the Go name of the architecture on systems without uname.
func Machine() string {
	return runtime.GOARCH
}
