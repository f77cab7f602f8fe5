// Package platform maps the running operating system onto the closed set of
// platforms godel distributions are built for.
//
// Detection keys off the runtime OS name. On Linux, gopsutil supplies
// distribution details for diagnostics; a failed distribution lookup is not
// an error, the extra detail is simply absent. Architecture is recorded but
// never gated on: distribution layouts pin <platform>-amd64 paths regardless
// of the local CPU.
package platform

import (
	"context"
	"fmt"
)

// Platform identifies an operating system a godel distribution ships a
// binary for. The set is closed: a distribution contains exactly one binary
// per member.
type Platform string

const (
	// Darwin is macOS.
	Darwin Platform = "darwin"
	// Linux is any Linux kernel.
	Linux Platform = "linux"
)

// String returns the identifier as it appears in distribution paths
// (e.g. "linux" in bin/linux-amd64/godel).
func (p Platform) String() string {
	return string(p)
}

// Supported lists the platforms in distribution order.
func Supported() []Platform {
	return []Platform{Darwin, Linux}
}

// Info describes the detected host.
type Info struct {
	OS      Platform
	Arch    string // runtime architecture, informational only
	Distro  string // Linux distribution ID, empty elsewhere or on lookup failure
	Version string // Linux distribution version, same caveats
}

// Detector is the interface for host platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// UnsupportedOSError reports an operating system no distribution is built
// for.
type UnsupportedOSError struct {
	OS string
}

func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf("unsupported operating system: %s (supported: darwin, linux)", e.OS)
}
