package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector against the running host.
type RealDetector struct {
	goos string
}

// NewDetector creates a detector for the current runtime.
func NewDetector() Detector {
	return &RealDetector{goos: runtime.GOOS}
}

// Detect resolves the OS name to a supported Platform.
//
// On Linux it additionally asks gopsutil for distribution details. A failed
// lookup degrades to an Info without distro fields; a cancelled context is
// a hard failure.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	os, err := resolve(d.goos)
	if err != nil {
		return nil, err
	}

	info := &Info{
		OS:   os,
		Arch: runtime.GOARCH,
	}

	if os == Linux {
		distro, _, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			// Graceful fallback: distro detail is diagnostic only.
			return info, nil
		}
		info.Distro = distro
		info.Version = version
	}

	return info, nil
}

// resolve maps an OS name onto the closed platform set.
func resolve(goos string) (Platform, error) {
	switch goos {
	case "darwin":
		return Darwin, nil
	case "linux":
		return Linux, nil
	default:
		return "", &UnsupportedOSError{OS: goos}
	}
}
