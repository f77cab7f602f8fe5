package main

import (
	"context"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/godelw/internal/digest"
	"github.com/ZebulonRouseFrantzich/godelw/internal/dist"
	"github.com/ZebulonRouseFrantzich/godelw/internal/fetch"
	"github.com/ZebulonRouseFrantzich/godelw/internal/install"
	"github.com/ZebulonRouseFrantzich/godelw/internal/launch"
	"github.com/ZebulonRouseFrantzich/godelw/internal/layout"
	"github.com/ZebulonRouseFrantzich/godelw/internal/logging"
	"github.com/ZebulonRouseFrantzich/godelw/internal/platform"
	"github.com/ZebulonRouseFrantzich/godelw/internal/properties"
)

// distName is the tool every wrapper build provisions.
const distName = "godel"

// wrapper is the whole pipeline: detect, ensure installed, verify, launch.
// Its collaborators are fields so tests can substitute them.
type wrapper struct {
	pin         dist.Pin
	detector    platform.Detector
	fetcher     fetch.Chain
	digests     digest.Chain
	launcher    launch.Launcher
	wrapperPath func() (string, error)
}

func newWrapper(pin dist.Pin) *wrapper {
	return &wrapper{
		pin:         pin,
		detector:    platform.NewDetector(),
		fetcher:     fetch.DefaultChain("godelw/" + pin.Version),
		digests:     digest.DefaultChain(),
		launcher:    launch.New(),
		wrapperPath: layout.WrapperPath,
	}
}

// run executes the pipeline for one invocation and returns the exit code
// to propagate. On unix a successful run never returns: the launch step
// replaces the process image.
func (w *wrapper) run(ctx context.Context, args []string) (int, error) {
	log := logging.FromContext(ctx)

	info, err := w.detector.Detect(ctx)
	if err != nil {
		return 0, err
	}
	log.Debug().
		Str("component", "wrapper").
		Str("platform", info.OS.String()).
		Str("arch", info.Arch).
		Str("distro", info.Distro).
		Str("distro_version", info.Version).
		Msg("detected platform")

	home, err := layout.Resolve()
	if err != nil {
		return 0, err
	}

	wrapperPath, err := w.wrapperPath()
	if err != nil {
		return 0, err
	}

	d := dist.Distribution{Name: distName, Version: w.pin.Version}
	installer, err := install.NewInstaller(install.Config{
		Home:         home,
		Distribution: d,
		Platform:     info.OS,
		Fetcher:      w.fetcher,
		Digests:      w.digests,
	})
	if err != nil {
		return 0, err
	}

	// An already-cached install launches without touching the network or
	// the properties file.
	if !installer.IsInstalled() {
		cfg, err := properties.Load(layout.PropertiesPath(filepath.Dir(wrapperPath)))
		if err != nil {
			return 0, err
		}
		if _, err := installer.Install(ctx, cfg); err != nil {
			return 0, err
		}
	}

	binary := installer.BinaryPath()
	if expected, ok := w.pin.ChecksumFor(info.OS); ok {
		if err := w.digests.Verify(ctx, binary, expected); err != nil {
			return 0, err
		}
		log.Debug().Str("component", "wrapper").Msg("resident binary checksum verified")
	} else {
		// Only dev builds lack a pinned checksum; make the relaxed check
		// visible without GODELW_DEBUG.
		log.Warn().
			Str("component", "wrapper").
			Str("platform", info.OS.String()).
			Msg("no pinned checksum for platform, launching without binary verification")
	}

	log.Debug().
		Str("component", "wrapper").
		Str("binary", binary).
		Msg("launching")
	return w.launcher.Launch(ctx, launch.Invocation{
		Binary:      binary,
		WrapperPath: wrapperPath,
		Args:        args,
	})
}
