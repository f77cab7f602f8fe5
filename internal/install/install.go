// Package install places a verified godel distribution into the cache.
//
// The sequence is fixed: download, checksum (when configured), archive
// content validation, extraction into a cache-local temp directory, version
// self-check, then a rename into dists/. Every failure is terminal; nothing
// is retried.
//
// Concurrent invocations sharing a cache are not coordinated. Each owns its
// temp directory, but the final remove-and-rename over dists/<version> is
// not exclusive, so two installers racing the same version can interleave.
// This is a known limitation of the wrapper's design, carried deliberately.
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/godelw/internal/archive"
	"github.com/ZebulonRouseFrantzich/godelw/internal/digest"
	"github.com/ZebulonRouseFrantzich/godelw/internal/dist"
	"github.com/ZebulonRouseFrantzich/godelw/internal/fetch"
	"github.com/ZebulonRouseFrantzich/godelw/internal/layout"
	"github.com/ZebulonRouseFrantzich/godelw/internal/logging"
	"github.com/ZebulonRouseFrantzich/godelw/internal/platform"
	"github.com/ZebulonRouseFrantzich/godelw/internal/properties"
)

// Installer downloads, verifies, and installs one distribution.
type Installer struct {
	home     layout.Home
	dist     dist.Distribution
	platform platform.Platform
	fetcher  fetch.Chain
	digests  digest.Chain
}

// Config holds what an Installer needs.
type Config struct {
	Home         layout.Home
	Distribution dist.Distribution
	Platform     platform.Platform
	Fetcher      fetch.Chain
	Digests      digest.Chain
}

// NewInstaller validates cfg and builds an Installer.
func NewInstaller(cfg Config) (*Installer, error) {
	if cfg.Home.Root() == "" {
		return nil, fmt.Errorf("cache root is required")
	}
	if cfg.Distribution.Name == "" || cfg.Distribution.Version == "" {
		return nil, fmt.Errorf("distribution name and version are required")
	}
	if cfg.Platform == "" {
		return nil, fmt.Errorf("platform is required")
	}

	return &Installer{
		home:     cfg.Home,
		dist:     cfg.Distribution,
		platform: cfg.Platform,
		fetcher:  cfg.Fetcher,
		digests:  cfg.Digests,
	}, nil
}

// BinaryPath returns where the installed platform binary lives (or will
// live) in the cache.
func (i *Installer) BinaryPath() string {
	return i.home.BinaryPath(i.dist, i.platform)
}

// IsInstalled reports whether the cached binary is present as a regular
// file. Presence alone: a broken binary fails at launch, not here.
func (i *Installer) IsInstalled() bool {
	info, err := os.Stat(i.BinaryPath())
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Install runs the full sequence against the distribution URL in cfg and
// returns the installed binary path. A mismatched checksum leaves the
// downloaded artifact in downloads/ for inspection; the temp extraction
// directory is removed before Install returns, whatever the outcome.
func (i *Installer) Install(ctx context.Context, cfg properties.Config) (string, error) {
	log := logging.FromContext(ctx)

	archivePath := i.home.ArchivePath(i.dist)
	log.Info().
		Str("component", "install").
		Str("url", cfg.DistributionURL).
		Str("version", i.dist.Version).
		Msg("downloading distribution")
	if err := i.fetcher.Fetch(ctx, cfg.DistributionURL, archivePath); err != nil {
		return "", err
	}

	if cfg.DistributionSHA256 != "" {
		if err := i.digests.Verify(ctx, archivePath, cfg.DistributionSHA256); err != nil {
			return "", err
		}
		log.Debug().Str("component", "install").Msg("archive checksum verified")
	}

	if err := archive.Validate(archivePath, i.dist.RequiredEntries()); err != nil {
		return "", err
	}

	if err := os.MkdirAll(i.home.Root(), 0o755); err != nil {
		return "", fmt.Errorf("create cache root: %w", err)
	}
	// Under the cache root on purpose: the rename below must not cross a
	// filesystem boundary.
	tmpDir, err := os.MkdirTemp(i.home.Root(), layout.TempPattern)
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := archive.Extract(archivePath, tmpDir); err != nil {
		return "", err
	}

	unpackedRoot := filepath.Join(tmpDir, i.dist.RootDir())
	unpackedBinary := filepath.Join(unpackedRoot, i.dist.BinaryRelPath(i.platform))
	if err := i.dist.VerifyVersion(ctx, unpackedBinary); err != nil {
		return "", err
	}

	distDir := i.home.DistDir(i.dist)
	// A stale install is replaced wholesale, never merged.
	if err := os.RemoveAll(distDir); err != nil {
		return "", fmt.Errorf("remove stale install: %w", err)
	}
	if err := os.MkdirAll(i.home.DistsDir(), 0o755); err != nil {
		return "", fmt.Errorf("create dists dir: %w", err)
	}
	if err := os.Rename(unpackedRoot, distDir); err != nil {
		return "", fmt.Errorf("install distribution: %w", err)
	}

	log.Info().
		Str("component", "install").
		Str("dir", distDir).
		Msg("distribution installed")
	return i.BinaryPath(), nil
}
