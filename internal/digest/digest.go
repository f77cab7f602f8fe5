// Package digest computes and verifies SHA-256 digests through an ordered
// provider chain.
//
// The chain mirrors the original wrapper's tool probing: the first
// available provider computes the digest and the rest are never consulted.
// Every provider yields the same lowercase hex for the same input, so order
// only matters for availability.
package digest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// Provider computes a file's SHA-256 digest.
type Provider interface {
	// Name identifies the provider in diagnostics.
	Name() string
	// Available reports whether the provider can run on this host.
	Available() bool
	// Sum returns the file's SHA-256 as lowercase hex.
	Sum(ctx context.Context, path string) (string, error)
}

// ErrNoProvider is returned when every provider in a chain is unavailable.
var ErrNoProvider = errors.New("no SHA-256 tool available")

// MismatchError reports a digest that differs from the expected value.
// Comparison is byte-exact: an uppercase expected value never matches.
type MismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s:\nactual:   %s\nexpected: %s",
		e.Path, e.Actual, e.Expected)
}

// Builtin computes digests in-process with crypto/sha256. Always available.
type Builtin struct{}

// Name implements Provider.
func (Builtin) Name() string { return "sha256" }

// Available implements Provider.
func (Builtin) Available() bool { return true }

// Sum implements Provider.
func (Builtin) Sum(_ context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Chain is an ordered list of digest providers.
type Chain struct {
	providers []Provider
}

// NewChain builds a chain that consults providers in the given order.
func NewChain(providers ...Provider) Chain {
	return Chain{providers: providers}
}

// DefaultChain prefers the builtin implementation, then the sha256sum and
// shasum command-line tools.
func DefaultChain() Chain {
	return NewChain(Builtin{}, Sha256sumTool{}, ShasumTool{})
}

// Len returns the number of providers in the chain.
func (c Chain) Len() int {
	return len(c.providers)
}

// Sum computes path's digest with the first available provider and reports
// which provider ran.
func (c Chain) Sum(ctx context.Context, path string) (string, string, error) {
	for _, p := range c.providers {
		if !p.Available() {
			continue
		}
		sum, err := p.Sum(ctx, path)
		if err != nil {
			return "", p.Name(), fmt.Errorf("%s: %w", p.Name(), err)
		}
		return sum, p.Name(), nil
	}
	return "", "", ErrNoProvider
}

// Verify computes path's digest and compares it case-sensitively against
// expected.
func (c Chain) Verify(ctx context.Context, path, expected string) error {
	actual, _, err := c.Sum(ctx, path)
	if err != nil {
		return err
	}
	if actual != expected {
		return &MismatchError{Path: path, Expected: expected, Actual: actual}
	}
	return nil
}
