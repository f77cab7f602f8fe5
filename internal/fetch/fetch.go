// Package fetch downloads the distribution artifact through an ordered
// client chain.
//
// The chain mirrors the original wrapper's curl-then-wget probing: clients
// are tried in order, unavailable ones are skipped, and the first success
// wins. There are no retries within a client and no timeout on the
// transfer; a download blocks until the underlying client returns.
package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/godelw/internal/logging"
)

// Client downloads a URL to a local file.
type Client interface {
	// Name identifies the client in diagnostics.
	Name() string
	// Available reports whether the client can run on this host.
	Available() bool
	// Fetch writes the URL's content to dest. On failure no file is left
	// at dest.
	Fetch(ctx context.Context, url, dest string) error
}

// Attempt records one client's outcome during a chain fetch.
type Attempt struct {
	Client    string
	Installed bool
	Err       error // nil when the client was not installed
}

// Error reports a fetch that exhausted every client in the chain. Its
// message names each client and what became of it.
type Error struct {
	URL      string
	Attempts []Attempt
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to download %s:", e.URL)
	for _, a := range e.Attempts {
		if !a.Installed {
			fmt.Fprintf(&b, "\n  %s: not installed", a.Client)
			continue
		}
		fmt.Fprintf(&b, "\n  %s: %v", a.Client, a.Err)
	}
	return b.String()
}

// Chain is an ordered list of download clients.
type Chain struct {
	clients []Client
}

// NewChain builds a chain that consults clients in the given order.
func NewChain(clients ...Client) Chain {
	return Chain{clients: clients}
}

// DefaultChain prefers the native HTTP client and falls back to curl.
func DefaultChain(userAgent string) Chain {
	return NewChain(NewHTTPClient(userAgent), CurlClient{})
}

// Fetch downloads url to dest with the first available client. Every
// client either succeeds, ending the chain, or contributes an attempt
// record to the eventual *Error.
func (c Chain) Fetch(ctx context.Context, url, dest string) error {
	log := logging.FromContext(ctx)

	attempts := make([]Attempt, 0, len(c.clients))
	for _, client := range c.clients {
		if !client.Available() {
			attempts = append(attempts, Attempt{Client: client.Name()})
			continue
		}

		log.Debug().
			Str("component", "fetch").
			Str("client", client.Name()).
			Str("url", url).
			Msg("attempting download")

		err := client.Fetch(ctx, url, dest)
		if err == nil {
			return nil
		}

		log.Debug().
			Str("component", "fetch").
			Str("client", client.Name()).
			Err(err).
			Msg("download attempt failed")
		attempts = append(attempts, Attempt{Client: client.Name(), Installed: true, Err: err})
	}

	return &Error{URL: url, Attempts: attempts}
}
