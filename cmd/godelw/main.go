// Command godelw ensures the pinned godel distribution is installed in the
// local cache, verifies it, and hands the invocation over to it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/ZebulonRouseFrantzich/godelw/internal/dist"
	"github.com/ZebulonRouseFrantzich/godelw/internal/logging"
)

// EnvDebug enables debug logging when set to any non-empty value.
const EnvDebug = "GODELW_DEBUG"

// Set at build time via -ldflags. A wrapper build pins exactly one
// distribution version and its per-platform binary checksums.
var (
	Version        = "2.17.0"
	DarwinChecksum = ""
	LinuxChecksum  = ""
)

func main() {
	log := logging.NewStderr(os.Getenv(EnvDebug) != "").
		With().Str("run_id", uuid.NewString()).Logger()
	ctx := logging.WithContext(context.Background(), log)

	pin := dist.Pin{
		Version:        Version,
		DarwinChecksum: DarwinChecksum,
		LinuxChecksum:  LinuxChecksum,
	}

	code, err := newWrapper(pin).run(ctx, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}
