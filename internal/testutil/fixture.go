package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZebulonRouseFrantzich/godelw/internal/dist"
)

// TgzEntry describes one entry of a generated test archive. A Name ending
// in "/" produces a directory entry; a non-empty Link produces a symlink.
type TgzEntry struct {
	Name string
	Body string
	Mode int64 // defaults to 0755 for dirs, 0644 for files
	Link string
}

// WriteTgz writes a gzip-compressed tar containing exactly the given
// entries, in order, and returns its path.
func WriteTgz(t *testing.T, entries []TgzEntry) string {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	for _, e := range entries {
		header := &tar.Header{Name: e.Name, Mode: e.Mode}
		switch {
		case e.Link != "":
			header.Typeflag = tar.TypeSymlink
			header.Linkname = e.Link
		case len(e.Name) > 0 && e.Name[len(e.Name)-1] == '/':
			header.Typeflag = tar.TypeDir
			if header.Mode == 0 {
				header.Mode = 0o755
			}
		default:
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(e.Body))
			if header.Mode == 0 {
				header.Mode = 0o644
			}
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("write tar header %s: %v", e.Name, err)
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Body)); err != nil {
				t.Fatalf("write tar body %s: %v", e.Name, err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}

	path := filepath.Join(t.TempDir(), "archive.tgz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	return path
}

// DistEntries returns a well-formed entry set for d: every required entry
// plus nothing else. The platform binaries are shell scripts that print the
// distribution's version line, so tests can execute them.
func DistEntries(d dist.Distribution) []TgzEntry {
	script := "#!/bin/sh\necho \"" + d.VersionOutput() + "\"\n"

	entries := make([]TgzEntry, 0, len(d.RequiredEntries()))
	for _, name := range d.RequiredEntries() {
		e := TgzEntry{Name: name}
		if name[len(name)-1] != '/' {
			e.Body = script
			e.Mode = 0o755
		}
		entries = append(entries, e)
	}
	return entries
}
