// Package archive reads and extracts the gzip-compressed tar artifacts
// distributions ship as.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MissingEntriesError reports required entry names absent from an archive
// listing, in the order they were required.
type MissingEntriesError struct {
	Archive string
	Missing []string
}

func (e *MissingEntriesError) Error() string {
	return fmt.Sprintf("archive %s is missing required entries:\n  %s",
		e.Archive, strings.Join(e.Missing, "\n  "))
}

// List returns the entry names of the tgz at path, in archive order.
func List(path string) ([]string, error) {
	var names []string
	err := walk(path, func(header *tar.Header, _ *tar.Reader) error {
		names = append(names, header.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Validate confirms every name in required appears as a literal entry in
// the archive. Matching is byte-exact: directory entries must keep their
// trailing slash. Extra entries are fine; any required name left unmatched
// after one pass over the listing is fatal.
func Validate(path string, required []string) error {
	pending := make(map[string]struct{}, len(required))
	for _, name := range required {
		pending[name] = struct{}{}
	}

	err := walk(path, func(header *tar.Header, _ *tar.Reader) error {
		delete(pending, header.Name)
		return nil
	})
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		return nil
	}
	missing := make([]string, 0, len(pending))
	for _, name := range required {
		if _, ok := pending[name]; ok {
			missing = append(missing, name)
		}
	}
	return &MissingEntriesError{Archive: path, Missing: missing}
}

// Extract unpacks the tgz at path into destDir, preserving file modes and
// creating symlinks. Entries that would escape destDir are rejected; entry
// types other than directories, regular files, and symlinks are skipped.
func Extract(path, destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	return walk(path, func(header *tar.Header, tr *tar.Reader) error {
		target := filepath.Join(destDir, header.Name)

		// Path traversal guard.
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("create file %s: %w", target, err)
			}
			if _, err := io.Copy(outFile, tr); err != nil {
				outFile.Close()
				return fmt.Errorf("write file %s: %w", target, err)
			}
			if err := outFile.Close(); err != nil {
				return fmt.Errorf("close file %s: %w", target, err)
			}

		case tar.TypeSymlink:
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}
		}
		return nil
	})
}

// walk opens the tgz at path and invokes fn for each entry.
func walk(path string, fn func(*tar.Header, *tar.Reader) error) error {
	archiveFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}
		if err := fn(header, tarReader); err != nil {
			return err
		}
	}
}
