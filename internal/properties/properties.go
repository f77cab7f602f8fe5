// Package properties reads the wrapper's godel.properties file.
//
// The file is line-oriented key=value text. Exactly two keys are
// recognized: distributionURL (required, non-empty) and distributionSHA256
// (optional). Every other line is ignored, and values are taken literally:
// ${...} references are not expanded.
package properties

import (
	"fmt"
	"os"

	props "github.com/magiconair/properties"
)

// Recognized property keys.
const (
	KeyDistributionURL    = "distributionURL"
	KeyDistributionSHA256 = "distributionSHA256"
)

// Config is the immutable result of one properties-file read.
type Config struct {
	DistributionURL    string
	DistributionSHA256 string
}

// NotFoundError reports a missing properties file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("properties file %s does not exist", e.Path)
}

// EmptyPropertyError reports a required property that is absent or empty.
type EmptyPropertyError struct {
	Key  string
	Path string
}

func (e *EmptyPropertyError) Error() string {
	return fmt.Sprintf("required property %s is not set in %s", e.Key, e.Path)
}

// Load reads and validates the properties file at path.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Config{}, &NotFoundError{Path: path}
		}
		return Config{}, fmt.Errorf("stat properties file: %w", err)
	}

	loader := &props.Loader{Encoding: props.UTF8, DisableExpansion: true}
	p, err := loader.LoadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read properties file %s: %w", path, err)
	}

	cfg := Config{
		DistributionURL:    p.GetString(KeyDistributionURL, ""),
		DistributionSHA256: p.GetString(KeyDistributionSHA256, ""),
	}
	if cfg.DistributionURL == "" {
		return Config{}, &EmptyPropertyError{Key: KeyDistributionURL, Path: path}
	}
	return cfg, nil
}
