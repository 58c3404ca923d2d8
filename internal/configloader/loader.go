// Package configloader resolves the effective scan configuration: an
// explicit --config path, a discovered project .mdlex.yml, or defaults,
// with CLI flags merged in at highest precedence.
package configloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/mdlex/pkg/config"
	"github.com/yaklabco/mdlex/pkg/fsutil"
)

// projectConfigNames are the file names searched for in the working
// directory, in order.
var projectConfigNames = []string{".mdlex.yml", ".mdlex.yaml"}

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory searched for a project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config).
	// If set, project config discovery is skipped and a missing file
	// is an error.
	ExplicitPath string
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the merged configuration.
	Config *config.Config

	// LoadedFrom is the file the configuration was read from, empty
	// when only defaults apply.
	LoadedFrom string
}

// Load resolves the configuration. Precedence (highest to lowest):
// explicit config file, discovered project config, defaults. CLI flags
// are applied by the caller on top of the result.
func Load(opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Config: config.Default()}

	path := opts.ExplicitPath
	if path == "" {
		workDir := opts.WorkingDir
		if workDir == "" {
			var err error
			workDir, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("get working directory: %w", err)
			}
		}
		path = discoverProjectConfig(workDir)
		if path == "" {
			return result, nil
		}
	}

	data, _, err := fsutil.ReadFile(path)
	if err != nil {
		if opts.ExplicitPath == "" && errors.Is(err, fsutil.ErrNotFound) {
			return result, nil
		}
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	result.Config = cfg
	result.LoadedFrom = path
	return result, nil
}

// discoverProjectConfig returns the first project config file present in
// workDir, or empty when none exists.
func discoverProjectConfig(workDir string) string {
	for _, name := range projectConfigNames {
		candidate := filepath.Join(workDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
