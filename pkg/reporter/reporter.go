// Package reporter renders the token stream produced by a scan.
package reporter

import (
	"fmt"

	"github.com/yaklabco/mdlex/pkg/scan"
)

// Reporter formats and writes a scan result.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of Error tokens reported and any write errors.
	Report(result *scan.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}
