package reporter

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdlex/pkg/scan"
	"github.com/yaklabco/mdlex/pkg/token"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Path    string      `json:"path"`
	Tokens  []JSONToken `json:"tokens"`
	Fences  []JSONFence `json:"fences,omitempty"`
	Summary JSONSummary `json:"summary"`
}

// JSONToken represents a single token. Offsets are included so consumers
// can recover the exact source span of every token.
type JSONToken struct {
	Kind        string `json:"kind"`
	Value       string `json:"value"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
}

// JSONFence represents a fenced code block and its language information.
type JSONFence struct {
	Line     int    `json:"line"`
	Language string `json:"language,omitempty"`
	Detected string `json:"detected,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	TokenCount int            `json:"tokenCount"`
	ErrorCount int            `json:"errorCount"`
	LineCount  int            `json:"lineCount"`
	ByKind     map[string]int `json:"byKind"`
	Truncated  bool           `json:"truncated,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(result *scan.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.ErrorCount, nil
}

func buildOutput(result *scan.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Tokens:  make([]JSONToken, 0),
		Summary: JSONSummary{ByKind: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	output.Path = result.Path
	output.Tokens = make([]JSONToken, 0, len(result.Tokens))

	for _, t := range result.Tokens {
		output.Tokens = append(output.Tokens, JSONToken{
			Kind:        t.Kind.String(),
			Value:       t.Value,
			Line:        t.Line,
			Column:      t.Column,
			StartOffset: t.StartOffset,
			EndOffset:   t.EndOffset,
		})
		if t.Kind == token.Error {
			output.Summary.ErrorCount++
		}
	}

	for _, f := range result.Fences {
		output.Fences = append(output.Fences, JSONFence{
			Line:     f.Line,
			Language: f.Language,
			Detected: f.Detected,
		})
	}

	output.Summary.TokenCount = result.Stats.TokenCount
	output.Summary.LineCount = result.Stats.LineCount
	output.Summary.Truncated = result.Truncated
	for kind, count := range result.Stats.ByKind {
		output.Summary.ByKind[kind] = count
	}

	return output
}
