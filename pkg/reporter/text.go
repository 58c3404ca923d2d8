package reporter

import (
	"bufio"
	"fmt"

	"github.com/yaklabco/mdlex/internal/ui/pretty"
	"github.com/yaklabco/mdlex/pkg/scan"
	"github.com/yaklabco/mdlex/pkg/token"
)

// TextReporter formats the token stream as styled terminal output, one
// token per line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(result *scan.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	if result.Path != "" {
		fmt.Fprintln(r.bw, r.styles.Bold.Render(result.Path))
	}

	for _, t := range result.Tokens {
		loc := r.styles.Location.Render(fmt.Sprintf("%4d:%-3d", t.Line, t.Column))
		kind := r.styles.Kind.Render(fmt.Sprintf("%-19s", t.Kind))

		switch t.Kind {
		case token.Error:
			fmt.Fprintf(r.bw, "%s %s %s\n", loc, kind, r.styles.Diag.Render(t.Value))
		case token.Newline, token.EndOfFile:
			fmt.Fprintf(r.bw, "%s %s\n", loc, kind)
		case token.InlineCode, token.CodeText, token.Language:
			fmt.Fprintf(r.bw, "%s %s %s\n", loc, kind, r.styles.Literal.Render(fmt.Sprintf("%q", t.Value)))
		default:
			style := r.styles.Text
			if isMarkerKind(t.Kind) {
				style = r.styles.Marker
			}
			fmt.Fprintf(r.bw, "%s %s %s\n", loc, kind, style.Render(fmt.Sprintf("%q", t.Value)))
		}
	}

	r.reportFences(result)

	if r.opts.ShowSummary {
		r.reportSummary(result)
	}

	return result.Stats.ErrorCount, nil
}

// reportFences prints language suggestions collected for code fences.
func (r *TextReporter) reportFences(result *scan.Result) {
	for _, f := range result.Fences {
		if f.Detected == "" {
			continue
		}
		if f.Language == "" {
			fmt.Fprintln(r.bw, r.styles.Dim.Render(
				fmt.Sprintf("line %d: unlabeled code fence, detected language %q", f.Line, f.Detected)))
		} else {
			fmt.Fprintln(r.bw, r.styles.Dim.Render(
				fmt.Sprintf("line %d: fence tag %q normalizes to %q", f.Line, f.Language, f.Detected)))
		}
	}
}

// reportSummary prints the one-line scan summary.
func (r *TextReporter) reportSummary(result *scan.Result) {
	fmt.Fprintln(r.bw)
	summary := fmt.Sprintf("%d tokens, %d errors, %d lines",
		result.Stats.TokenCount, result.Stats.ErrorCount, result.Stats.LineCount)
	if result.Truncated {
		summary += " (truncated)"
	}
	if result.Stats.ErrorCount > 0 {
		fmt.Fprintln(r.bw, r.styles.Failure.Render(summary))
	} else {
		fmt.Fprintln(r.bw, r.styles.Success.Render(summary))
	}
}

// isMarkerKind reports whether a kind is a block or inline delimiter
// marker rather than a text-bearing token.
func isMarkerKind(k token.Kind) bool {
	switch k {
	case token.BlockquoteMarker, token.UnorderedListMarker, token.OrderedListMarker,
		token.CodeFenceOpen, token.CodeFenceClose, token.HorizontalRule,
		token.FootnoteMarker, token.ImageMarker, token.TableDivider:
		return true
	default:
		return false
	}
}
