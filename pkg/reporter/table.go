package reporter

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/mdlex/internal/ui/pretty"
	"github.com/yaklabco/mdlex/pkg/scan"
	"github.com/yaklabco/mdlex/pkg/token"
)

// TableReporter formats the token stream as an aligned table with
// error rows highlighted.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	termWidth := getTerminalWidth(opts.Writer)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, termWidth),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(result *scan.Result) (_ int, err error) {
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

	rows := make([]pretty.TokenRow, 0, len(result.Tokens))
	for _, t := range result.Tokens {
		rows = append(rows, pretty.TokenRow{
			Location: fmt.Sprintf("%d:%d", t.Line, t.Column),
			Kind:     t.Kind.String(),
			Value:    tableValue(t),
			IsError:  t.Kind == token.Error,
		})
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(rows))

	if r.opts.ShowSummary {
		summary := r.formatter.FormatTableSummary(
			result.Stats.TokenCount,
			result.Stats.ErrorCount,
			result.Stats.LineCount,
			result.Truncated,
		)
		fmt.Fprintln(r.bw, summary)
	}

	return result.Stats.ErrorCount, nil
}

// tableValue renders a token value for the table, quoting text-bearing
// kinds so whitespace stays visible.
func tableValue(t token.Token) string {
	switch t.Kind {
	case token.Error:
		return t.Value
	case token.Newline, token.EndOfFile:
		return ""
	default:
		return fmt.Sprintf("%q", t.Value)
	}
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 0
}
