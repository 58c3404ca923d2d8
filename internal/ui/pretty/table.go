package pretty

import (
	"fmt"
	"strings"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 3 // LOC, KIND, VALUE
	minLocWidth      = 8
	minKindWidth     = 12
	minValueWidth    = 30
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TokenRow represents a single row in the token table.
type TokenRow struct {
	Location string
	Kind     string
	Value    string
	IsError  bool
}

// TableFormatter formats a token stream as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats token rows as a styled table.
func (t *TableFormatter) FormatTable(rows []TokenRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	loc   int
	kind  int
	value int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TokenRow) columnWidths {
	widths := columnWidths{
		loc:   minLocWidth,
		kind:  minKindWidth,
		value: minValueWidth,
	}

	for _, row := range rows {
		if len(row.Location) > widths.loc {
			widths.loc = len(row.Location)
		}
		if len(row.Kind) > widths.kind {
			widths.kind = len(row.Kind)
		}
		if len(row.Value) > widths.value {
			widths.value = len(row.Value)
		}
	}

	// Constrain to terminal width, reducing the value column first
	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.value = max(minValueWidth, widths.value-excess)
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.loc + widths.kind + widths.value + (tablePadding * tableColumnCount)
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s",
		widths.loc, "LOC",
		widths.kind, "KIND",
		widths.value, "VALUE",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	totalWidth := t.calculateTotalWidth(widths)
	sep := strings.Repeat(char, totalWidth)
	return t.styles.TableSeparator.Render(sep)
}

// formatRow formats a single table row. Error rows get a highlighted background.
func (t *TableFormatter) formatRow(row TokenRow, widths columnWidths) string {
	loc := truncateString(row.Location, widths.loc)
	kind := truncateString(row.Kind, widths.kind)
	value := truncateString(row.Value, widths.value)

	content := fmt.Sprintf(" %-*s  %-*s  %-*s",
		widths.loc, loc,
		widths.kind, kind,
		widths.value, value,
	)

	if row.IsError {
		return t.styles.TableErrorRow.Render(content)
	}
	return content
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(tokens, errors, lines int, truncated bool) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%d tokens", tokens))
	parts = append(parts, fmt.Sprintf("%d lines", lines))

	if errors > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d errors", errors)))
	} else {
		parts = append(parts, t.styles.Success.Render("no errors"))
	}

	if truncated {
		parts = append(parts, t.styles.Dim.Render("truncated"))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
