package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlex/internal/ui/pretty"
)

func TestTableFormatter_FormatTable(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	formatter := pretty.NewTableFormatter(styles, false, 100)

	rows := []pretty.TokenRow{
		{Location: "1:1", Kind: "Heading1", Value: `"Title"`},
		{Location: "2:1", Kind: "Error", Value: "something is off", IsError: true},
		{Location: "2:1", Kind: "PlainText", Value: `"x"`},
	}

	out := formatter.FormatTable(rows)
	require.NotEmpty(t, out)

	assert.Contains(t, out, "LOC")
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "Heading1")
	assert.Contains(t, out, "something is off")
	assert.Contains(t, out, "=")
}

func TestTableFormatter_EmptyRows(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 100)
	assert.Empty(t, formatter.FormatTable(nil))
}

func TestTableFormatter_TruncatesLongValues(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 60)

	rows := []pretty.TokenRow{
		{Location: "1:1", Kind: "ParagraphText", Value: strings.Repeat("x", 200)},
	}

	out := formatter.FormatTable(rows)
	assert.Contains(t, out, "...", "over-wide value should be truncated")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 80, "line wider than constrained terminal")
	}
}

func TestTableFormatter_Summary(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 100)

	summary := formatter.FormatTableSummary(42, 0, 10, false)
	assert.Contains(t, summary, "42 tokens")
	assert.Contains(t, summary, "10 lines")
	assert.Contains(t, summary, "no errors")

	summary = formatter.FormatTableSummary(42, 3, 10, true)
	assert.Contains(t, summary, "3 errors")
	assert.Contains(t, summary, "truncated")
}
