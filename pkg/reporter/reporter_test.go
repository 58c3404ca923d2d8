package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/yaklabco/mdlex/pkg/scan"
)

func sampleResult(t *testing.T) *scan.Result {
	t.Helper()
	return scan.Run("doc.md", []byte("# Title\n\n*bold\n"), scan.Options{})
}

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "*reporter.TextReporter"},
		{FormatTable, "*reporter.TableReporter"},
		{FormatJSON, "*reporter.JSONReporter"},
		{"", "*reporter.TextReporter"},
	}

	for _, tt := range tests {
		rep, err := New(Options{Writer: &bytes.Buffer{}, Format: tt.format})
		if err != nil {
			t.Fatalf("New(%q) error = %v", tt.format, err)
		}
		if got := typeName(rep); got != tt.want {
			t.Errorf("New(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextReporter:
		return "*reporter.TextReporter"
	case *TableReporter:
		return "*reporter.TableReporter"
	case *JSONReporter:
		return "*reporter.JSONReporter"
	default:
		return "unknown"
	}
}

func TestNew_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Writer: &bytes.Buffer{}, Format: "xml"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"text", "table", "json", ""} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", s, err)
		}
	}
	if _, err := ParseFormat("sarif"); err == nil {
		t.Error("ParseFormat(sarif) should fail")
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := NewTextReporter(Options{Writer: &buf, Color: "never", ShowSummary: true})

	errCount, err := rep.Report(sampleResult(t))
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if errCount != 1 {
		t.Errorf("error count = %d, want 1", errCount)
	}

	out := buf.String()
	for _, want := range []string{"doc.md", "Heading1", "Title", "Error", "1 errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextReporter_NoSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := NewTextReporter(Options{Writer: &buf, Color: "never"})

	if _, err := rep.Report(sampleResult(t)); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if strings.Contains(buf.String(), "tokens,") {
		t.Errorf("summary printed despite ShowSummary=false:\n%s", buf.String())
	}
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := NewTableReporter(Options{Writer: &buf, Color: "never", ShowSummary: true})

	errCount, err := rep.Report(sampleResult(t))
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if errCount != 1 {
		t.Errorf("error count = %d, want 1", errCount)
	}

	out := buf.String()
	for _, want := range []string{"LOC", "KIND", "VALUE", "Heading1", "1:1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := NewJSONReporter(Options{Writer: &buf})

	result := sampleResult(t)
	errCount, err := rep.Report(result)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if errCount != 1 {
		t.Errorf("error count = %d, want 1", errCount)
	}

	var output JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if output.Path != "doc.md" {
		t.Errorf("path = %q", output.Path)
	}
	if len(output.Tokens) != len(result.Tokens) {
		t.Errorf("tokens = %d, want %d", len(output.Tokens), len(result.Tokens))
	}
	if output.Summary.ErrorCount != 1 {
		t.Errorf("summary errors = %d, want 1", output.Summary.ErrorCount)
	}
	if output.Tokens[0].Kind != "Heading1" || output.Tokens[0].Line != 1 {
		t.Errorf("token[0] = %+v", output.Tokens[0])
	}

	// Offsets survive the round trip so spans can be recovered.
	if output.Tokens[0].StartOffset != 0 || output.Tokens[0].EndOffset != 7 {
		t.Errorf("token[0] span [%d,%d), want [0,7)",
			output.Tokens[0].StartOffset, output.Tokens[0].EndOffset)
	}
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var pretty, compact bytes.Buffer
	if _, err := NewJSONReporter(Options{Writer: &pretty}).Report(sampleResult(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONReporter(Options{Writer: &compact, Compact: true}).Report(sampleResult(t)); err != nil {
		t.Fatal(err)
	}

	if compact.Len() >= pretty.Len() {
		t.Errorf("compact output (%d bytes) not smaller than indented (%d bytes)",
			compact.Len(), pretty.Len())
	}
}

func TestReporters_NilResult(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatText, FormatTable, FormatJSON} {
		var buf bytes.Buffer
		rep, err := New(Options{Writer: &buf, Format: format})
		if err != nil {
			t.Fatalf("New(%q): %v", format, err)
		}
		if _, err := rep.Report(nil); err != nil {
			t.Errorf("Report(nil) with %q format: %v", format, err)
		}
	}
}
