package scan

import (
	"strings"
	"testing"

	"github.com/yaklabco/mdlex/pkg/token"
)

func TestRun_Stats(t *testing.T) {
	t.Parallel()

	source := []byte("# Title\n\n*bold\n")
	result := Run("doc.md", source, Options{})

	if result.Path != "doc.md" {
		t.Errorf("path = %q", result.Path)
	}
	if result.Stats.TokenCount != len(result.Tokens) {
		t.Errorf("token count = %d, tokens = %d", result.Stats.TokenCount, len(result.Tokens))
	}
	if result.Stats.ErrorCount != 1 {
		t.Errorf("error count = %d, want 1 (unclosed emphasis)", result.Stats.ErrorCount)
	}
	if result.Stats.LineCount != 4 {
		t.Errorf("line count = %d, want 4", result.Stats.LineCount)
	}
	if result.Truncated {
		t.Error("result unexpectedly truncated")
	}
	if result.Stats.ByKind["Heading1"] != 1 {
		t.Errorf("ByKind[Heading1] = %d, want 1", result.Stats.ByKind["Heading1"])
	}
}

func TestRun_StreamEndsWithEOF(t *testing.T) {
	t.Parallel()

	result := Run("x.md", []byte("text\n"), Options{})
	last := result.Tokens[len(result.Tokens)-1]
	if last.Kind != token.EndOfFile {
		t.Errorf("last token = %v, want EndOfFile", last.Kind)
	}
}

func TestRun_MaxTokens(t *testing.T) {
	t.Parallel()

	source := []byte(strings.Repeat("line\n", 100))
	result := Run("big.md", source, Options{MaxTokens: 10})

	if !result.Truncated {
		t.Fatal("expected truncated result")
	}
	if result.Stats.TokenCount != 10 {
		t.Errorf("token count = %d, want 10", result.Stats.TokenCount)
	}
}

func TestRun_FencesCollected(t *testing.T) {
	t.Parallel()

	source := []byte("```go\nx := 1\n```\n\n```\nplain\n```\n")
	result := Run("f.md", source, Options{})

	if len(result.Fences) != 2 {
		t.Fatalf("fences = %d, want 2", len(result.Fences))
	}
	if result.Fences[0].Language != "go" || result.Fences[0].Line != 1 {
		t.Errorf("fence[0] = %+v", result.Fences[0])
	}
	if result.Fences[1].Language != "" || result.Fences[1].Line != 5 {
		t.Errorf("fence[1] = %+v", result.Fences[1])
	}
	// Detection off: no suggestions.
	for i, f := range result.Fences {
		if f.Detected != "" {
			t.Errorf("fence[%d].Detected = %q, want empty", i, f.Detected)
		}
	}
}

func TestRun_FenceDetection(t *testing.T) {
	t.Parallel()

	source := []byte("```\n#!/bin/bash\necho hi\n```\n")
	result := Run("f.md", source, Options{DetectLanguage: true})

	if len(result.Fences) != 1 {
		t.Fatalf("fences = %d, want 1", len(result.Fences))
	}
	if result.Fences[0].Detected != "bash" {
		t.Errorf("detected = %q, want bash", result.Fences[0].Detected)
	}
}

func TestRun_FenceNormalization(t *testing.T) {
	t.Parallel()

	source := []byte("```golang\nx := 1\n```\n")
	result := Run("f.md", source, Options{DetectLanguage: true})

	if len(result.Fences) != 1 {
		t.Fatalf("fences = %d, want 1", len(result.Fences))
	}
	if result.Fences[0].Language != "golang" {
		t.Errorf("language = %q", result.Fences[0].Language)
	}
	if result.Fences[0].Detected != "go" {
		t.Errorf("detected = %q, want go", result.Fences[0].Detected)
	}
}

func TestRun_EmptySource(t *testing.T) {
	t.Parallel()

	result := Run("empty.md", nil, Options{})
	if result.Stats.TokenCount != 1 {
		t.Errorf("token count = %d, want 1 (EndOfFile only)", result.Stats.TokenCount)
	}
	if result.Stats.LineCount != 1 {
		t.Errorf("line count = %d, want 1", result.Stats.LineCount)
	}
}
