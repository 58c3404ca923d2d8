// Package scan runs a lexing session over one document and aggregates the
// results for reporting: the token stream, per-kind statistics, and
// optional language suggestions for unlabeled code fences.
package scan

import (
	"github.com/yaklabco/mdlex/pkg/langdetect"
	"github.com/yaklabco/mdlex/pkg/lexer"
	"github.com/yaklabco/mdlex/pkg/token"
)

// Options controls a scan.
type Options struct {
	// DetectLanguage enables language detection for code fences that
	// carry no info string.
	DetectLanguage bool

	// MaxTokens aborts the scan after this many tokens (0 = unlimited).
	// A safety valve for pathological inputs; the result is marked
	// truncated.
	MaxTokens int
}

// Stats aggregates counts over the token stream.
type Stats struct {
	TokenCount int
	ErrorCount int
	LineCount  int
	ByKind     map[string]int
}

// Fence describes one fenced code block found in the document.
type Fence struct {
	// Line is the line the opening fence appears on.
	Line int

	// Language is the declared info-string tag, empty if none.
	Language string

	// Detected is the language suggested for an unlabeled fence, when
	// detection is enabled. Empty otherwise.
	Detected string
}

// Result is the outcome of lexing one document.
type Result struct {
	Path      string
	Source    []byte
	Tokens    []token.Token
	Fences    []Fence
	Stats     Stats
	Truncated bool
}

// Run lexes source and returns the aggregated result. The core lexer never
// fails; malformed constructs surface as Error tokens in the stream.
func Run(path string, source []byte, opts Options) *Result {
	res := &Result{
		Path:   path,
		Source: source,
		Stats:  Stats{ByKind: make(map[string]int)},
	}

	lex := lexer.New(source)
	for {
		t := lex.Next()
		res.Tokens = append(res.Tokens, t)
		res.Stats.TokenCount++
		res.Stats.ByKind[t.Kind.String()]++
		if t.Kind == token.Error {
			res.Stats.ErrorCount++
		}
		if t.Kind == token.EndOfFile {
			res.Stats.LineCount = t.Line
			break
		}
		if opts.MaxTokens > 0 && res.Stats.TokenCount >= opts.MaxTokens {
			res.Truncated = true
			break
		}
	}

	res.Fences = collectFences(res.Tokens, opts.DetectLanguage)

	return res
}

// collectFences walks the stream pairing fence-open tokens with their
// language tag and content, optionally detecting a language for unlabeled
// fences.
func collectFences(tokens []token.Token, detect bool) []Fence {
	var fences []Fence
	var content []byte
	open := false

	flush := func() {
		if !open {
			return
		}
		f := &fences[len(fences)-1]
		if detect {
			if f.Language == "" {
				f.Detected = langdetect.Detect(content)
			} else if norm := langdetect.Normalize(f.Language); norm != f.Language {
				f.Detected = norm
			}
		}
		content = nil
		open = false
	}

	for _, t := range tokens {
		switch t.Kind {
		case token.CodeFenceOpen:
			flush()
			fences = append(fences, Fence{Line: t.Line})
			open = true
		case token.Language:
			if open {
				fences[len(fences)-1].Language = t.Value
			}
		case token.CodeText:
			if open {
				content = append(content, t.Value...)
				content = append(content, '\n')
			}
		case token.CodeFenceClose, token.EndOfFile:
			flush()
		}
	}
	return fences
}
