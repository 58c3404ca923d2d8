package lexer

import (
	"testing"

	"github.com/yaklabco/mdlex/pkg/token"
)

var fuzzSeeds = []string{
	"",
	"Hello, world!",
	"# Heading",
	"## Heading 2",
	"####### too many",
	"#nospace",
	"- list item",
	"1. ordered item",
	"> blockquote",
	"```\ncode\n```",
	"```go\nfunc main() {}\n```",
	"```\nunclosed",
	"*emphasis*",
	"**strong**",
	"*unclosed",
	"~~strike~~",
	"`code`",
	"[link](url)",
	"![image](src)",
	"[broken",
	"|A|B|\n|-|-|\n|1|2|",
	"|A|B|\n|-|",
	"---",
	"***",
	"___",
	"\\*escaped\\*",
	"<div>html</div>",
	"[^1]: footnote",
	"[^]: bad footnote",
	"# Heading\n\nParagraph with *emphasis* and **strong**.\n\n- item 1\n- item 2\n",
}

// FuzzLexerLossless checks that every non-diagnostic token span is
// contiguous and that together they cover the input exactly.
func FuzzLexerLossless(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tokens := New(data).All()

		if len(tokens) == 0 {
			t.Fatal("expected at least the EndOfFile token")
		}
		if tokens[len(tokens)-1].Kind != token.EndOfFile {
			t.Fatalf("last token = %v, want EndOfFile", tokens[len(tokens)-1].Kind)
		}
		if !token.ValidateStream(tokens, len(data)) {
			t.Errorf("stream is not lossless for input of length %d", len(data))
		}
	})
}

// FuzzLexerTerminates checks that lexing always terminates with a bounded
// number of tokens and never moves the cursor backwards.
func FuzzLexerTerminates(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		l := New(data)

		// Every scan step consumes input or finishes, so the stream can
		// never exceed a small multiple of the input size.
		limit := 4*len(data) + 8
		prevStart := 0
		count := 0
		for {
			tok := l.Next()
			count++
			if count > limit {
				t.Fatalf("more than %d tokens for input of length %d", limit, len(data))
			}
			if tok.StartOffset < prevStart {
				t.Fatalf("token %v starts at %d before previous start %d",
					tok.Kind, tok.StartOffset, prevStart)
			}
			prevStart = tok.StartOffset
			if tok.Kind == token.EndOfFile {
				break
			}
		}
	})
}

func BenchmarkLexer(b *testing.B) {
	doc := []byte(`# Benchmark Document

A paragraph with *emphasis*, **strong text**, ` + "`inline code`" + `, and a
[link](http://example.com) plus an ![image](pic.png).

- first item
- second item with ~~strikethrough~~

1. ordered
2. items

> A blockquote line.

` + "```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```" + `

|Col A|Col B|
|-----|-----|
|1    |2    |
`)

	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l := New(doc)
		for {
			if t := l.Next(); t.Kind == token.EndOfFile {
				break
			}
		}
	}
}
