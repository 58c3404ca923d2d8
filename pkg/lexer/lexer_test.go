package lexer

import (
	"testing"

	"github.com/yaklabco/mdlex/pkg/token"
)

// lexAll drains a fresh lexer over src.
func lexAll(src string) []token.Token {
	return New([]byte(src)).All()
}

// kinds extracts the kind sequence of a stream.
func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

// assertKinds fails unless the stream's kind sequence matches want exactly.
func assertKinds(t *testing.T, tokens []token.Token, want ...token.Kind) {
	t.Helper()
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] kind = %v, want %v (stream: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLexer_EmptyInput(t *testing.T) {
	t.Parallel()

	tokens := lexAll("")
	assertKinds(t, tokens, token.EndOfFile)

	eof := tokens[0]
	if eof.Line != 1 || eof.Column != 1 {
		t.Errorf("EOF at %d:%d, want 1:1", eof.Line, eof.Column)
	}
	if eof.StartOffset != 0 || eof.EndOffset != 0 {
		t.Errorf("EOF span [%d,%d), want [0,0)", eof.StartOffset, eof.EndOffset)
	}
}

func TestLexer_IdempotentEOF(t *testing.T) {
	t.Parallel()

	l := New([]byte("hi"))
	var last token.Token
	for {
		last = l.Next()
		if last.Kind == token.EndOfFile {
			break
		}
	}

	for i := 0; i < 3; i++ {
		again := l.Next()
		if again != last {
			t.Fatalf("call %d after EOF returned %+v, want %+v", i, again, last)
		}
	}
}

func TestLexer_PlainParagraph(t *testing.T) {
	t.Parallel()

	tokens := lexAll("hello world\n")
	assertKinds(t, tokens, token.ParagraphText, token.Newline, token.EndOfFile)

	if tokens[0].Value != "hello world" {
		t.Errorf("value = %q, want %q", tokens[0].Value, "hello world")
	}
	if tokens[0].Line != 1 || tokens[0].Column != 1 {
		t.Errorf("position = %d:%d, want 1:1", tokens[0].Line, tokens[0].Column)
	}
}

func TestLexer_PositionTracking(t *testing.T) {
	t.Parallel()

	tokens := lexAll("a\nbb\nccc\n")
	assertKinds(t, tokens,
		token.ParagraphText, token.Newline,
		token.ParagraphText, token.Newline,
		token.ParagraphText, token.Newline,
		token.EndOfFile,
	)

	wantLines := []int{1, 1, 2, 2, 3, 3, 4}
	for i, want := range wantLines {
		if tokens[i].Line != want {
			t.Errorf("token[%d] line = %d, want %d", i, tokens[i].Line, want)
		}
		if tokens[i].Column != 1 && i%2 == 0 {
			t.Errorf("token[%d] column = %d, want 1", i, tokens[i].Column)
		}
	}
}

func TestLexer_TabCountsOneColumn(t *testing.T) {
	t.Parallel()

	// The tab is one byte and one column: the backtick after "\ta" sits
	// at column 3.
	tokens := lexAll("\ta`x`\n")
	assertKinds(t, tokens, token.PlainText, token.InlineCode, token.Newline, token.EndOfFile)

	if tokens[1].Column != 3 {
		t.Errorf("inline code column = %d, want 3", tokens[1].Column)
	}
}

func TestLexer_Losslessness(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"hello",
		"# Title\n",
		"# Title\n\nBody text.\n",
		"*bold\n",
		"- a\n- b\n\n1. c\n",
		"> quote\nplain\n",
		"```go\nfunc main() {}\n```\n",
		"```\nunclosed fence\n",
		"|A|B|\n|-|-|\n|1|2|\n",
		"|A|B|\n|-|\n",
		"text with `code` and **strong** and *em* and ~~gone~~\n",
		"[link](http://x) and ![img](y.png)\n",
		"<div>html</div> trailing\n",
		"[^1]: a footnote\n",
		"\\*escaped\\*\n",
		"####### too deep\n",
		"---\n***\n___\n",
		"no trailing newline",
	}

	for _, input := range inputs {
		tokens := lexAll(input)
		if !token.ValidateStream(tokens, len(input)) {
			t.Errorf("stream for %q is not lossless", input)
			for i, tok := range tokens {
				t.Logf("  token[%d]: %v [%d,%d) %q", i, tok.Kind, tok.StartOffset, tok.EndOffset, tok.Value)
			}
		}
	}
}

func TestLexer_PositionMonotonic(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# Title\nsome *bold and `code`\n",
		"*unclosed\n~~also\n[bad\n",
		"|A|B|\n|-x-|\n|1|\n",
		"```go\nx\n",
		"####### deep\n#nospace\n",
	}

	for _, input := range inputs {
		tokens := lexAll(input)
		prev := 0
		for i, tok := range tokens {
			if tok.StartOffset < prev {
				t.Errorf("input %q: token[%d] %v starts at %d before previous start %d",
					input, i, tok.Kind, tok.StartOffset, prev)
			}
			prev = tok.StartOffset
		}
	}
}

func TestLexer_All_EndsWithEOF(t *testing.T) {
	t.Parallel()

	tokens := lexAll("# a\nb\n")
	if tokens[len(tokens)-1].Kind != token.EndOfFile {
		t.Fatalf("last token = %v, want EndOfFile", tokens[len(tokens)-1].Kind)
	}
	for i, tok := range tokens[:len(tokens)-1] {
		if tok.Kind == token.EndOfFile {
			t.Errorf("token[%d] is EndOfFile before the end of the stream", i)
		}
	}
}
