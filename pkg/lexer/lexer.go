// Package lexer implements a pull-based lexical analyzer for Markdown.
//
// A Lexer owns a single scanning session over one document: a cursor
// (byte offset, 1-based line and column) plus a small block context that
// governs how the next line is interpreted. Each call to Next returns the
// next token in document order. Malformed constructs produce zero-width
// Error tokens and scanning continues; the stream always ends with exactly
// one EndOfFile token, returned again on every subsequent call.
package lexer

import (
	"fmt"

	"github.com/yaklabco/mdlex/pkg/token"
)

// blockContext identifies the block-level construct currently open.
type blockContext uint8

const (
	ctxNone blockContext = iota
	ctxParagraph
	ctxBlockquote
	ctxUnorderedList
	ctxOrderedList
	ctxCodeBlock
	ctxTable
	ctxHTMLBlock
)

// Lexer holds the cursor state for one lexing session. It is not safe for
// concurrent use; lex each document with its own Lexer.
type Lexer struct {
	src  []byte
	pos  int
	line int
	col  int

	// queue holds tokens produced by the current scan step; Next pops
	// from it before scanning further.
	queue []token.Token
	head  int

	context blockContext

	// Code block sub-state: the exact fence string that opened the block
	// and the line it opened on, for the unclosed-fence diagnostic.
	fence     string
	fenceLine int

	// List sub-state: the column where the open item's content begins.
	// Lines indented at least this far continue the item.
	listContCol int

	// Table sub-state: cell count fixed by the header row, and whether
	// the divider row has been consumed yet.
	tableCells   int
	tableDivider bool

	done bool
	eof  token.Token
}

// New creates a Lexer positioned at line 1, column 1 of src.
// The source is held by reference and must not be mutated during lexing.
func New(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Next returns the next token in document order, advancing the cursor past
// its span. After EndOfFile has been returned, further calls return the
// same EndOfFile token again.
func (l *Lexer) Next() token.Token {
	for l.head >= len(l.queue) && !l.done {
		l.queue = l.queue[:0]
		l.head = 0
		l.scan()
	}
	if l.head < len(l.queue) {
		t := l.queue[l.head]
		l.head++
		return t
	}
	return l.eof
}

// All drains the stream and returns every token, EndOfFile included.
func (l *Lexer) All() []token.Token {
	var out []token.Token
	for {
		t := l.Next()
		out = append(out, t)
		if t.Kind == token.EndOfFile {
			return out
		}
	}
}

// scan performs one scanning step, queueing at least one token or
// finishing the session.
func (l *Lexer) scan() {
	if l.pos >= len(l.src) {
		l.finish()
		return
	}
	switch l.context {
	case ctxCodeBlock:
		l.scanFenceLine()
	case ctxTable:
		l.scanTableLine()
	default:
		l.scanLine()
	}
}

// finish closes any open block context and queues the EndOfFile token.
func (l *Lexer) finish() {
	if l.context == ctxCodeBlock {
		l.queue = append(l.queue, token.Token{
			Kind:        token.Error,
			Value:       fmt.Sprintf("code fence: %q opened at line %d was never closed", l.fence, l.fenceLine),
			Line:        l.line,
			Column:      l.col,
			StartOffset: l.pos,
			EndOffset:   l.pos,
		})
	}
	l.context = ctxNone
	l.eof = token.Token{
		Kind:        token.EndOfFile,
		Line:        l.line,
		Column:      l.col,
		StartOffset: l.pos,
		EndOffset:   l.pos,
	}
	l.queue = append(l.queue, l.eof)
	l.done = true
}

// mark captures the cursor so a token span can start here.
type mark struct {
	line, col, pos int
}

func (l *Lexer) mark() mark {
	return mark{line: l.line, col: l.col, pos: l.pos}
}

// emit queues a token spanning from m to the current cursor.
func (l *Lexer) emit(kind token.Kind, value string, m mark) {
	l.queue = append(l.queue, token.Token{
		Kind:        kind,
		Value:       value,
		Line:        m.line,
		Column:      m.col,
		StartOffset: m.pos,
		EndOffset:   l.pos,
	})
}

// errorAt queues a zero-width Error token at m. Diagnostics are positioned
// so the stream stays position-monotonic: an Error never points past the
// token that follows it.
func (l *Lexer) errorAt(m mark, format string, args ...any) {
	l.queue = append(l.queue, token.Token{
		Kind:        token.Error,
		Value:       fmt.Sprintf(format, args...),
		Line:        m.line,
		Column:      m.col,
		StartOffset: m.pos,
		EndOffset:   m.pos,
	})
}

// advance consumes n bytes, updating line and column. A newline resets the
// column to 1 and increments the line; every other byte, tabs included,
// advances the column by one.
func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

// advanceTo consumes bytes up to the absolute offset target.
func (l *Lexer) advanceTo(target int) {
	if target > l.pos {
		l.advance(target - l.pos)
	}
}

// peek returns the byte at the given lookahead offset, or 0 past the end.
func (l *Lexer) peek(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

// lineEnd returns the offset of the next newline at or after from, or
// len(src) if the document ends first.
func (l *Lexer) lineEnd(from int) int {
	for from < len(l.src) && l.src[from] != '\n' {
		from++
	}
	return from
}

// restOfLine returns the bytes from the cursor to the end of the current
// line, excluding the newline.
func (l *Lexer) restOfLine() []byte {
	return l.src[l.pos:l.lineEnd(l.pos)]
}

// peekNextLine returns the content of the line after the current one.
// The second result is false when the current line is the last.
func (l *Lexer) peekNextLine() ([]byte, bool) {
	end := l.lineEnd(l.pos)
	if end >= len(l.src) {
		return nil, false
	}
	start := end + 1
	return l.src[start:l.lineEnd(start)], true
}

// consumeNewline emits a Newline token if the cursor sits on one.
func (l *Lexer) consumeNewline() {
	if l.pos < len(l.src) && l.src[l.pos] == '\n' {
		m := l.mark()
		l.advance(1)
		l.emit(token.Newline, "\n", m)
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
