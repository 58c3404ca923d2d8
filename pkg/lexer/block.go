package lexer

import (
	"bytes"
	"strings"

	"github.com/yaklabco/mdlex/pkg/token"
)

// scanLine dispatches the block-start patterns at the beginning of a line,
// in fixed precedence order: horizontal rule, heading, blockquote, code
// fence, list item, table, HTML block, footnote definition, paragraph.
// First match wins.
func (l *Lexer) scanLine() {
	if l.context == ctxHTMLBlock {
		l.context = ctxNone
	}

	if l.src[l.pos] == '\n' {
		m := l.mark()
		l.advance(1)
		l.emit(token.Newline, "\n", m)
		l.context = ctxNone
		return
	}

	// Lines indented to the open list item's content column continue the
	// item and are not re-dispatched as new blocks.
	if (l.context == ctxUnorderedList || l.context == ctxOrderedList) && l.isListContinuation() {
		l.scanInline()
		return
	}

	switch {
	case l.tryHorizontalRule():
	case l.tryHeading():
	case l.tryBlockquote():
	case l.tryCodeFence():
	case l.tryListItem():
	case l.tryTableStart():
	case l.tryHTMLBlock():
	case l.tryFootnote():
	default:
		l.context = ctxParagraph
		l.scanInline()
	}
}

// isListContinuation reports whether the current line is indented at least
// to the open item's content column and is not blank.
func (l *Lexer) isListContinuation() bool {
	n := 0
	for l.pos+n < len(l.src) && l.src[l.pos+n] == ' ' {
		n++
	}
	if l.pos+n >= len(l.src) || l.src[l.pos+n] == '\n' {
		return false
	}
	return n >= l.listContCol-1
}

// tryHorizontalRule matches a line of three or more '-', '*', or '_' of the
// same character, optionally separated by spaces.
func (l *Lexer) tryHorizontalRule() bool {
	line := l.restOfLine()
	var marker byte
	count := 0
	for _, c := range line {
		switch {
		case c == ' ':
		case c == '-' || c == '*' || c == '_':
			if marker == 0 {
				marker = c
			} else if c != marker {
				return false
			}
			count++
		default:
			return false
		}
	}
	if count < 3 {
		return false
	}
	m := l.mark()
	l.advance(len(line))
	l.emit(token.HorizontalRule, string(line), m)
	l.context = ctxNone
	return true
}

// tryHeading matches one to six '#' characters followed by a space; the
// remainder of the line is the heading text. Too many markers or a missing
// space emit an Error and the line falls back to paragraph text.
func (l *Lexer) tryHeading() bool {
	if l.src[l.pos] != '#' {
		return false
	}
	m := l.mark()
	level := 0
	for l.peek(level) == '#' {
		level++
	}
	if level > 6 {
		l.errorAt(m, "heading: at most 6 '#' markers allowed, found %d", level)
		l.context = ctxParagraph
		l.scanInline()
		return true
	}
	if l.peek(level) != ' ' {
		l.errorAt(m, "heading: expected space after %q", strings.Repeat("#", level))
		l.context = ctxParagraph
		l.scanInline()
		return true
	}
	l.advance(level + 1)
	rest := l.restOfLine()
	l.advance(len(rest))
	kind, _ := token.HeadingKind(level)
	l.emit(kind, strings.TrimSpace(string(rest)), m)
	l.context = ctxNone
	l.consumeNewline()
	return true
}

// tryBlockquote matches '>' at line start. The marker token spans the '>'
// and one optional following space; the rest of the line is lexed inline.
func (l *Lexer) tryBlockquote() bool {
	if l.src[l.pos] != '>' {
		return false
	}
	m := l.mark()
	n := 1
	if l.peek(1) == ' ' {
		n = 2
	}
	l.advance(n)
	l.emit(token.BlockquoteMarker, string(l.src[m.pos:l.pos]), m)
	l.context = ctxBlockquote
	l.scanInline()
	return true
}

// tryCodeFence matches a line starting with three or more backticks. The
// exact fence string is recorded; everything until an identical fence line
// is emitted verbatim as CodeText.
func (l *Lexer) tryCodeFence() bool {
	if l.src[l.pos] != '`' || l.peek(1) != '`' || l.peek(2) != '`' {
		return false
	}
	m := l.mark()
	n := 0
	for l.peek(n) == '`' {
		n++
	}
	l.advance(n)
	fence := string(l.src[m.pos:l.pos])
	l.emit(token.CodeFenceOpen, fence, m)

	if rest := l.restOfLine(); len(rest) > 0 {
		rm := l.mark()
		l.advance(len(rest))
		if tag := bytes.TrimSpace(rest); len(tag) > 0 {
			l.emit(token.Language, string(tag), rm)
		} else {
			l.emit(token.PlainText, string(rest), rm)
		}
	}
	l.consumeNewline()

	l.context = ctxCodeBlock
	l.fence = fence
	l.fenceLine = m.line
	return true
}

// scanFenceLine handles one line inside an open code block: either the
// closing fence or a verbatim CodeText line.
func (l *Lexer) scanFenceLine() {
	line := l.restOfLine()
	if string(bytes.TrimRight(line, " \t")) == l.fence {
		m := l.mark()
		l.advance(len(line))
		l.emit(token.CodeFenceClose, string(line), m)
		l.context = ctxNone
		l.fence = ""
		l.consumeNewline()
		return
	}
	if len(line) > 0 {
		m := l.mark()
		l.advance(len(line))
		l.emit(token.CodeText, string(line), m)
	}
	l.consumeNewline()
}

// tryListItem matches '-', '*', or '+' followed by a space (unordered) or
// digits followed by '.' and a space (ordered). The marker token spans the
// marker and its trailing space; the item text is lexed inline.
func (l *Lexer) tryListItem() bool {
	c := l.src[l.pos]
	m := l.mark()
	switch {
	case c == '-' || c == '*' || c == '+':
		if l.peek(1) != ' ' {
			return false
		}
		l.advance(2)
		l.emit(token.UnorderedListMarker, string(l.src[m.pos:l.pos]), m)
		l.context = ctxUnorderedList
	case isDigit(c):
		n := 0
		for isDigit(l.peek(n)) {
			n++
		}
		if l.peek(n) != '.' || l.peek(n+1) != ' ' {
			return false
		}
		l.advance(n + 2)
		l.emit(token.OrderedListMarker, string(l.src[m.pos:l.pos]), m)
		l.context = ctxOrderedList
	default:
		return false
	}
	l.listContCol = l.col
	l.scanInline()
	return true
}

// tryTableStart tentatively matches a '|'-delimited line as a table header.
// The line is only reclassified as a table when the next line looks like a
// divider row; otherwise it is left for paragraph lexing.
func (l *Lexer) tryTableStart() bool {
	line := l.restOfLine()
	trimmed := bytes.TrimRight(line, " \t")
	if len(trimmed) < 2 || trimmed[0] != '|' || trimmed[len(trimmed)-1] != '|' {
		return false
	}
	next, ok := l.peekNextLine()
	if !ok || !isDividerCandidate(bytes.TrimRight(next, " \t")) {
		return false
	}

	m := l.mark()
	l.advance(len(line))
	l.emit(token.TableRow, string(trimmed), m)
	l.tableCells = countTableCells(trimmed)
	l.tableDivider = false
	l.context = ctxTable
	l.consumeNewline()
	return true
}

// scanTableLine handles one line inside an open table: the divider row
// right after the header, then ordinary rows until a non-'|' line.
func (l *Lexer) scanTableLine() {
	if l.src[l.pos] != '|' {
		l.context = ctxNone
		l.scanLine()
		return
	}
	line := l.restOfLine()
	trimmed := bytes.TrimRight(line, " \t")
	m := l.mark()
	l.advance(len(line))

	if !l.tableDivider {
		l.tableDivider = true
		l.emit(token.TableDivider, string(trimmed), m)
		if cells := countTableCells(trimmed); cells != l.tableCells {
			l.errorAt(m, "table divider: expected %d cells to match header, found %d", l.tableCells, cells)
		}
		if off := dividerBadCharOffset(trimmed); off >= 0 {
			l.queue = append(l.queue, token.Token{
				Kind:        token.Error,
				Value:       "table divider: unexpected " + string(trimmed[off]) + ", expected '-', '|', ':' or space",
				Line:        m.line,
				Column:      m.col + off,
				StartOffset: m.pos + off,
				EndOffset:   m.pos + off,
			})
		}
		l.consumeNewline()
		return
	}

	l.emit(token.TableRow, string(trimmed), m)
	if cells := countTableCells(trimmed); cells != l.tableCells {
		l.errorAt(m, "table row: expected %d cells to match header, found %d", l.tableCells, cells)
	}
	l.consumeNewline()
}

// isDividerCandidate reports whether a line plausibly is a table divider:
// pipe-delimited cells that each begin with '-' or ':' after trimming.
// Character-level validation happens when the row is consumed, so a
// near-miss divider still promotes the table and produces a diagnostic.
func isDividerCandidate(line []byte) bool {
	if len(line) < 2 || line[0] != '|' || line[len(line)-1] != '|' {
		return false
	}
	cells := bytes.Split(line[1:len(line)-1], []byte("|"))
	for _, cell := range cells {
		cell = bytes.TrimSpace(cell)
		if len(cell) == 0 || (cell[0] != '-' && cell[0] != ':') {
			return false
		}
	}
	return true
}

// dividerBadCharOffset returns the offset of the first byte not allowed in
// a divider row, or -1 when the row is clean.
func dividerBadCharOffset(line []byte) int {
	for i, c := range line {
		switch c {
		case '-', '|', ':', ' ', '\t':
		default:
			return i
		}
	}
	return -1
}

// countTableCells counts the cells of a pipe-delimited row: "|A|B|" has 2.
func countTableCells(line []byte) int {
	if len(line) < 2 {
		return 0
	}
	inner := line
	if inner[0] == '|' {
		inner = inner[1:]
	}
	if len(inner) > 0 && inner[len(inner)-1] == '|' {
		inner = inner[:len(inner)-1]
	}
	if len(inner) == 0 {
		return 0
	}
	return bytes.Count(inner, []byte("|")) + 1
}

// tryHTMLBlock matches a line beginning with '<' whose tag closes with a
// balancing '>' on the same line. The balanced span becomes an HtmlBlock
// token; any trailing text on the line is lexed inline.
func (l *Lexer) tryHTMLBlock() bool {
	if l.src[l.pos] != '<' {
		return false
	}
	m := l.mark()
	end := l.lineEnd(l.pos)
	depth := 0
	closeIdx := -1
	for i := l.pos; i < end; i++ {
		switch l.src[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		l.errorAt(m, "html block: missing closing '>' on the same line")
		l.context = ctxParagraph
		l.scanInline()
		return true
	}
	l.advanceTo(closeIdx + 1)
	l.emit(token.HtmlBlock, string(l.src[m.pos:l.pos]), m)
	l.context = ctxHTMLBlock
	l.scanInline()
	return true
}

// tryFootnote matches a footnote definition marker: '[^', digits, ']:'.
// Malformed definitions emit an Error; the '[^' is then reclassified as
// plain text and scanning resumes after it.
func (l *Lexer) tryFootnote() bool {
	if l.src[l.pos] != '[' || l.peek(1) != '^' {
		return false
	}
	m := l.mark()
	n := 2
	for isDigit(l.peek(n)) {
		n++
	}
	switch {
	case n == 2:
		l.errorAt(m, "footnote: expected digits after '[^'")
	case l.peek(n) != ']':
		l.errorAt(m, "footnote: expected ']' after footnote number")
	case l.peek(n+1) != ':':
		l.errorAt(m, "footnote: expected ':' after ']'")
	default:
		l.advance(n + 2)
		l.emit(token.FootnoteMarker, string(l.src[m.pos:l.pos]), m)
		l.context = ctxNone
		l.scanInline()
		return true
	}

	l.advance(2)
	l.emit(token.PlainText, "[^", m)
	l.context = ctxParagraph
	l.scanInline()
	return true
}
