package lexer

import (
	"bytes"

	"github.com/yaklabco/mdlex/pkg/token"
)

// scanInline lexes the text portion of the current line, watching in
// priority order for inline code, strong, emphasis, strikethrough, image,
// link, and escape sequences, and accumulating plain text otherwise.
// Delimiter matching is non-greedy and confined to the current line; an
// opening delimiter with no closer emits an Error, is reclassified as
// plain text, and scanning resumes right after it.
func (l *Lexer) scanInline() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.consumeNewline()
			return
		case c == '\\':
			l.lexEscape()
		case c == '`':
			l.lexInlineCode()
		case c == '*' || c == '_':
			l.lexEmphasis(c)
		case c == '~' && l.peek(1) == '~':
			l.lexStrikethrough()
		case c == '!' && l.peek(1) == '[':
			l.lexImage()
		case c == '[':
			l.lexLink("link")
		default:
			l.lexText()
		}
	}
}

// lexText accumulates plain text up to the next inline delimiter or end of
// line. A run that covers a whole paragraph line is a ParagraphText token;
// any other run is PlainText.
func (l *Lexer) lexText() {
	m := l.mark()
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\n' || c == '\\' || c == '`' || c == '*' || c == '_' || c == '[' {
			break
		}
		if c == '~' && l.peek(1) == '~' {
			break
		}
		if c == '!' && l.peek(1) == '[' {
			break
		}
		l.advance(1)
	}
	kind := token.PlainText
	if l.context == ctxParagraph && m.col == 1 && (l.pos >= len(l.src) || l.src[l.pos] == '\n') {
		kind = token.ParagraphText
	}
	l.emit(kind, string(l.src[m.pos:l.pos]), m)
}

// lexEscape handles a backslash escape: the escaped character is emitted
// as plain text. A trailing backslash, or one before a newline, stands
// for itself.
func (l *Lexer) lexEscape() {
	m := l.mark()
	if next := l.peek(1); next != 0 && next != '\n' {
		l.advance(2)
		l.emit(token.PlainText, string(next), m)
		return
	}
	l.advance(1)
	l.emit(token.PlainText, "\\", m)
}

// lexInlineCode matches `code`, non-greedy up to the next backtick on the
// same line.
func (l *Lexer) lexInlineCode() {
	m := l.mark()
	closeIdx := l.findOnLine(l.pos+1, "`")
	if closeIdx < 0 {
		l.errorAt(m, "inline code: missing closing '`' before end of line")
		l.advance(1)
		l.emit(token.PlainText, "`", m)
		return
	}
	value := string(l.src[m.pos+1 : closeIdx])
	l.advanceTo(closeIdx + 1)
	l.emit(token.InlineCode, value, m)
}

// lexEmphasis matches *text* / _text_ and **text** / __text__. A doubled
// marker is tried as strong first; matching is non-greedy on the same line.
func (l *Lexer) lexEmphasis(marker byte) {
	m := l.mark()
	if l.peek(1) == marker {
		delim := string([]byte{marker, marker})
		closeIdx := l.findOnLine(l.pos+2, delim)
		if closeIdx < 0 {
			l.errorAt(m, "strong: missing closing %q before end of line", delim)
			l.advance(2)
			l.emit(token.PlainText, delim, m)
			return
		}
		value := string(l.src[m.pos+2 : closeIdx])
		l.advanceTo(closeIdx + 2)
		l.emit(token.Strong, value, m)
		return
	}

	closeIdx := l.findOnLine(l.pos+1, string(marker))
	if closeIdx < 0 {
		l.errorAt(m, "emphasis: missing closing %q before end of line", string(marker))
		l.advance(1)
		l.emit(token.PlainText, string(marker), m)
		return
	}
	value := string(l.src[m.pos+1 : closeIdx])
	l.advanceTo(closeIdx + 1)
	l.emit(token.Emphasis, value, m)
}

// lexStrikethrough matches ~~text~~ on the same line.
func (l *Lexer) lexStrikethrough() {
	m := l.mark()
	closeIdx := l.findOnLine(l.pos+2, "~~")
	if closeIdx < 0 {
		l.errorAt(m, "strikethrough: missing closing \"~~\" before end of line")
		l.advance(2)
		l.emit(token.PlainText, "~~", m)
		return
	}
	value := string(l.src[m.pos+2 : closeIdx])
	l.advanceTo(closeIdx + 2)
	l.emit(token.Strikethrough, value, m)
}

// lexImage matches ![text](url): an ImageMarker token for the '!' followed
// by the link tokens.
func (l *Lexer) lexImage() {
	m := l.mark()
	l.advance(1)
	l.emit(token.ImageMarker, "!", m)
	l.lexLink("image")
}

// lexLink matches [text](url), emitting LinkText for the bracketed span and
// LinkUrl for the parenthesized span. The url may contain balanced
// parentheses. construct names the form in diagnostics ("link" or "image").
func (l *Lexer) lexLink(construct string) {
	m := l.mark()
	closeBracket := l.findOnLine(l.pos+1, "]")
	if closeBracket < 0 {
		l.errorAt(m, "%s: missing closing ']' before end of line", construct)
		l.advance(1)
		l.emit(token.PlainText, "[", m)
		return
	}
	if closeBracket+1 >= len(l.src) || l.src[closeBracket+1] != '(' {
		l.errorAt(m, "%s: expected '(' after ']'", construct)
		l.advance(1)
		l.emit(token.PlainText, "[", m)
		return
	}

	end := l.lineEnd(l.pos)
	depth := 1
	closeParen := -1
	for i := closeBracket + 2; i < end; i++ {
		switch l.src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeParen = i
			}
		}
		if closeParen >= 0 {
			break
		}
	}
	if closeParen < 0 {
		l.errorAt(m, "%s: missing closing ')' in url", construct)
		l.advance(1)
		l.emit(token.PlainText, "[", m)
		return
	}

	text := string(l.src[m.pos+1 : closeBracket])
	l.advanceTo(closeBracket + 1)
	l.emit(token.LinkText, text, m)

	um := l.mark()
	url := string(l.src[closeBracket+2 : closeParen])
	l.advanceTo(closeParen + 1)
	l.emit(token.LinkUrl, url, um)
}

// findOnLine returns the absolute offset of the first occurrence of needle
// at or after from on the current line, or -1.
func (l *Lexer) findOnLine(from int, needle string) int {
	if from > len(l.src) {
		return -1
	}
	idx := bytes.Index(l.src[from:l.lineEnd(from)], []byte(needle))
	if idx < 0 {
		return -1
	}
	return from + idx
}
