// Package token defines the lexical token type produced by the Markdown
// lexer, the closed set of token kinds, and stream-level validation helpers.
package token

// Kind classifies the type of a token in the Markdown source.
type Kind uint16

// Token kinds cover every construct the lexer recognizes. Block markers,
// inline delimiters, and text runs are distinct kinds so a downstream
// consumer can reconstruct document structure from the stream alone.
const (
	Heading1 Kind = iota
	Heading2
	Heading3
	Heading4
	Heading5
	Heading6
	ParagraphText
	BlockquoteMarker
	UnorderedListMarker
	OrderedListMarker
	CodeFenceOpen
	CodeFenceClose
	CodeText
	Language
	HorizontalRule
	TableRow
	TableDivider
	HtmlBlock
	FootnoteMarker
	Emphasis
	Strong
	Strikethrough
	LinkText
	LinkUrl
	ImageMarker
	InlineCode
	PlainText
	Newline
	Error
	EndOfFile
)

var kindNames = [...]string{
	Heading1:            "Heading1",
	Heading2:            "Heading2",
	Heading3:            "Heading3",
	Heading4:            "Heading4",
	Heading5:            "Heading5",
	Heading6:            "Heading6",
	ParagraphText:       "ParagraphText",
	BlockquoteMarker:    "BlockquoteMarker",
	UnorderedListMarker: "UnorderedListMarker",
	OrderedListMarker:   "OrderedListMarker",
	CodeFenceOpen:       "CodeFenceOpen",
	CodeFenceClose:      "CodeFenceClose",
	CodeText:            "CodeText",
	Language:            "Language",
	HorizontalRule:      "HorizontalRule",
	TableRow:            "TableRow",
	TableDivider:        "TableDivider",
	HtmlBlock:           "HtmlBlock",
	FootnoteMarker:      "FootnoteMarker",
	Emphasis:            "Emphasis",
	Strong:              "Strong",
	Strikethrough:       "Strikethrough",
	LinkText:            "LinkText",
	LinkUrl:             "LinkUrl",
	ImageMarker:         "ImageMarker",
	InlineCode:          "InlineCode",
	PlainText:           "PlainText",
	Newline:             "Newline",
	Error:               "Error",
	EndOfFile:           "EndOfFile",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// HeadingKind returns the heading kind for a 1-6 level, and false for any
// other level.
func HeadingKind(level int) (Kind, bool) {
	if level < 1 || level > 6 {
		return Error, false
	}
	return Heading1 + Kind(level-1), true
}

// Token represents a classified span of bytes in the Markdown source.
//
// Value holds the semantically useful text of the token: the heading text
// without its marker, the inner text of an emphasis span, the diagnostic
// message for Error tokens. StartOffset/EndOffset record the exact byte
// span in the source, delimiters included, so the original document can be
// reconstructed from the stream.
type Token struct {
	// Kind classifies what this token represents.
	Kind Kind

	// Value is the token's semantic text, or a diagnostic message for Error.
	Value string

	// Line is the 1-based line where the token's span begins.
	Line int

	// Column is the 1-based byte column within Line where the span begins.
	Column int

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int
}

// Text returns the exact source text of this token's span.
func (t Token) Text(source []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(source) || t.StartOffset > t.EndOffset {
		return nil
	}
	return source[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token's span in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsZeroWidth returns true if this token spans no source bytes.
// Error and EndOfFile tokens are always zero-width.
func (t Token) IsZeroWidth() bool {
	return t.StartOffset == t.EndOffset
}

// ValidateStream checks the losslessness invariant of a token stream:
// ignoring Error and EndOfFile tokens, spans must be contiguous,
// non-overlapping, and cover the full source range [0, sourceLen).
// Returns true if the invariant holds.
func ValidateStream(tokens []Token, sourceLen int) bool {
	next := 0
	for _, t := range tokens {
		if t.Kind == Error || t.Kind == EndOfFile {
			continue
		}
		if t.StartOffset != next || t.EndOffset < t.StartOffset {
			return false
		}
		next = t.EndOffset
	}
	return next == sourceLen
}
