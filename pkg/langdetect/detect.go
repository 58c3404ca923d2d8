// Package langdetect suggests language tags for fenced code blocks.
// It uses go-enry to detect a language from fence content and to
// canonicalize declared info-string tags to their common fence spelling.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// fallbackTag is returned when no confident detection is possible.
const fallbackTag = "text"

// classifierCandidates bounds the classifier to languages that commonly
// appear in Markdown code fences.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns a fence tag for code content, or "text" when detection
// fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return fallbackTag
	}

	// A shebang is the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}

	// Only trust the classifier when it is confident.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fenceTag(lang)
	}

	return fallbackTag
}

// Normalize canonicalizes a declared info-string tag to its common fence
// spelling ("Golang" becomes "go"). Unknown tags are lowercased as-is.
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if lang, ok := enry.GetLanguageByAlias(tag); ok {
		return fenceTag(lang)
	}
	return strings.ToLower(tag)
}

// fenceTag converts a go-enry language name to the tag conventionally used
// in Markdown fences.
func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
