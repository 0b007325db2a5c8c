// Package highlight marks search terms in statute text with a minimal inline
// emphasis tag and provides the whitespace-insensitive containment test used
// by the search pass.
//
// The markup contract is a single tag pair, OpenTag and CloseTag, wrapped
// around the exact matched text. Consumers can restyle or strip it (see
// Strip and Spans) without changing the underlying text.
package highlight

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// OpenTag starts an emphasised match.
	OpenTag = "<span style='color:red'>"

	// CloseTag ends an emphasised match.
	CloseTag = "</span>"
)

// Highlight wraps every non-overlapping literal occurrence of keyword in
// text with the emphasis tags. Regions already wrapped by a previous call
// are copied verbatim, so highlighting twice with the same keyword does not
// nest tags. Empty text or keyword returns text unchanged.
func Highlight(text, keyword string) string {
	if text == "" || keyword == "" {
		return text
	}

	pattern := regexp.MustCompile(regexp.QuoteMeta(keyword))
	replacement := OpenTag + "${0}" + CloseTag

	var builder strings.Builder
	remaining := text
	for {
		openIndex := strings.Index(remaining, OpenTag)
		if openIndex < 0 {
			break
		}
		closeIndex := strings.Index(remaining[openIndex:], CloseTag)
		if closeIndex < 0 {
			break
		}
		spanEnd := openIndex + closeIndex + len(CloseTag)

		builder.WriteString(pattern.ReplaceAllString(remaining[:openIndex], replacement))
		builder.WriteString(remaining[openIndex:spanEnd])
		remaining = remaining[spanEnd:]
	}
	builder.WriteString(pattern.ReplaceAllString(remaining, replacement))

	return builder.String()
}

// Compact removes every whitespace rune from text. It is the comparison form
// used for whitespace-insensitive matching.
func Compact(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// Contains reports whether keyword occurs in text once all whitespace is
// removed from both. A keyword made only of whitespace never matches.
func Contains(text, keyword string) bool {
	compactKeyword := Compact(keyword)
	if compactKeyword == "" {
		return false
	}
	return strings.Contains(Compact(text), compactKeyword)
}
