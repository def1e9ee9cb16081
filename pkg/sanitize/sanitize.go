// Package sanitize normalizes free-text input before it reaches the
// database or the search index. Markup is stripped, the remainder is
// HTML-escaped, and inputs carrying script-injection patterns are rejected.
package sanitize

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// ErrSuspicious marks input that carries a script or event-handler pattern.
	ErrSuspicious = errors.New("input contains invalid characters or patterns")
	// ErrInvalidName marks a person name with characters outside the allowed set.
	ErrInvalidName = errors.New("name contains invalid characters")
	// ErrTooShort marks input that shrinks below the minimum once cleaned.
	ErrTooShort = errors.New("input is too short after cleaning")
)

// minCleanLen is the minimum rune count a cleaned value must keep.
const minCleanLen = 2

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	suspiciousRe = regexp.MustCompile(`(?i)(<script|javascript:|vbscript:|onload=|onerror=|onclick=)`)
	// Letters in any script, spaces, hyphens, apostrophes and periods.
	nameRe = regexp.MustCompile(`^[\p{L}\s\-'.]+$`)
	// Anything outside letters, digits, whitespace and common punctuation.
	specialRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.,'"!?()]`)
)

// StripTags removes anything that looks like an HTML tag.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// Clean strips tags, trims whitespace, and escapes the remainder. It fails
// on suspicious patterns, on text that is mostly special characters, and on
// values that fall under minCleanLen once the markup is gone.
func Clean(s string) (string, error) {
	if suspiciousRe.MatchString(s) {
		return "", ErrSuspicious
	}
	out := html.EscapeString(StripTags(strings.TrimSpace(s)))
	if suspiciousRe.MatchString(out) {
		return "", ErrSuspicious
	}
	// More than 30% special characters reads as an injection attempt.
	// Both counts are in runes so multi-byte scripts are not penalized.
	total := utf8.RuneCountInString(out)
	if n := len(specialRe.FindAllString(out, -1)); total > 0 && n*10 > total*3 {
		return "", ErrSuspicious
	}
	if total < minCleanLen {
		return "", ErrTooShort
	}
	return out, nil
}

// CleanName strips tags and trims, then restricts the result to the
// characters allowed in a person name. The allowed set is already
// HTML-safe, so the result is not entity-escaped.
func CleanName(s string) (string, error) {
	if suspiciousRe.MatchString(s) {
		return "", ErrSuspicious
	}
	out := StripTags(strings.TrimSpace(s))
	if out != "" && !nameRe.MatchString(out) {
		return "", ErrInvalidName
	}
	return out, nil
}

// Query sanitizes a search query: escape, trim, and cap the length so a
// single request cannot push an oversized query downstream.
func Query(s string) string {
	out := html.EscapeString(strings.TrimSpace(s))
	if len(out) > 100 {
		out = out[:100]
	}
	return out
}
