// Package tokenizer turns free text into normalized, searchable tokens and
// provides the text normalization and locale-sort helpers shared by the
// catalog store.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	chordRe = regexp.MustCompile(`\[[^\]]*\]`)
	tagRe   = regexp.MustCompile(`<[^>]*>`)
)

// separators holds the non-whitespace characters that split fragments.
const separators = `-().,;!?"'/+*&`

// RemoveChords strips bracketed chord annotations such as "[Ami]".
func RemoveChords(s string) string {
	return chordRe.ReplaceAllString(s, "")
}

// RemoveTags strips markup tags such as "<b>".
func RemoveTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// RemoveDiacritics replaces accented characters with their base form,
// so "café" becomes "cafe". The input is returned unchanged when it
// cannot be transformed.
func RemoveDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
}

// stripNonAlpha drops every byte outside a-z. Input is already lowercased.
func stripNonAlpha(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize produces the ordered token sequence of one or more text
// fragments: chords, markup, and diacritics are stripped, the text is
// lowercased and split on separators, remaining non-alphabetic characters
// are removed, and fragments shorter than two characters are discarded.
// Duplicates are preserved; callers dedupe with Unique where the index
// requires it. Tokenize is pure and deterministic.
func Tokenize(texts ...string) []string {
	var res []string
	for _, text := range texts {
		cleaned := RemoveDiacritics(RemoveTags(RemoveChords(text)))
		cleaned = strings.ToLower(cleaned)
		for _, word := range strings.FieldsFunc(cleaned, isSeparator) {
			trimmed := stripNonAlpha(word)
			if len(trimmed) >= 2 {
				res = append(res, trimmed)
			}
		}
	}
	return res
}

// Unique deduplicates tokens preserving order; the first occurrence wins.
func Unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	res := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		res = append(res, tok)
	}
	return res
}
