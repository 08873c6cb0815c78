// Package tagger converts raw article text into the slash-tagged corpus
// format consumed by the segmentation trainer, and into the compact
// two-character form used as evaluation input.
package tagger

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// Word characters are letters, numbers of any kind (including "²" and
// "½") and the underscore. Combining marks and joiners are not word
// characters. Whitespace includes the ASCII separators U+001C..U+001F.
const (
	wordClass    = `[\p{L}\p{N}_]`
	symbolClass  = `[^\p{L}\p{N}_\s\x1c-\x1f]`
	wordBoundary = `(?:(?<=` + wordClass + `)(?!` + wordClass + `)|(?<!` + wordClass + `)(?=` + wordClass + `))`
)

var (
	// bracketRE matches citation markers and other bracketed annotations.
	// Nested brackets are not balanced.
	bracketRE = regexp.MustCompile(`\[.*?\]`)

	// symbolWordRE matches a word with punctuation or symbols inside or
	// directly before its trailing word boundary, e.g. "don't" or "U.S.A".
	// Equivalent to \b\w*[^\w\s]+\w*\b with the word class above; it needs
	// lookaround, which RE2 does not provide.
	symbolWordRE = regexp2.MustCompile(
		wordBoundary+wordClass+`*`+symbolClass+`+`+wordClass+`*`+wordBoundary,
		regexp2.None,
	)

	punctRE = regexp.MustCompile(`([.,:;!?()])`)
)

// Clean applies the normalization steps that precede tokenization:
//  1. drop bracketed annotations ("[1]", "[citation needed]");
//  2. drop whole words carrying punctuation or symbols;
//  3. replace "/" with a space so it cannot collide with the tag separator;
//  4. collapse "..." to ".";
//  5. expand "&" to "and";
//  6. pad sentence and clause punctuation with spaces.
//
// Order matters: each step operates on the output of the previous one.
func Clean(text string) string {
	s := bracketRE.ReplaceAllString(text, "")

	// Replace only fails on a match timeout, and none is configured.
	if out, err := symbolWordRE.Replace(s, "", -1, -1); err == nil {
		s = out
	}

	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, "...", ".")
	s = strings.ReplaceAll(s, "&", "and")
	s = punctRE.ReplaceAllString(s, " ${1} ")

	return s
}

// Tokenize cleans text and splits it into whitespace-delimited tokens.
// The result never contains an empty token.
func Tokenize(text string) []string {
	return Fields(Clean(text))
}

// Fields splits s around runs of whitespace, where whitespace is
// unicode.IsSpace plus the separators U+001C..U+001F.
func Fields(s string) []string {
	return strings.FieldsFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
