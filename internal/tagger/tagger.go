package tagger

import (
	"errors"
	"strings"
)

// Separator splits the prefix from the token in a tagged token.
const Separator = "/"

// sentenceEnd is a tagged full stop followed by a token separator. Tag
// rewrites it so that every sentence lands on its own line.
const sentenceEnd = "./. "

// ErrNotEvaluation is returned by Reduce when it is called for a
// non-evaluation document. The two-character form is only produced for
// evaluation holdouts.
var ErrNotEvaluation = errors.New("two-character form requested outside evaluation mode")

// TwoChar returns the first two characters of tok, or tok itself when it is
// a single character. Characters are Unicode code points.
func TwoChar(tok string) string {
	n := 0
	for i := range tok {
		if n == 2 {
			return tok[:i]
		}
		n++
	}

	return tok
}

// TagToken renders tok as "prefix/tok", where prefix is TwoChar(tok).
// A single-character token is tagged with itself: "a" -> "a/a".
func TagToken(tok string) string {
	return TwoChar(tok) + Separator + tok
}

// Tag converts raw text into tagged text: every token is rendered with
// TagToken, tokens are joined by single spaces, and a line break replaces
// the space after each tagged full stop.
//
// A full stop at the very end of the text has no following space and is
// therefore not followed by a line break.
func Tag(text string) string {
	tokens := Tokenize(text)

	tagged := make([]string, len(tokens))
	for i, tok := range tokens {
		tagged[i] = TagToken(tok)
	}

	out := strings.Join(tagged, " ")

	return strings.ReplaceAll(out, sentenceEnd, "./.\n")
}

// Reduce converts raw text into its two-character form: the TwoChar of
// every token, concatenated without separators and terminated by a newline.
//
// When eval is false Reduce returns an empty string and ErrNotEvaluation.
func Reduce(text string, eval bool) (string, error) {
	if !eval {
		return "", ErrNotEvaluation
	}

	var sb strings.Builder
	for _, tok := range Tokenize(text) {
		sb.WriteString(TwoChar(tok))
	}
	sb.WriteByte('\n')

	return sb.String(), nil
}
