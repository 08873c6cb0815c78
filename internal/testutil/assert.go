package testutil

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// AssertValidPNG checks that data starts with the PNG signature and holds
// an IHDR chunk with non-zero dimensions.
func AssertValidPNG(tb testing.TB, data []byte) {
	tb.Helper()

	if len(data) < 24 {
		tb.Fatalf("PNG data too short: %d bytes", len(data))
	}

	if !bytes.HasPrefix(data, pngSignature) {
		tb.Fatalf("PNG: bad signature %q", data[:8])
	}

	if string(data[12:16]) != "IHDR" {
		tb.Fatalf("PNG: missing IHDR chunk (got %q)", string(data[12:16]))
	}

	width := int(data[16])<<24 | int(data[17])<<16 | int(data[18])<<8 | int(data[19])
	height := int(data[20])<<24 | int(data[21])<<16 | int(data[22])<<8 | int(data[23])
	if width == 0 || height == 0 {
		tb.Fatalf("PNG: zero dimensions %dx%d", width, height)
	}
}

// AssertTaggedText checks that every whitespace-separated token of text has
// the form "prefix/token", where prefix is the first two characters of token
// or the whole token when it is a single character.
func AssertTaggedText(tb testing.TB, text string) {
	tb.Helper()

	for _, tok := range strings.Fields(text) {
		prefix, word, ok := strings.Cut(tok, "/")
		if !ok || prefix == "" || word == "" {
			tb.Fatalf("token %q is not of the form prefix/token", tok)
		}

		want := word
		if utf8.RuneCountInString(word) > 2 {
			i := 0
			for n := range word {
				if i == 2 {
					want = word[:n]
					break
				}
				i++
			}
		}

		if prefix != want {
			tb.Fatalf("token %q: prefix %q, want %q", tok, prefix, want)
		}
	}
}
