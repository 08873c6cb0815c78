package tagger

import (
	"errors"
	"strings"
	"testing"
)

func TestTwoChar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "a"},
		{".", "."},
		{"ab", "ab"},
		{"Godzilla", "Go"},
		{"Tōhō", "Tō"},
		{"怪獣映画", "怪獣"},
	}

	for _, tt := range tests {
		if got := TwoChar(tt.in); got != tt.want {
			t.Errorf("TwoChar(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTagToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a", "a/a"},
		{".", "./."},
		{"(", "(/("},
		{"Mothra", "Mo/Mothra"},
		{"is", "is/is"},
	}

	for _, tt := range tests {
		if got := TagToken(tt.in); got != tt.want {
			t.Errorf("TagToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTag(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single character token tags itself",
			input: "a",
			want:  "a/a",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "ampersand ellipsis and sentence break",
			input: "Godzilla & Mothra... fought!",
			want:  "Go/Godzilla an/and Mo/Mothra ./.\nfo/fought !/!",
		},
		{
			name:  "word with inner apostrophe is dropped",
			input: "Godzilla doesn't sleep.",
			want:  "Go/Godzilla sl/sleep ./.",
		},
		{
			name:  "bracketed annotations removed",
			input: "Rodan[3] is a pteranodon.[4]",
			want:  "Ro/Rodan is/is a/a pt/pteranodon ./.",
		},
		{
			name:  "nested brackets leave a remainder",
			input: "x [a [b] c] y",
			want:  "x/x c]/c] y/y",
		},
		{
			name:  "standalone slash becomes a space",
			input: "Mothra / Battra",
			want:  "Mo/Mothra Ba/Battra",
		},
		{
			name:  "slash inside a word drops the word",
			input: "Mothra/Battra flies",
			want:  "fl/flies",
		},
		{
			name:  "punctuation becomes standalone tokens",
			input: "Rodan, Gigan; Hedorah: (Biollante)?",
			want:  "Ro/Rodan ,/, Gi/Gigan ;/; He/Hedorah :/: (/( Bi/Biollante )/) ?/?",
		},
		{
			name:  "one sentence per line",
			input: "Godzilla roars. Mothra flies. ",
			want:  "Go/Godzilla ro/roars ./.\nMo/Mothra fl/flies ./.",
		},
		{
			name:  "non-ASCII letters are word characters",
			input: "Tōhō kaiju",
			want:  "Tō/Tōhō ka/kaiju",
		},
		{
			name:  "superscript and fraction digits are word characters",
			input: "x²y is ½ big",
			want:  "x²/x²y is/is ½/½ bi/big",
		},
		{
			name:  "combining marks are symbols",
			input: "cafe\u0301s ok",
			want:  "ok/ok",
		},
		{
			name:  "ASCII separators split tokens",
			input: "Godzilla\x1cMothra\x1fRodan",
			want:  "Go/Godzilla Mo/Mothra Ro/Rodan",
		},
		{
			name:  "newlines and tabs are token separators",
			input: "King\tGhidorah\n\nflies",
			want:  "Ki/King Gh/Ghidorah fl/flies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tag(tt.input)
			if got != tt.want {
				t.Errorf("Tag(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTag_TokensHaveTwoCharPrefix(t *testing.T) {
	inputs := []string{
		"Godzilla & Mothra... fought!",
		"In 1954, Tōhō released Godzilla (ゴジラ, Gojira) [1].",
		"a b c d. e, f; g: h! i? (j)",
		"Mechagodzilla/Kiryu is a mecha & a kaiju... it's big!",
	}

	for _, in := range inputs {
		for _, tok := range strings.Fields(Tag(in)) {
			prefix, word, ok := strings.Cut(tok, Separator)
			if !ok {
				t.Fatalf("token %q from %q has no separator", tok, in)
			}
			if word == "" || prefix == "" {
				t.Fatalf("token %q from %q has an empty side", tok, in)
			}
			if strings.Contains(word, Separator) {
				t.Fatalf("token %q from %q has more than one separator", tok, in)
			}
			if prefix != TwoChar(word) {
				t.Errorf("token %q from %q: prefix %q, want %q", tok, in, prefix, TwoChar(word))
			}
		}
	}
}

func TestTag_NotIdempotent(t *testing.T) {
	once := Tag("Godzilla roars at Mothra")
	twice := Tag(once)

	if once == twice {
		t.Fatalf("expected tagging twice to differ from tagging once, both %q", once)
	}
}

func TestTag_PreservesTokenOrder(t *testing.T) {
	got := Tag("one two three four")
	want := "on/one tw/two th/three fo/four"

	if got != want {
		t.Errorf("Tag = %q, want %q", got, want)
	}
}

func TestTokenize_NoEmptyTokens(t *testing.T) {
	for _, tok := range Tokenize("  [x]  ...  &  ( )  ") {
		if tok == "" {
			t.Fatal("Tokenize returned an empty token")
		}
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{" \t\n", nil},
		{"a b", []string{"a", "b"}},
		{"a\x1cb\x1dc\x1ed\x1fe", []string{"a", "b", "c", "d", "e"}},
		{"a\u00a0b\u3000c", []string{"a", "b", "c"}},
		{"x²y", []string{"x²y"}},
	}

	for _, tt := range tests {
		got := Fields(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("Fields(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "prefixes concatenated",
			input: "Godzilla and Mothra.",
			want:  "GoanMo.\n",
		},
		{
			name:  "empty input is a bare newline",
			input: "",
			want:  "\n",
		},
		{
			name:  "single characters kept whole",
			input: "a (b) c",
			want:  "a(b)c\n",
		},
		{
			name:  "same cleaning as Tag",
			input: "Rodan[3] doesn't fly & roars...",
			want:  "Roflanro.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(tt.input, true)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Reduce(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReduce_OutsideEvaluation(t *testing.T) {
	got, err := Reduce("Godzilla and Mothra.", false)
	if !errors.Is(err, ErrNotEvaluation) {
		t.Fatalf("expected ErrNotEvaluation, got %v", err)
	}

	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
