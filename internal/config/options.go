package config

import (
	"fmt"
	"strings"
)

const (
	UnicodeNone = "none"
	UnicodeNFC  = "nfc"
	UnicodeNFKC = "nfkc"
)

const (
	// DistanceNormFilename divides the edit distance by the length of the
	// prediction's file name. It reproduces earlier published results.
	DistanceNormFilename = "filename"
	// DistanceNormContent divides by the length of the prediction's tag
	// string.
	DistanceNormContent = "content"
)

func NormalizeUnicodeForm(raw string) (string, error) {
	form := strings.ToLower(strings.TrimSpace(raw))
	switch form {
	case "":
		return UnicodeNone, nil
	case UnicodeNone, UnicodeNFC, UnicodeNFKC:
		return form, nil
	default:
		return "", fmt.Errorf(
			"invalid unicode form %q (expected %s|%s|%s)",
			raw,
			UnicodeNone,
			UnicodeNFC,
			UnicodeNFKC,
		)
	}
}

func NormalizeDistanceNorm(raw string) (string, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	switch norm {
	case "":
		return DistanceNormFilename, nil
	case DistanceNormFilename, DistanceNormContent:
		return norm, nil
	case "name":
		return DistanceNormFilename, nil
	default:
		return "", fmt.Errorf(
			"invalid distance norm %q (expected %s|%s)",
			raw,
			DistanceNormFilename,
			DistanceNormContent,
		)
	}
}
