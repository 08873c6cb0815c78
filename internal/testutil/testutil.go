// Package testutil provides shared skip helpers and assertions for tests.
//
// Each skip helper calls t.Skip with a clear human-readable reason when the
// named prerequisite is absent, so integration tests remain runnable in
// partial environments without failing noisily.
//
// Typical usage:
//
//	func TestLiveFetch(t *testing.T) {
//	    testutil.RequireNetwork(t)
//	    ...
//	}
package testutil

import (
	"os"
	"strings"
	"testing"
)

// NetworkEnv enables tests that reach the public internet when set to 1.
const NetworkEnv = "KAIJU_NETWORK_TESTS"

// RequireNetwork skips the test unless NetworkEnv is set to "1" or "true".
func RequireNetwork(tb testing.TB) {
	tb.Helper()

	switch strings.ToLower(strings.TrimSpace(os.Getenv(NetworkEnv))) {
	case "1", "true":
		return
	}

	tb.Skipf("network tests disabled; set %s=1 to enable", NetworkEnv)
}

// RequireFile skips the test if path does not exist.
func RequireFile(tb testing.TB, path string) {
	tb.Helper()

	if _, err := os.Stat(path); err != nil {
		tb.Skipf("fixture %q not available: %v", path, err)
	}
}
