package testkit

import "testing"

// Swap points a package-level seam at replacement until the test ends
// tests that swap must not run in parallel with readers of the same seam
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}
