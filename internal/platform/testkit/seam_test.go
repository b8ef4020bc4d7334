package testkit

import (
	"errors"
	"testing"
)

var (
	dial    = func(dsn string) error { return nil }
	retries = 3
)

func TestSwapRestoresAfterSubtest(t *testing.T) {
	boom := errors.New("connection refused")
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &dial, func(string) error { return boom })
		Swap(t, &retries, 0)
		if err := dial("postgres://x"); !errors.Is(err, boom) {
			t.Fatalf("dial = %v, want swapped error", err)
		}
		if retries != 0 {
			t.Fatalf("retries = %d, want 0", retries)
		}
	})

	if err := dial("postgres://x"); err != nil {
		t.Fatalf("dial not restored: %v", err)
	}
	if retries != 3 {
		t.Fatalf("retries not restored: %d", retries)
	}
}
