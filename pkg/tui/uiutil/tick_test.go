package uiutil

import (
	"testing"
	"time"
)

func TestOrDefaults(t *testing.T) {
	if OrTick(nil) == nil || OrNow(nil) == nil {
		t.Fatal("defaults must not be nil")
	}
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := OrNow(func() time.Time { return fixed })(); !got.Equal(fixed) {
		t.Fatalf("custom clock ignored: %v", got)
	}
}
