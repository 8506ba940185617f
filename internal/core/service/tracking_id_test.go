package service

import (
	"regexp"
	"testing"
)

func TestTrackingIDFormat(t *testing.T) {
	gen := NewTrackingIDGenerator()
	pattern := regexp.MustCompile(`^CT-[0-9A-F]{8}$`)

	for i := 0; i < 100; i++ {
		code := gen.Generate()
		if !pattern.MatchString(code) {
			t.Fatalf("malformed tracking code: %q", code)
		}
	}
}

func TestTrackingIDVaries(t *testing.T) {
	gen := NewTrackingIDGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[gen.Generate()] = true
	}
	// Collisions in a 32-bit space over 50 draws are effectively
	// impossible; a constant generator would fail immediately.
	if len(seen) < 2 {
		t.Fatalf("generator produced %d distinct codes", len(seen))
	}
}
