package app

import (
	"strings"
	"testing"
)

func TestNewGameCodeShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := NewGameCode(6)
		if len(code) != 6 {
			t.Fatalf("expected 6 symbols, got %q", code)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = true
	}
	// 200 draws from a ~1e9 space colliding down to a handful would mean the
	// generator is broken, not unlucky.
	if len(seen) < 190 {
		t.Fatalf("expected near-unique codes, got %d distinct of 200", len(seen))
	}
}

func TestNewGameCodeDefaultsLength(t *testing.T) {
	if got := NewGameCode(0); len(got) != DefaultCodeLength {
		t.Fatalf("expected default length %d, got %q", DefaultCodeLength, got)
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  ab2x9z "); got != "AB2X9Z" {
		t.Fatalf("normalize: got %q", got)
	}
}
