package app

import (
	"crypto/rand"
	"strings"
)

// codeAlphabet deliberately omits I, O, 0 and 1, which players confuse when
// typing a code off a screen. 32 symbols divides 256 evenly, so a plain
// modulo over random bytes stays unbiased.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultCodeLength gives ~1.07e9 possible codes, keeping the collision
// retry loop in CreateGame a non-event at realistic game counts.
const DefaultCodeLength = 6

// NewGameCode returns a random uppercase code of n symbols.
func NewGameCode(n int) string {
	if n <= 0 {
		n = DefaultCodeLength
	}
	b := make([]byte, n)
	_, _ = rand.Read(b)
	out := make([]byte, n)
	for i, v := range b {
		out[i] = codeAlphabet[int(v)%len(codeAlphabet)]
	}
	return string(out)
}

// NormalizeCode canonicalizes user-typed input before lookup. Stored codes
// are already normalized.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
