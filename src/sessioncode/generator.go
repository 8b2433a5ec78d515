package sessioncode

import (
	"crypto/rand"
	"regexp"
	"strings"
)

// Alphabet is the 32-symbol set for session codes: uppercase letters and
// digits 2-9, with the visually confusable 0/O/1/I removed so codes survive
// being read off a projector and typed by hand.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength ความยาวมาตรฐานของ session code
const CodeLength = 8

var codePattern = regexp.MustCompile(`^[A-HJ-NP-Z2-9]{8}$`)

// Generate returns a random code of the given length, each character drawn
// independently and uniformly from Alphabet. Uniqueness against live sessions
// is the caller's job (the session service re-rolls on collision).
func Generate(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform RNG is broken; nothing
		// sensible to return
		panic("sessioncode: rand.Read failed: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(buf)
}

// Normalize uppercases the input and strips every character outside Alphabet,
// mirroring the filtering the code entry field applies as the user types.
func Normalize(s string) string {
	s = strings.ToUpper(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r < 128 && strings.ContainsRune(Alphabet, r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// IsValid reports whether s is a syntactically complete session code.
func IsValid(s string) bool {
	return codePattern.MatchString(s)
}
