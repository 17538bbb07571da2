package common

import (
	"bytes"
	"crypto/subtle"
	"unicode"
)

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to drop passwords from memory once they have been submitted.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// WipeAll zeroes every given slice.
func WipeAll(bs ...[]byte) {
	for _, b := range bs {
		WipeByteArray(b)
	}
}

// EqualSecret compares two secrets in constant time.
func EqualSecret(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// BlankBytes reports whether b is empty or whitespace only.
func BlankBytes(b []byte) bool {
	return len(bytes.TrimFunc(b, unicode.IsSpace)) == 0
}
