package util

import (
	"crypto/rand"
	"encoding/hex"
)

// RandString returns n bytes of randomness hex-encoded (2n characters).
func RandString(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("util: failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}
