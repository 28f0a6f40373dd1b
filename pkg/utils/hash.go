package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// DeviceFingerprint derives a stable identifier for the device a request came
// from. It is a label for humans and eviction bookkeeping, not a security
// boundary: anyone who controls the user agent string controls the value.
func DeviceFingerprint(userAgent, ip string) string {
	sum := sha256.Sum256([]byte(userAgent + "|" + ip))
	return hex.EncodeToString(sum[:])[:32]
}

// SecureToken returns n random bytes as a hex string.
func SecureToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
