// Package entropy supplies uniform random values from crypto/rand for
// narrative template selection.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
)

// Float64 returns a random float64 in [0, 1).
func Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen but 0.5 is a safe default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Intn returns a random int in [0, n). Non-positive n yields 0.
func Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(Float64() * float64(n))
}
