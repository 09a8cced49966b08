package utils

import (
	"crypto/rand"
	"math/big"
)

// SecureRandomIntInRange returns a uniformly distributed integer in [min, max].
// It falls back to min if the system random source fails.
func SecureRandomIntInRange(min, max int) int {
	if max <= min {
		return min
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
	if err != nil {
		return min
	}
	return min + int(n.Int64())
}
