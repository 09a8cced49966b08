package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureRandomIntInRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		n := SecureRandomIntInRange(1000, 9999)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
	assert.Equal(t, 7, SecureRandomIntInRange(7, 7))
	assert.Equal(t, 7, SecureRandomIntInRange(7, 3))
}
