package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// RandomHex returns n random bytes from crypto/rand encoded as hex.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// RandomDigits returns a uniformly random integer in [min, max] as a decimal
// string.
func RandomDigits(min, max int64) (string, error) {
	if max < min {
		return "", fmt.Errorf("invalid range [%d, %d]", min, max)
	}

	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return "", fmt.Errorf("error generating random number: %w", err)
	}

	return n.Add(n, big.NewInt(min)).String(), nil
}
