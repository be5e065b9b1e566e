// Package credentials implements password hashing and verification plus
// generation of random account secrets.
package credentials

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances hashing latency against brute-force resistance.
const bcryptCost = 12

// SecretLength is the hex length of generated account secrets.
const SecretLength = 50

// Hash derives a salted one-way hash of password. The output differs
// between calls for the same input; Verify accepts any of them.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. A malformed
// stored hash yields false, never an error.
func Verify(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// NewSecret returns a random hex string of n characters, used for google
// account secrets and user device keys.
func NewSecret(n int) (string, error) {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(buf)[:n], nil
}
