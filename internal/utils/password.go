package utils

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// HashPassword hashes a plaintext password with bcrypt (cost 10, fresh salt per call)
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost) // Generate the hash
	if err != nil {
		return "", err // Return error if hashing fails
	}
	return string(hash), nil // Return the hash as a string
}

// CheckPassword compares a plaintext password against a stored bcrypt hash
func CheckPassword(plain, hash string) bool {
	// CompareHashAndPassword returns nil on match
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
