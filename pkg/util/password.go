package util

import "golang.org/x/crypto/bcrypt"

// bcrypt work factor. Raising it invalidates nothing; existing hashes keep
// the cost they were created with.
const bcryptCost = 12

// HashPassword derives a bcrypt hash from a plain text password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plain text password matches the stored
// bcrypt hash.
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
