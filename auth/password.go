// Package auth provides password hashing, JWT issuance and the HTTP
// middleware that resolves the acting user for each request.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when an email/password pair does
// not match a stored user. The same error covers "no such user" and
// "wrong password" so responses do not leak which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// HashPassword produces a bcrypt hash of the plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored hash.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
