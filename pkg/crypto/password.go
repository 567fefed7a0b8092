package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt
	BcryptCost = 10

	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePasswordStrength reports whether password fits the accepted length range.
// bcrypt ignores everything past 72 bytes, so longer inputs are refused outright.
func ValidatePasswordStrength(password string) bool {
	return len(password) >= MinPasswordLength && len(password) <= MaxPasswordLength
}
