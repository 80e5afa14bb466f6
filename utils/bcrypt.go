package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes an account password for storage on the users table.
func HashPassword(s string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
}

// ComparePassword checks a login attempt against the stored hash. Any
// non-nil return means "do not authenticate", including a malformed hash.
func ComparePassword(hashed string, normal string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(normal))
}
