package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt hash; the salt is random, so the
// same plaintext hashes differently on every call.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword reports whether plain matches hashed. Malformed hashes
// report false rather than failing.
func CheckPassword(hashed, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
