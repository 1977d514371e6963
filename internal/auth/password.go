package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters: interactive-login cost, 64-byte derived key.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// HashPassword derives an scrypt hash over a fresh random salt and
// returns it in "hexhash.hexsalt" storage form. Two calls on the same
// password yield different strings.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("scrypt: %w", err)
	}
	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// CheckPassword recomputes the hash for the supplied password with the
// stored salt and compares in constant time.
func CheckPassword(supplied, stored string) bool {
	hashed, saltHex, ok := strings.Cut(stored, ".")
	if !ok {
		return false
	}
	want, err := hex.DecodeString(hashed)
	if err != nil {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	got, err := scrypt.Key([]byte(supplied), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(want, got) == 1
}

// GenerateTemporaryPassword returns a 6-digit numeric string in
// [100000, 999999]. Not a secret of lasting value: the user is expected
// to receive it once at registration and replace it later.
func GenerateTemporaryPassword() string {
	return fmt.Sprintf("%d", 100000+mrand.Intn(900000))
}
