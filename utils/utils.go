package utils

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

// CheckPasswordHash returns bcrypt.ErrMismatchedHashAndPassword on a wrong
// password and any other error for a broken hash.
func CheckPasswordHash(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// NewID returns a random id. With a prefix the id reads "prefix_xxxxxxxx".
func NewID(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
