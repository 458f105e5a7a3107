package authservice

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword is used by the credential bootstrap tooling to produce the
// configured admin password hash.
func HashPassword(pwd string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pwd), 12)
}

func comparePassword(hash []byte, pwd string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, []byte(pwd))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}
