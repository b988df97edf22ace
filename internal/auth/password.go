package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a salted bcrypt hash. Cost 10 verifies in roughly 100ms
// on commodity hardware.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// decoyHash is compared against when no user matches a login email, so an
// unknown email costs the same as a wrong password.
type decoyHash struct {
	once sync.Once
	cost int
	hash string
}

func (d *decoyHash) compare(password string) {
	d.once.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("decoy-password"), d.cost)
		if err == nil {
			d.hash = string(h)
		}
	})
	if d.hash != "" {
		_ = bcrypt.CompareHashAndPassword([]byte(d.hash), []byte(password))
	}
}
