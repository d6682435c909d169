package service

import "golang.org/x/crypto/bcrypt"

// Credentials hashes and verifies passwords.
type Credentials struct {
	cost int
}

// NewCredentials returns a bcrypt-backed credential store. A cost outside
// bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewCredentials(cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{cost: cost}
}

func (c *Credentials) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Malformed hashes never
// match.
func (c *Credentials) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
