package auth

import (
	"golang.org/x/crypto/bcrypt"
)

func normalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), normalizeCost(cost))
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// PasswordDecoy is compared against when no account matches, so that an
// unknown email costs as much as a wrong password. Build it with the same
// cost as real hashes.
type PasswordDecoy struct {
	hash []byte
}

// NewPasswordDecoy hashes a fixed value at cost.
func NewPasswordDecoy(cost int) (*PasswordDecoy, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("identity-service-decoy"), normalizeCost(cost))
	if err != nil {
		return nil, err
	}
	return &PasswordDecoy{hash: hash}, nil
}

// Check runs a full comparison and discards the result.
func (d *PasswordDecoy) Check(plain string) {
	if d == nil {
		return
	}
	_ = bcrypt.CompareHashAndPassword(d.hash, []byte(plain))
}

// Cost reports the bcrypt cost of the decoy hash.
func (d *PasswordDecoy) Cost() int {
	cost, _ := bcrypt.Cost(d.hash)
	return cost
}
