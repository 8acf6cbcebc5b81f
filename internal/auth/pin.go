package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/17okk-xie/portfolio/internal/model"
)

// ErrWrongPIN is returned by PIN.Check for a well-formed but incorrect PIN.
var ErrWrongPIN = errors.New("incorrect PIN")

// PIN holds the bcrypt hash of the upload page PIN. The gate keeps casual
// visitors out of the upload page; it is not an account system.
type PIN struct {
	hash []byte
}

// NewPIN hashes a plaintext PIN.
func NewPIN(plain string) (*PIN, error) {
	if err := model.ValidatePIN(plain); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing PIN: %w", err)
	}
	return &PIN{hash: hash}, nil
}

// PINFromHash wraps an existing bcrypt hash.
func PINFromHash(hash string) (*PIN, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid PIN hash: %w", err)
	}
	return &PIN{hash: []byte(hash)}, nil
}

// Check compares attempt against the stored hash.
func (p *PIN) Check(attempt string) error {
	if err := model.ValidatePIN(attempt); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(attempt)); err != nil {
		return ErrWrongPIN
	}
	return nil
}

// Hash returns the bcrypt hash, suitable for the pin_hash setting.
func (p *PIN) Hash() string {
	return string(p.hash)
}
