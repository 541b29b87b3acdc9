// Package auth guards destructive operations behind a shared admin
// passphrase.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Gate decides whether a caller may run a destructive operation.
type Gate interface {
	Authorize(secret string) bool
}

// PassphraseGate accepts the passphrase matching a bcrypt hash.
type PassphraseGate struct {
	hash []byte
}

// NewPassphraseGate builds a gate from a bcrypt hash. An empty or malformed
// hash is rejected so a misconfigured gate cannot silently allow everything.
func NewPassphraseGate(hash string) (*PassphraseGate, error) {
	if hash == "" {
		return nil, errors.New("empty passphrase hash")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid passphrase hash: %w", err)
	}
	return &PassphraseGate{hash: []byte(hash)}, nil
}

// NewPlainPassphraseGate hashes passphrase and builds a gate from it.
func NewPlainPassphraseGate(passphrase string) (*PassphraseGate, error) {
	hash, err := HashPassphrase(passphrase)
	if err != nil {
		return nil, err
	}
	return &PassphraseGate{hash: []byte(hash)}, nil
}

func (g *PassphraseGate) Authorize(secret string) bool {
	if secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(secret)) == nil
}

// HashPassphrase returns the bcrypt hash to configure a PassphraseGate with.
func HashPassphrase(passphrase string) (string, error) {
	if passphrase == "" {
		return "", errors.New("empty passphrase")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing passphrase: %w", err)
	}
	return string(hash), nil
}

// DenyAll rejects every secret. It is the gate used when no passphrase is
// configured.
type DenyAll struct{}

func (DenyAll) Authorize(string) bool { return false }

// GateFunc adapts a function to Gate.
type GateFunc func(secret string) bool

func (f GateFunc) Authorize(secret string) bool { return f(secret) }
