// Package access implements the passphrase check that decides whether a quiz
// session is started at all. It holds no state besides the configured secret.
package access

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Gate is a stateless passphrase predicate.
type Gate struct {
	passphrase string
	hash       []byte
}

// NewGate builds a gate from a plaintext passphrase or a bcrypt hash. The
// hash wins when both are set. With neither, the gate is open.
func NewGate(passphrase, bcryptHash string) *Gate {
	g := &Gate{passphrase: normalize(passphrase)}
	if bcryptHash != "" {
		g.hash = []byte(bcryptHash)
	}
	return g
}

// Open reports whether no secret is configured.
func (g *Gate) Open() bool {
	return g.passphrase == "" && len(g.hash) == 0
}

// Allow reports whether input matches the configured secret. Matching
// ignores case and surrounding whitespace.
func (g *Gate) Allow(input string) bool {
	if g.Open() {
		return true
	}

	input = normalize(input)
	if len(g.hash) > 0 {
		return bcrypt.CompareHashAndPassword(g.hash, []byte(input)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.passphrase), []byte(input)) == 1
}

// HashPassphrase returns a bcrypt hash suitable for QUIZ_PASSPHRASE_HASH.
func HashPassphrase(passphrase string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(normalize(passphrase)), 12)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
