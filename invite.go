package fund

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// inviteCodeBytes is the entropy of a freshly generated invite code.
const inviteCodeBytes = 16

// NewInviteCode returns a high-entropy random secret in URL-safe base64.
func NewInviteCode() (string, error) {
	buf := make([]byte, inviteCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate invite code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashCode returns the one-way digest of an invite code. Only the digest is
// published; the plaintext stays in the private snapshot.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// RegenerateCode replaces an investor's invite code with a fresh one,
// invalidating the previous hash and any link built from it.
func (f *Fund) RegenerateCode(name string) (string, error) {
	inv := f.Find(name)
	if inv == nil {
		return "", fmt.Errorf("%w: %q", ErrInvestorNotFound, name)
	}
	code, err := NewInviteCode()
	if err != nil {
		return "", err
	}
	inv.Code = code
	inv.CodeHash = HashCode(code)
	return code, nil
}

// VerifyHash matches a client-supplied digest against all stored code
// hashes. The scan always walks every investor and performs the same
// comparison work whether or not a match exists, so a non-match looks no
// different from a fund with no codes at all.
func (f *Fund) VerifyHash(candidate string) (name string, ok bool) {
	cb := []byte(candidate)
	for _, inv := range f.Investors {
		if subtle.ConstantTimeCompare(cb, []byte(inv.CodeHash)) == 1 {
			name, ok = inv.Name, true
		}
	}
	return name, ok
}
