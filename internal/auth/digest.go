// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package auth

import (
	"crypto/md5" //nolint:gosec // G501: protocol compatibility, not used for security
	"encoding/hex"
	"errors"

	"github.com/samber/oops"
	"golang.org/x/text/encoding/charmap"
)

// ErrInvalidCharacters is returned when the salt or password contains a rune
// that has no representation in code page 1251.
var ErrInvalidCharacters = errors.New("text is not representable in windows-1251")

// Digest holds both password forms the portal login accepts.
type Digest struct {
	// Full is md5_hex(salt + md5_hex(cp1251(salt))).
	Full string
	// Trimmed is the prefix of Full as long as the password, clamped to len(Full).
	Trimmed string
}

// PasswordDigester derives the salted password digest sent at login.
type PasswordDigester interface {
	// Digest computes the digest of password for the given salt.
	// Returns ErrInvalidCharacters when the input cannot be encoded.
	Digest(password, salt string) (Digest, error)
}

// LegacyDigester implements PasswordDigester with the portal's two-stage MD5
// scheme over windows-1251 text.
type LegacyDigester struct{}

// NewLegacyDigester creates a new LegacyDigester.
func NewLegacyDigester() *LegacyDigester {
	return &LegacyDigester{}
}

// Digest computes the legacy digest. It is a pure function of its inputs.
func (d *LegacyDigester) Digest(password, salt string) (Digest, error) {
	encodedSalt, err := encodeCP1251(salt)
	if err != nil {
		return Digest{}, err
	}
	// The password itself is not hashed, but a password the portal could not
	// store is rejected up front.
	if _, err := encodeCP1251(password); err != nil {
		return Digest{}, err
	}

	h1 := md5Hex(encodedSalt)
	full := md5Hex([]byte(salt + h1))

	return Digest{
		Full:    full,
		Trimmed: full[:min(len(password), len(full))],
	}, nil
}

// encodeCP1251 re-encodes s strictly; the charmap encoder fails on any rune
// outside the code page instead of substituting it.
func encodeCP1251(s string) ([]byte, error) {
	out, err := charmap.Windows1251.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, oops.Code("AUTH_INVALID_CHARACTERS").Wrap(ErrInvalidCharacters)
	}
	return out, nil
}

func md5Hex(b []byte) string {
	sum := md5.Sum(b) //nolint:gosec // G401: see import
	return hex.EncodeToString(sum[:])
}
