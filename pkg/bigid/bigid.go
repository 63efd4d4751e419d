// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

// Package bigid provides an arbitrary-precision integer identifier.
//
// The portal emits numeric identifiers that do not always fit in 64 bits.
// ID keeps the canonical decimal form of the number, which makes it
// comparable with == and usable as a map key.
package bigid

import (
	"bytes"
	"math"
	"math/big"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// ID is an arbitrary-precision integer stored in canonical decimal form.
// The zero value represents 0.
type ID struct {
	digits string
}

// Parse parses a base-10 integer. Leading zeros and a leading '+' are
// accepted and normalized away.
func Parse(s string) (ID, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return ID{}, oops.Code("BIGID_INVALID").
			With("value", s).
			Errorf("not a base-10 integer")
	}
	return FromBig(n), nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests
// and constants.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// FromInt64 returns the ID for n.
func FromInt64(n int64) ID {
	return FromBig(big.NewInt(n))
}

// FromBig returns the ID for n. A nil n is treated as 0.
func FromBig(n *big.Int) ID {
	if n == nil || n.Sign() == 0 {
		return ID{}
	}
	return ID{digits: n.String()}
}

// String returns the canonical decimal representation.
func (id ID) String() string {
	if id.digits == "" {
		return "0"
	}
	return id.digits
}

// IsZero reports whether id is 0.
func (id ID) IsZero() bool {
	return id.digits == ""
}

// Big returns a fresh *big.Int holding id.
func (id ID) Big() *big.Int {
	n, _ := new(big.Int).SetString(id.String(), 10)
	return n
}

// Int64 returns id as an int64 and whether it fits.
func (id ID) Int64() (int64, bool) {
	n := id.Big()
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// Int returns id as an int and whether it fits.
func (id ID) Int() (int, bool) {
	v, ok := id.Int64()
	if !ok || v > math.MaxInt || v < math.MinInt {
		return 0, false
	}
	return int(v), true
}

// Cmp compares id and other, returning -1, 0 or +1.
func (id ID) Cmp(other ID) int {
	return id.Big().Cmp(other.Big())
}

// MarshalJSON encodes id as a bare JSON number.
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalJSON accepts an integral JSON number or a string holding one.
// Fractions and exponents are rejected.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return oops.Code("BIGID_INVALID").Errorf("null is not an identifier")
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalText encodes id in decimal. This lets encoding/json use ID as a
// map key.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses a decimal integer.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalYAML encodes id as a YAML integer scalar.
func (id ID) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: id.String()}, nil
}

// UnmarshalYAML decodes an integer scalar.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return oops.Code("BIGID_INVALID").
			With("line", node.Line).
			Errorf("identifier must be a scalar")
	}
	return id.UnmarshalText([]byte(node.Value))
}
