// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/samber/oops"

	"github.com/netschool-go/netschool/pkg/bigid"
)

// InstitutionType classifies a school in the portal directory.
type InstitutionType uint8

// Known institution types. The numeric values are the portal's.
const (
	InstitutionPreschool  InstitutionType = 1
	InstitutionSchool     InstitutionType = 2
	InstitutionAdditional InstitutionType = 3
)

func (t InstitutionType) String() string {
	switch t {
	case InstitutionPreschool:
		return "preschool"
	case InstitutionSchool:
		return "school"
	case InstitutionAdditional:
		return "additional"
	default:
		return fmt.Sprintf("InstitutionType(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the known types.
func (t InstitutionType) Valid() bool {
	return t >= InstitutionPreschool && t <= InstitutionAdditional
}

// UnmarshalJSON accepts only the known numeric values.
func (t *InstitutionType) UnmarshalJSON(data []byte) error {
	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return oops.With("value", string(data)).Wrapf(err, "institution type")
	}
	v := InstitutionType(n)
	if !v.Valid() {
		return oops.With("value", n).Errorf("unknown institution type")
	}
	*t = v
	return nil
}

// SchoolInfo identifies a school for login. Field names on the wire match
// the portal's directory entries.
type SchoolInfo struct {
	CountryID      bigid.ID        `json:"countryId" yaml:"country_id"`
	StateID        bigid.ID        `json:"stateId" yaml:"state_id"`
	MunicipalityID bigid.ID        `json:"municipalityDistrictId" yaml:"municipality_id"`
	CityID         bigid.ID        `json:"cityId" yaml:"city_id"`
	ID             bigid.ID        `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Type           InstitutionType `json:"educationalInstitutionType" yaml:"type"`
}

// UnmarshalJSON decodes a directory entry. Every field except the
// institution type is required; a missing type means InstitutionSchool.
func (s *SchoolInfo) UnmarshalJSON(data []byte) error {
	var wire struct {
		CountryID      *bigid.ID        `json:"countryId"`
		StateID        *bigid.ID        `json:"stateId"`
		MunicipalityID *bigid.ID        `json:"municipalityDistrictId"`
		CityID         *bigid.ID        `json:"cityId"`
		ID             *bigid.ID        `json:"id"`
		Name           *string          `json:"name"`
		Type           *InstitutionType `json:"educationalInstitutionType"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	required := []struct {
		key     string
		missing bool
	}{
		{"countryId", wire.CountryID == nil},
		{"stateId", wire.StateID == nil},
		{"municipalityDistrictId", wire.MunicipalityID == nil},
		{"cityId", wire.CityID == nil},
		{"id", wire.ID == nil},
		{"name", wire.Name == nil},
	}
	for _, f := range required {
		if f.missing {
			return oops.With("field", f.key).Errorf("school entry missing %s", f.key)
		}
	}

	decoded := SchoolInfo{
		CountryID:      *wire.CountryID,
		StateID:        *wire.StateID,
		MunicipalityID: *wire.MunicipalityID,
		CityID:         *wire.CityID,
		ID:             *wire.ID,
		Name:           *wire.Name,
		Type:           InstitutionSchool,
	}
	if wire.Type != nil {
		decoded.Type = *wire.Type
	}
	*s = decoded
	return nil
}

// Credentials are the inputs to login. The zero value is unusable; build
// one with NewCredentials. Credentials are comparable and never print the
// password.
type Credentials struct {
	username string
	password string
	school   SchoolInfo
}

// NewCredentials creates credentials for one account at one school.
func NewCredentials(username, password string, school SchoolInfo) Credentials {
	return Credentials{username: username, password: password, school: school}
}

// Username returns the login name.
func (c Credentials) Username() string { return c.username }

// Password returns the plaintext password.
func (c Credentials) Password() string { return c.password }

// School returns the school the account belongs to.
func (c Credentials) School() SchoolInfo { return c.school }

func (c Credentials) String() string {
	return fmt.Sprintf("%s@%s", c.username, c.school.ID)
}

// LogValue implements slog.LogValuer. The password is never logged.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.username),
		slog.String("school_id", c.school.ID.String()),
	)
}

// GoString keeps %#v from leaking the password.
func (c Credentials) GoString() string {
	return fmt.Sprintf("netschool.Credentials{username: %q, password: \"<redacted>\", school: %q}", c.username, c.school.Name)
}
