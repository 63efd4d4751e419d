// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import (
	"errors"

	"github.com/netschool-go/netschool/internal/auth"
	"github.com/netschool-go/netschool/pkg/bigid"
)

// Portal API paths, relative to the webapi/ route.
const (
	pathLoginData       = "logindata"
	pathAuthGetData     = "auth/getdata"
	pathLogin           = "login"
	pathLogout          = "auth/logout"
	pathSchools         = "addresses/schools"
	pathDiaryInit       = "student/diary/init"
	pathCurrentYear     = "years/current"
	pathAssignmentTypes = "grade/assignment/types"
)

// loginTypePassword selects username/password login.
const loginTypePassword = 1

// authSeed is the auth/getdata response.
type authSeed struct {
	LT   *string `json:"lt"`
	Ver  *string `json:"ver"`
	Salt *string `json:"salt"`
}

func (s authSeed) validate() error {
	switch {
	case s.LT == nil:
		return errors.New("missing lt")
	case s.Ver == nil:
		return errors.New("missing ver")
	case s.Salt == nil:
		return errors.New("missing salt")
	}
	return nil
}

// loginForm is the login request body.
type loginForm struct {
	LoginType      int      `json:"loginType"`
	Username       string   `json:"un"`
	Password       string   `json:"pw"`
	FullPassword   string   `json:"pw2"`
	LT             string   `json:"lt"`
	Ver            string   `json:"ver"`
	Salt           string   `json:"salt"`
	CountryID      bigid.ID `json:"cid"`
	StateID        bigid.ID `json:"sid"`
	MunicipalityID bigid.ID `json:"pid"`
	CityID         bigid.ID `json:"cn"`
	Type           uint8    `json:"sft"`
	SchoolID       bigid.ID `json:"scid"`
}

func newLoginForm(creds Credentials, seed authSeed, digest auth.Digest) loginForm {
	school := creds.School()
	return loginForm{
		LoginType:      loginTypePassword,
		Username:       creds.Username(),
		Password:       digest.Trimmed,
		FullPassword:   digest.Full,
		LT:             *seed.LT,
		Ver:            *seed.Ver,
		Salt:           *seed.Salt,
		CountryID:      school.CountryID,
		StateID:        school.StateID,
		MunicipalityID: school.MunicipalityID,
		CityID:         school.CityID,
		Type:           uint8(school.Type),
		SchoolID:       school.ID,
	}
}

type loginResult struct {
	AccessToken string `json:"at"`
}

type diaryInit struct {
	Students []struct {
		StudentID *bigid.ID `json:"studentId"`
	} `json:"students"`
	CurrentStudentID *bigid.ID `json:"currentStudentId"`
}

type currentYear struct {
	ID *bigid.ID `json:"id"`
}

type assignmentType struct {
	ID   *bigid.ID `json:"id"`
	Name *string   `json:"name"`
}
