// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import (
	"maps"

	"github.com/netschool-go/netschool/pkg/bigid"
)

// Metadata is the account context fetched right after login. It is only
// produced by a successful login and always travels with the credentials
// that produced it.
type Metadata struct {
	studentID       bigid.ID
	yearID          bigid.ID
	assignmentTypes map[bigid.ID]string
	credentials     Credentials
}

// StudentID returns the selected student's id.
func (m Metadata) StudentID() bigid.ID { return m.studentID }

// YearID returns the current school year's id.
func (m Metadata) YearID() bigid.ID { return m.yearID }

// AssignmentTypes returns a copy of the assignment type names by id.
func (m Metadata) AssignmentTypes() map[bigid.ID]string {
	return maps.Clone(m.assignmentTypes)
}

// AssignmentType looks up one assignment type name.
func (m Metadata) AssignmentType(id bigid.ID) (string, bool) {
	name, ok := m.assignmentTypes[id]
	return name, ok
}

// Credentials returns the credentials the session was established with.
func (m Metadata) Credentials() Credentials { return m.credentials }
