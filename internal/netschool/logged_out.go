// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import "github.com/netschool-go/netschool/internal/webclient"

// LoggedOut is a session whose portal session has ended. It keeps the
// metadata of the ended session and the credentials needed to log in again.
type LoggedOut struct {
	guard
	cfg      *settings
	metadata Metadata
	web      webclient.Anonymous
}

func newLoggedOut(cfg *settings, metadata Metadata, web webclient.Anonymous) *LoggedOut {
	return &LoggedOut{cfg: cfg, metadata: metadata, web: web}
}

// Metadata returns the account context of the ended session.
func (s *LoggedOut) Metadata() Metadata {
	return s.metadata
}

// Credentials returns the credentials the ended session used.
func (s *LoggedOut) Credentials() Credentials {
	return s.metadata.credentials
}

// SessionID identifies the logical session across its state values.
func (s *LoggedOut) SessionID() string {
	return s.cfg.id.String()
}

// Deactivate consumes s and returns an Inactive holding the same
// credentials over the same client, ready for another Login.
func (s *LoggedOut) Deactivate() (*Inactive, error) {
	if err := s.consume(); err != nil {
		return nil, err
	}
	return newInactive(s.cfg, s.metadata.credentials, s.web), nil
}
