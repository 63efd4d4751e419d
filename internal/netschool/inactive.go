// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import (
	"context"

	"github.com/netschool-go/netschool/internal/webclient"
)

// Inactive is a session that has credentials but no portal session.
type Inactive struct {
	guard
	cfg         *settings
	credentials Credentials
	web         webclient.Anonymous
}

// NewInactive creates an inactive session for creds over an anonymous
// handle. Nothing is sent until Login.
func NewInactive(creds Credentials, web webclient.Anonymous, opts ...Option) *Inactive {
	return newInactive(newSettings(opts), creds, web)
}

func newInactive(cfg *settings, creds Credentials, web webclient.Anonymous) *Inactive {
	return &Inactive{cfg: cfg, credentials: creds, web: web}
}

// Credentials returns the credentials held by the session.
func (s *Inactive) Credentials() Credentials {
	return s.credentials
}

// SessionID identifies the logical session across its state values.
func (s *Inactive) SessionID() string {
	return s.cfg.id.String()
}

// WithCredentials consumes s and returns an inactive session over the same
// client holding creds instead.
func (s *Inactive) WithCredentials(creds Credentials) (*Inactive, error) {
	if err := s.consume(); err != nil {
		return nil, err
	}
	s.cfg.logger.Debug("credentials replaced", "credentials", creds)
	return newInactive(s.cfg, creds, s.web), nil
}

// Schools lists the portal's school directory over the session's handle.
func (s *Inactive) Schools(ctx context.Context) ([]SchoolInfo, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.directory().List(ctx)
}

// SchoolByName finds a directory entry by exact name.
func (s *Inactive) SchoolByName(ctx context.Context, name string) (SchoolInfo, error) {
	if err := s.check(); err != nil {
		return SchoolInfo{}, err
	}
	return s.directory().FindByName(ctx, name)
}

func (s *Inactive) directory() *Directory {
	return &Directory{web: s.web, logger: s.cfg.logger}
}
