// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/netschool-go/netschool/internal/webclient"
	"github.com/netschool-go/netschool/pkg/errutil"
)

// LoggedIn is an authenticated portal session.
type LoggedIn struct {
	guard
	cfg      *settings
	metadata Metadata
	web      webclient.Authenticated
}

func newLoggedIn(cfg *settings, metadata Metadata, web webclient.Authenticated) *LoggedIn {
	return &LoggedIn{cfg: cfg, metadata: metadata, web: web}
}

// Metadata returns the account context fetched at login.
func (s *LoggedIn) Metadata() Metadata {
	return s.metadata
}

// Credentials returns the credentials the session was established with.
func (s *LoggedIn) Credentials() Credentials {
	return s.metadata.credentials
}

// SessionID identifies the logical session across its state values.
func (s *LoggedIn) SessionID() string {
	return s.cfg.id.String()
}

// Get starts an authenticated request against an API path. Sending the
// request fails with ErrConsumed once s has been consumed.
func (s *LoggedIn) Get(path string) (*webclient.Request, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.web.Get(path).Precondition(s.check), nil
}

// Post starts an authenticated request against an API path. Sending the
// request fails with ErrConsumed once s has been consumed.
func (s *LoggedIn) Post(path string) (*webclient.Request, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.web.Post(path).Precondition(s.check), nil
}

// Logout consumes s and ends the portal session.
//
// A 401 from the portal means the session had already expired and counts
// as success. Any other failure returns a fresh LoggedIn for the same
// session so the caller can retry.
func (s *LoggedIn) Logout(ctx context.Context) (*LoggedOut, *LoggedIn, error) {
	if err := s.consume(); err != nil {
		return nil, nil, err
	}

	ctx, span := tracer.Start(ctx, "netschool.Logout", s.cfg.spanAttrs())
	defer span.End()

	err := s.logout(ctx)
	if status, ok := webclient.StatusCode(err); ok && status == http.StatusUnauthorized {
		s.cfg.logger.DebugContext(ctx, "portal session already expired")
		err = nil
	}
	logoutAttempts.WithLabelValues(resultLabel(err)).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "logout failed")
		errutil.Log(ctx, s.cfg.logger, slog.LevelWarn, "logout failed", err)
		return nil, newLoggedIn(s.cfg, s.metadata, s.web), err
	}

	s.cfg.logger.InfoContext(ctx, "logged out")
	return newLoggedOut(s.cfg, s.metadata, s.web.Deauthenticate()), nil, nil
}

// LogoutAnyway consumes s and always returns a LoggedOut. The error reports
// whether the portal call failed; the local session is gone either way.
//
// The only failure without a LoggedOut is ErrConsumed.
func (s *LoggedIn) LogoutAnyway(ctx context.Context) (*LoggedOut, error) {
	if err := s.consume(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "netschool.LogoutAnyway", s.cfg.spanAttrs())
	defer span.End()

	err := s.logout(ctx)
	logoutAttempts.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "logout failed")
		errutil.Log(ctx, s.cfg.logger, slog.LevelWarn, "logout failed, dropping session anyway", err)
	} else {
		s.cfg.logger.InfoContext(ctx, "logged out")
	}

	return newLoggedOut(s.cfg, s.metadata, s.web.Deauthenticate()), err
}

func (s *LoggedIn) logout(ctx context.Context) error {
	start := time.Now()
	defer func() {
		transitionDuration.WithLabelValues("logout").Observe(time.Since(start).Seconds())
	}()

	if _, err := s.web.Post(pathLogout).Send(ctx); err != nil {
		return requestFailed(err, pathLogout)
	}
	return nil
}
