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

// Login consumes s and authenticates against the portal.
//
// On success it returns the logged-in session. On failure it returns the
// error together with a fresh Inactive holding the same credentials, so
// the caller can retry. When the account bootstrap fails after the portal
// accepted the credentials, the portal session is logged out before Login
// returns.
//
// A nil result pair with ErrConsumed means s was already used.
func (s *Inactive) Login(ctx context.Context) (*LoggedIn, *Inactive, error) {
	if err := s.consume(); err != nil {
		return nil, nil, err
	}

	ctx, span := tracer.Start(ctx, "netschool.Login", s.cfg.spanAttrs())
	defer span.End()

	start := time.Now()
	loggedIn, anon, err := s.login(ctx)
	transitionDuration.WithLabelValues("login").Observe(time.Since(start).Seconds())
	loginAttempts.WithLabelValues(resultLabel(err)).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		errutil.Log(ctx, s.cfg.logger, slog.LevelWarn, "login failed", err)
		return nil, newInactive(s.cfg, s.credentials, anon), err
	}

	s.cfg.logger.InfoContext(ctx, "logged in",
		"credentials", s.credentials,
		"student_id", loggedIn.metadata.studentID.String(),
		"duration", time.Since(start),
	)
	return loggedIn, nil, nil
}

// login runs the exchange. The returned handle is the one the caller's
// Inactive should hold on failure.
func (s *Inactive) login(ctx context.Context) (*LoggedIn, webclient.Anonymous, error) {
	anon := s.web

	// Primes the cookie jar; the body is ignored.
	if _, err := anon.Get(pathLoginData).Send(ctx); err != nil {
		return nil, anon, requestFailed(err, pathLoginData)
	}

	resp, err := anon.Post(pathAuthGetData).Send(ctx)
	if err != nil {
		return nil, anon, requestFailed(err, pathAuthGetData)
	}
	var seed authSeed
	if err := resp.DecodeJSON(&seed); err != nil {
		return nil, anon, invalidResponse(err, pathAuthGetData)
	}
	if err := seed.validate(); err != nil {
		return nil, anon, invalidResponse(err, pathAuthGetData)
	}

	digest, err := s.cfg.digester.Digest(s.credentials.password, *seed.Salt)
	if err != nil {
		return nil, anon, classify(CodeInvalidPasswordCharacters, err)
	}

	resp, err = anon.Post(pathLogin).JSON(newLoginForm(s.credentials, seed, digest)).Send(ctx)
	if err != nil {
		if status, ok := webclient.StatusCode(err); ok && status == http.StatusConflict {
			return nil, anon, classify(CodeInvalidCredentials, err, "username", s.credentials.username)
		}
		return nil, anon, requestFailed(err, pathLogin)
	}
	var result loginResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, anon, invalidResponse(err, pathLogin)
	}
	authed, err := anon.Authenticate(result.AccessToken)
	if err != nil {
		return nil, anon, invalidResponse(err, pathLogin)
	}

	metadata, err := bootstrap(ctx, authed, s.credentials)
	if err != nil {
		return nil, s.rollback(ctx, authed), err
	}

	return newLoggedIn(s.cfg, metadata, authed), webclient.Anonymous{}, nil
}

// rollback logs out a portal session that will not be handed to the
// caller. The outcome is logged and otherwise ignored. It runs even when
// ctx is already canceled.
func (s *Inactive) rollback(ctx context.Context, authed webclient.Authenticated) webclient.Anonymous {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.rollbackTimeout)
	defer cancel()

	if _, err := authed.Post(pathLogout).Send(ctx); err != nil {
		s.cfg.logger.DebugContext(ctx, "rollback logout failed", "error", err)
	} else {
		s.cfg.logger.DebugContext(ctx, "rolled back portal session")
	}
	return authed.Deauthenticate()
}
