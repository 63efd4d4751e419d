// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/netschool-go/netschool/internal/auth"
)

// DefaultRollbackTimeout bounds the logout issued when a login has to be
// rolled back.
const DefaultRollbackTimeout = 10 * time.Second

var tracer = otel.Tracer("github.com/netschool-go/netschool/internal/netschool")

// Option configures a session.
type Option func(*settings)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDigester replaces the password digester used at login.
func WithDigester(d auth.PasswordDigester) Option {
	return func(s *settings) {
		if d != nil {
			s.digester = d
		}
	}
}

// WithRollbackTimeout bounds the best-effort logout after a failed bootstrap.
func WithRollbackTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.rollbackTimeout = d
		}
	}
}

// settings are fixed when the Inactive value is created and carried by
// every state derived from it. They are never mutated afterwards.
type settings struct {
	id              ulid.ULID
	logger          *slog.Logger
	digester        auth.PasswordDigester
	rollbackTimeout time.Duration
}

func newSettings(opts []Option) *settings {
	s := &settings{
		id:              ulid.Make(),
		logger:          slog.Default(),
		digester:        auth.NewLegacyDigester(),
		rollbackTimeout: DefaultRollbackTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "netschool", "session_id", s.id.String())
	return s
}

func (s *settings) spanAttrs() trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("netschool.session_id", s.id.String()))
}

// guard marks a state value as consumed by a transition. A consumed value
// rejects every further operation with ErrConsumed.
type guard struct {
	consumed atomic.Bool
}

func (g *guard) consume() error {
	if !g.consumed.CompareAndSwap(false, true) {
		return consumedError()
	}
	return nil
}

func (g *guard) check() error {
	if g.consumed.Load() {
		return consumedError()
	}
	return nil
}
