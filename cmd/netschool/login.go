// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package main

import (
	"context"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/netschool-go/netschool/internal/netschool"
	"github.com/netschool-go/netschool/pkg/bigid"
	"github.com/netschool-go/netschool/pkg/errutil"
)

// sessionView is the printable form of a completed login.
type sessionView struct {
	SessionID       string               `json:"session_id" yaml:"session_id"`
	Username        string               `json:"username" yaml:"username"`
	School          netschool.SchoolInfo `json:"school" yaml:"school"`
	StudentID       bigid.ID             `json:"student_id" yaml:"student_id"`
	YearID          bigid.ID             `json:"year_id" yaml:"year_id"`
	AssignmentTypes []assignmentTypeView `json:"assignment_types" yaml:"assignment_types"`
	LoggedOut       bool                 `json:"logged_out" yaml:"logged_out"`
}

type assignmentTypeView struct {
	ID   bigid.ID `json:"id" yaml:"id"`
	Name string   `json:"name" yaml:"name"`
}

func newSessionView(sessionID string, md netschool.Metadata) sessionView {
	types := make([]assignmentTypeView, 0, len(md.AssignmentTypes()))
	for id, name := range md.AssignmentTypes() {
		types = append(types, assignmentTypeView{ID: id, Name: name})
	}
	slices.SortFunc(types, func(a, b assignmentTypeView) int { return a.ID.Cmp(b.ID) })

	creds := md.Credentials()
	return sessionView{
		SessionID:       sessionID,
		Username:        creds.Username(),
		School:          creds.School(),
		StudentID:       md.StudentID(),
		YearID:          md.YearID(),
		AssignmentTypes: types,
	}
}

// NewLoginCmd creates the login subcommand.
func NewLoginCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in, print the account context and sign out",
		Long: `Resolve the configured school by name, sign in to the portal and print
the student, school year and assignment types fetched after login. The
session is closed before the command exits; if the portal refuses the
logout the local session is dropped anyway.

The password is read from the NETSCHOOL_PASSWORD environment variable or
account.password in the config file.`,
		Args: cobra.NoArgs,
		RunE: opts.portalCommand(func(ctx context.Context, cmd *cobra.Command, e *env, _ []string) error {
			if err := e.cfg.RequireAccount(); err != nil {
				return err
			}

			school, err := netschool.NewDirectory(e.anon, e.logger).FindByName(ctx, e.cfg.Account.School)
			if err != nil {
				return err
			}

			inactive := netschool.NewInactive(
				netschool.NewCredentials(e.cfg.Account.Username, e.cfg.Account.Password, school),
				e.anon,
				netschool.WithLogger(e.logger),
				netschool.WithRollbackTimeout(e.cfg.Portal.RollbackTimeout.Std()),
			)

			loggedIn, _, err := inactive.Login(ctx)
			if err != nil {
				return err
			}
			view := newSessionView(loggedIn.SessionID(), loggedIn.Metadata())
			view.LoggedOut = closeSession(ctx, e, loggedIn)

			return render(cmd.OutOrStdout(), opts.output, view, func(w io.Writer) {
				row(w, "SESSION", view.SessionID)
				row(w, "USER", view.Username)
				row(w, "SCHOOL", view.School.Name+" ("+view.School.ID.String()+")")
				row(w, "STUDENT", view.StudentID)
				row(w, "YEAR", view.YearID)
				for _, t := range view.AssignmentTypes {
					row(w, "ASSIGNMENT TYPE", t.ID.String()+" "+t.Name)
				}
				row(w, "LOGGED OUT", view.LoggedOut)
			})
		}),
	}
}

// closeSession logs out politely and falls back to dropping the session.
// It reports whether the portal confirmed the logout.
func closeSession(ctx context.Context, e *env, s *netschool.LoggedIn) bool {
	_, retry, err := s.Logout(ctx)
	if err == nil {
		return true
	}
	if retry == nil {
		return false
	}
	if _, err := retry.LogoutAnyway(ctx); err != nil {
		errutil.LogError(e.logger, "portal logout failed, session dropped locally", err)
		return false
	}
	return true
}
