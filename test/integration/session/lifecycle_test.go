// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

//go:build integration

package session_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/netschool-go/netschool/internal/netschool"
	"github.com/netschool-go/netschool/internal/portaltest"
	"github.com/netschool-go/netschool/internal/webclient"
	"github.com/netschool-go/netschool/pkg/bigid"
)

var _ = Describe("Session lifecycle", func() {
	var (
		ctx    context.Context
		portal *portaltest.Portal
		anon   webclient.Anonymous
		creds  netschool.Credentials
	)

	BeforeEach(func() {
		ctx = context.Background()
		portal, anon = newPortalSession()
		creds = netschool.NewCredentials("student", "password", lookupLyceum(ctx, anon))
	})

	Describe("school directory", func() {
		It("finds a school by exact name", func() {
			school, err := netschool.NewDirectory(anon, nil).FindByName(ctx, "Lyceum 42")
			Expect(err).NotTo(HaveOccurred())
			Expect(school.ID).To(Equal(bigid.FromInt64(102)))
			Expect(school.Type).To(Equal(netschool.InstitutionSchool))
		})

		It("reports a missing school", func() {
			_, err := netschool.NewDirectory(anon, nil).FindByName(ctx, "Lyceum 43")
			Expect(err).To(HaveErrorCode(netschool.CodeSchoolNotFound))
		})
	})

	Describe("login", func() {
		It("logs in and fetches the account context", func() {
			in, retry, err := netschool.NewInactive(creds, anon).Login(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(retry).To(BeNil())

			meta := in.Metadata()
			Expect(meta.StudentID()).To(Equal(bigid.FromInt64(9002)))
			Expect(meta.YearID()).To(Equal(bigid.FromInt64(2026)))
			Expect(meta.AssignmentTypes()).To(HaveKeyWithValue(bigid.FromInt64(1), "Homework"))
			Expect(meta.Credentials()).To(Equal(creds))
		})

		It("stops before bootstrap when the credentials are rejected", func() {
			portal.Respond(http.MethodPost, "login", http.StatusConflict, "")

			in, retry, err := netschool.NewInactive(creds, anon).Login(ctx)
			Expect(in).To(BeNil())
			Expect(err).To(HaveErrorCode(netschool.CodeInvalidCredentials))
			Expect(retry).NotTo(BeNil())
			Expect(retry.Credentials()).To(Equal(creds))
			Expect(portal.Count(http.MethodGet, "student/diary/init")).To(BeZero())
		})

		It("rolls back once when bootstrap receives an out-of-range student", func() {
			portal.Respond(http.MethodGet, "student/diary/init", http.StatusOK,
				`{"students": [{"studentId": 1}, {"studentId": 2}, {"studentId": 3}], "currentStudentId": 5}`)

			in, retry, err := netschool.NewInactive(creds, anon).Login(ctx)
			Expect(in).To(BeNil())
			Expect(err).To(HaveErrorCode(netschool.CodeInvalidResponse))
			Expect(retry).NotTo(BeNil())
			Expect(retry.Credentials()).To(Equal(creds))
			Expect(portal.Count(http.MethodPost, "auth/logout")).To(Equal(1))
		})

		It("keeps the credentials across repeated failures", func() {
			portal.Respond(http.MethodPost, "auth/getdata", http.StatusInternalServerError, "")

			session := netschool.NewInactive(creds, anon)
			for range 3 {
				_, retry, err := session.Login(ctx)
				Expect(err).To(HaveErrorCode(netschool.CodeRequestFailed))
				session = retry
			}
			Expect(session.Credentials()).To(Equal(creds))

			portal.Respond(http.MethodPost, "auth/getdata", http.StatusOK,
				`{"lt": "1", "ver": "2", "salt": "abc"}`)
			_, _, err := session.Login(ctx)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("logout", func() {
		var in *netschool.LoggedIn

		BeforeEach(func() {
			var err error
			in, _, err = netschool.NewInactive(creds, anon).Login(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("round trips back to the original credentials", func() {
			out, _, err := in.Logout(ctx)
			Expect(err).NotTo(HaveOccurred())

			inactive, err := out.Deactivate()
			Expect(err).NotTo(HaveOccurred())
			Expect(inactive.Credentials()).To(Equal(creds))

			again, _, err := inactive.Login(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Metadata().StudentID()).To(Equal(in.Metadata().StudentID()))
		})

		It("treats an expired session as logged out", func() {
			portal.Respond(http.MethodPost, "auth/logout", http.StatusUnauthorized, "")

			out, retry, err := in.Logout(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(retry).To(BeNil())
			Expect(out.Metadata()).To(Equal(in.Metadata()))
		})

		It("hands the session back when the portal fails", func() {
			portal.Respond(http.MethodPost, "auth/logout", http.StatusInternalServerError, "")

			out, retry, err := in.Logout(ctx)
			Expect(out).To(BeNil())
			Expect(err).To(HaveErrorCode(netschool.CodeRequestFailed))
			Expect(retry.Metadata()).To(Equal(in.Metadata()))
		})

		It("forces a local logout when asked to", func() {
			portal.Respond(http.MethodPost, "auth/logout", http.StatusInternalServerError, "")

			out, err := in.LogoutAnyway(ctx)
			Expect(err).To(HaveErrorCode(netschool.CodeRequestFailed))
			Expect(out).NotTo(BeNil())
			Expect(out.Credentials()).To(Equal(creds))
		})

		It("rejects a consumed session", func() {
			_, _, err := in.Logout(ctx)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = in.Logout(ctx)
			Expect(err).To(MatchError(netschool.ErrConsumed))
		})
	})
})
