// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

//go:build integration

package integration

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/netschool-go/netschool/internal/config"
	"github.com/netschool-go/netschool/internal/logging"
	"github.com/netschool-go/netschool/internal/netschool"
	"github.com/netschool-go/netschool/internal/portaltest"
	"github.com/netschool-go/netschool/internal/webclient"
)

var _ = Describe("Configured login", func() {
	var (
		ctx    context.Context
		portal *portaltest.Portal
		cfg    *config.Config
		logs   *bytes.Buffer
	)

	BeforeEach(func() {
		ctx = context.Background()
		portal = portaltest.New()
		DeferCleanup(portal.Close)

		GinkgoT().Setenv("XDG_CONFIG_HOME", GinkgoT().TempDir())
		GinkgoT().Setenv(config.PasswordEnv, "s3cret-pw")

		data, err := config.Template(portal.URL())
		Expect(err).NotTo(HaveOccurred())
		data = append(data, []byte("account:\n  username: student\n  school: Lyceum 42\n")...)

		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, data, 0o600)).To(Succeed())

		cfg, err = config.Load(path, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.RequireAccount()).To(Succeed())

		logs = &bytes.Buffer{}
	})

	newInactive := func() *netschool.Inactive {
		level, err := logging.ParseLevel("debug")
		Expect(err).NotTo(HaveOccurred())
		logger := logging.Setup(logging.Options{
			Service: "netschool",
			Version: "test",
			Format:  logging.FormatJSON,
			Level:   level,
			Writer:  logs,
		})

		client, err := webclient.New(webclient.Config{
			BaseURL:   cfg.BaseURL(),
			UserAgent: cfg.UserAgent(),
			Timeout:   cfg.Portal.Timeout.Std(),
			Logger:    logger,
		})
		Expect(err).NotTo(HaveOccurred())
		anon := webclient.NewAnonymous(client)

		school, err := netschool.NewDirectory(anon, logger).FindByName(ctx, cfg.Account.School)
		Expect(err).NotTo(HaveOccurred())

		creds := netschool.NewCredentials(cfg.Account.Username, cfg.Account.Password, school)
		return netschool.NewInactive(creds, anon,
			netschool.WithLogger(logger),
			netschool.WithRollbackTimeout(cfg.Portal.RollbackTimeout.Std()),
		)
	}

	It("logs in and out with settings from the file and the environment", func() {
		loggedIn, _, err := newInactive().Login(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(loggedIn.Metadata().StudentID().String()).To(Equal("9002"))
		Expect(portal.LastLoginForm()).To(HaveKeyWithValue("un", "student"))

		loggedOut, _, err := loggedIn.Logout(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(loggedOut.SessionID()).To(Equal(loggedIn.SessionID()))
		Expect(portal.Count(http.MethodPost, "auth/logout")).To(Equal(1))
	})

	It("logs session transitions without the password", func() {
		loggedIn, _, err := newInactive().Login(ctx)
		Expect(err).NotTo(HaveOccurred())
		_, err = loggedIn.LogoutAnyway(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(logs.String()).To(ContainSubstring(`"session_id":"` + loggedIn.SessionID() + `"`))
		Expect(logs.String()).To(ContainSubstring(`"service":"netschool"`))
		Expect(logs.String()).NotTo(ContainSubstring("s3cret-pw"))
	})

	It("exposes transition metrics on a registry", func() {
		reg := prometheus.NewRegistry()
		netschool.RegisterMetrics(reg)

		before, err := testutil.GatherAndCount(reg, "netschool_login_total")
		Expect(err).NotTo(HaveOccurred())

		loggedIn, _, err := newInactive().Login(ctx)
		Expect(err).NotTo(HaveOccurred())
		_, err = loggedIn.LogoutAnyway(ctx)
		Expect(err).NotTo(HaveOccurred())

		after, err := testutil.GatherAndCount(reg, "netschool_login_total", "netschool_logout_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(after).To(BeNumerically(">=", before+1))
	})
})
