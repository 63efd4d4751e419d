// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import "github.com/prometheus/client_golang/prometheus"

var (
	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netschool_login_total",
			Help: "Login attempts by result.",
		},
		[]string{"result"},
	)

	logoutAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netschool_logout_total",
			Help: "Logout attempts by result.",
		},
		[]string{"result"},
	)

	transitionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netschool_transition_duration_seconds",
			Help:    "Duration of session transitions, including every portal round trip.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// RegisterMetrics registers session metrics with reg. Registering twice
// with the same registerer panics.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(loginAttempts, logoutAttempts, transitionDuration)
}
