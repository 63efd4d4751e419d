// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

// Package netschool manages the login lifecycle of a NetSchool portal
// account.
//
// A session moves through three states, each its own type:
//
//	Inactive --Login--> LoggedIn --Logout--> LoggedOut --Deactivate--> Inactive
//
// Every transition consumes the value it is called on. A consumed value
// answers every further call with ErrConsumed, so exactly one live value
// exists per logical session. A failed transition hands back a fresh value
// of the previous state carrying the same credentials or session:
//
//	in, retry, err := inactive.Login(ctx)
//	if err != nil {
//		// retry holds the same credentials
//	}
//
// Errors carry oops codes (CodeRequestFailed, CodeInvalidCredentials and so
// on); use errutil.Code to classify them.
package netschool
