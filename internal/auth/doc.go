// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

// Package auth provides the credential primitives for NetSchool portal login.
//
// # Password Digest
//
// The portal never receives the plaintext password. Before login it hands
// out a salt, and the client answers with
//
//	full    = md5_hex(salt + md5_hex(windows1251(salt)))
//	trimmed = full[:len(password)]
//
// Both forms are submitted; which one the server checks depends on the portal
// version. The code page conversion is strict: text that cannot be encoded in
// windows-1251 is reported as ErrInvalidCharacters, never silently replaced.
//
// PasswordDigester abstracts the computation so protocol code can be tested
// with a substitute; LegacyDigester is the production implementation.
package auth
