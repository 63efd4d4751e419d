// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package netschool

import (
	"errors"

	"github.com/samber/oops"

	"github.com/netschool-go/netschool/pkg/errutil"
)

// Error codes carried by every error this package returns.
const (
	// CodeRequestFailed: transport failure or an unclassified non-2xx status.
	// Retrying the same operation may succeed.
	CodeRequestFailed = "NETSCHOOL_REQUEST_FAILED"
	// CodeInvalidResponse: a 2xx response whose body breaks the expected contract.
	CodeInvalidResponse = "NETSCHOOL_INVALID_RESPONSE"
	// CodeInvalidPasswordCharacters: the password or salt cannot be encoded in windows-1251.
	CodeInvalidPasswordCharacters = "NETSCHOOL_INVALID_PASSWORD_CHARACTERS"
	// CodeInvalidCredentials: the portal rejected the username/password (HTTP 409).
	CodeInvalidCredentials = "NETSCHOOL_INVALID_CREDENTIALS"
	// CodeSchoolNotFound: no directory entry has the requested name.
	CodeSchoolNotFound = "NETSCHOOL_SCHOOL_NOT_FOUND"
	// CodeInvalidPattern: a school name pattern failed to compile.
	CodeInvalidPattern = "NETSCHOOL_INVALID_PATTERN"
	// CodeSessionConsumed: a session value was used after a transition consumed it.
	CodeSessionConsumed = "NETSCHOOL_SESSION_CONSUMED"
)

// ErrConsumed is returned by any operation on a session value that an
// earlier transition has already consumed.
var ErrConsumed = errors.New("session value was consumed by an earlier transition")

func consumedError() error {
	return oops.Code(CodeSessionConsumed).Wrap(ErrConsumed)
}

// causeError carries a lower layer's message and errors.Is identity while
// hiding its oops code, so the code assigned here is the one callers see.
type causeError struct {
	err error
}

func (e causeError) Error() string { return e.err.Error() }

func (e causeError) Is(target error) bool { return errors.Is(e.err, target) }

func classify(code string, err error, kv ...any) error {
	if errutil.Code(err) != "" {
		err = causeError{err: err}
	}
	return oops.Code(code).With(kv...).Wrap(err)
}

func requestFailed(err error, path string) error {
	return classify(CodeRequestFailed, err, "path", path)
}

func invalidResponse(err error, path string) error {
	return classify(CodeInvalidResponse, err, "path", path)
}

// resultLabel maps an error to the metrics result label.
func resultLabel(err error) string {
	switch errutil.Code(err) {
	case "":
		if err == nil {
			return "success"
		}
		return "error"
	case CodeRequestFailed:
		return "request_failed"
	case CodeInvalidResponse:
		return "invalid_response"
	case CodeInvalidPasswordCharacters:
		return "invalid_password_characters"
	case CodeInvalidCredentials:
		return "invalid_credentials"
	case CodeSessionConsumed:
		return "consumed"
	default:
		return "error"
	}
}
