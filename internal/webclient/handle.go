// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package webclient

import (
	"net/http"

	"github.com/samber/oops"
	"golang.org/x/net/http/httpguts"
)

// Anonymous issues requests without an access token.
type Anonymous struct {
	client *Client
}

// NewAnonymous returns an anonymous handle over c.
func NewAnonymous(c *Client) Anonymous {
	return Anonymous{client: c}
}

// Client returns the underlying client.
func (a Anonymous) Client() *Client {
	return a.client
}

// Get starts a GET request for an API path.
func (a Anonymous) Get(path string) *Request {
	return newRequest(a.client, http.MethodGet, path, "")
}

// Post starts a POST request for an API path.
func (a Anonymous) Post(path string) *Request {
	return newRequest(a.client, http.MethodPost, path, "")
}

// Authenticate returns an authenticated handle over the same client. The
// token must be non-empty and usable as an HTTP header value.
func (a Anonymous) Authenticate(token string) (Authenticated, error) {
	if token == "" {
		return Authenticated{}, oops.Code("WEBCLIENT_INVALID_TOKEN").Errorf("access token is empty")
	}
	if !httpguts.ValidHeaderFieldValue(token) {
		return Authenticated{}, oops.Code("WEBCLIENT_INVALID_TOKEN").Errorf("access token is not a valid header value")
	}
	return Authenticated{client: a.client, token: token}, nil
}

// Authenticated issues requests carrying the portal access token.
type Authenticated struct {
	client *Client
	token  string
}

// Client returns the underlying client.
func (a Authenticated) Client() *Client {
	return a.client
}

// Get starts an authenticated GET request for an API path.
func (a Authenticated) Get(path string) *Request {
	return newRequest(a.client, http.MethodGet, path, a.token)
}

// Post starts an authenticated POST request for an API path.
func (a Authenticated) Post(path string) *Request {
	return newRequest(a.client, http.MethodPost, path, a.token)
}

// Deauthenticate drops the access token, keeping the client and its cookies.
func (a Authenticated) Deauthenticate() Anonymous {
	return Anonymous{client: a.client}
}
