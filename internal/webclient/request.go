// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/oops"
)

// maxBodyBytes bounds how much of a response body is read into memory.
const maxBodyBytes = 8 << 20

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusCode extracts the HTTP status from an error returned by Send.
// The boolean is false for transport failures that produced no response.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// Request is a pending portal request. Build it with JSON and Query, then
// call Send.
type Request struct {
	client *Client
	method string
	path   string
	token  string
	query  url.Values
	body   any
	json   bool
	guard  func() error
}

func newRequest(c *Client, method, path, token string) *Request {
	return &Request{client: c, method: method, path: path, token: token}
}

// JSON sets a body that is encoded as JSON when the request is sent.
func (r *Request) JSON(body any) *Request {
	r.body = body
	r.json = true
	return r
}

// Query sets the URL query parameters.
func (r *Request) Query(values url.Values) *Request {
	r.query = values
	return r
}

// Precondition sets a check that Send runs before doing any work. A
// non-nil error from fn is returned from Send unchanged.
func (r *Request) Precondition(fn func() error) *Request {
	r.guard = fn
	return r
}

// Send performs the request. Transport failures and non-2xx statuses are
// returned as errors; for the latter StatusCode reports the status.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	if r.client == nil {
		return nil, oops.With("path", r.path).Errorf("request has no client")
	}
	if r.guard != nil {
		if err := r.guard(); err != nil {
			return nil, err
		}
	}
	errb := oops.With("method", r.method).With("path", r.path)

	target, err := r.client.base.Resolve(r.path)
	if err != nil {
		return nil, errb.Wrap(err)
	}
	if len(r.query) > 0 {
		target.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.json {
		encoded, marshalErr := json.Marshal(r.body)
		if marshalErr != nil {
			return nil, errb.Wrap(marshalErr)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target.String(), body)
	if err != nil {
		return nil, errb.Wrap(err)
	}
	req.Header.Set("User-Agent", r.client.userAgent)
	req.Header.Set("Referer", r.client.base.String())
	if r.json {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set(AccessTokenHeader, r.token)
	}

	start := time.Now()
	resp, err := r.client.http.Do(req)
	if err != nil {
		r.client.logger.DebugContext(ctx, "portal request failed",
			"method", r.method, "path", r.path, "error", err)
		return nil, errb.Wrap(err)
	}
	defer func() { _ = resp.Body.Close() }()

	r.client.logger.DebugContext(ctx, "portal request",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, errb.With("status", resp.StatusCode).Wrap(&StatusError{
			Method:     r.method,
			Path:       r.path,
			StatusCode: resp.StatusCode,
		})
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errb.Wrap(err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, body: data}, nil
}

// Response is a fully read 2xx response.
type Response struct {
	StatusCode int
	Header     http.Header
	body       []byte
}

// Body returns the raw response body.
func (r *Response) Body() []byte {
	return r.body
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return oops.With("body_bytes", len(r.body)).Wrap(err)
	}
	return nil
}
