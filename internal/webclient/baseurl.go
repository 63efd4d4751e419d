// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

package webclient

import (
	"net/url"
	"strings"

	"github.com/samber/oops"
)

// apiRoute is the portal's JSON API root, relative to the site URL.
const apiRoute = "webapi/"

// BaseURL is a portal site URL whose path always ends with a slash, so that
// relative references resolve beneath it rather than replacing its last
// segment.
type BaseURL struct {
	site *url.URL
}

// ParseBaseURL parses an http(s) site URL. A missing trailing slash is
// appended; query and fragment are dropped.
func ParseBaseURL(raw string) (BaseURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return BaseURL{}, oops.With("url", raw).Wrap(err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return BaseURL{}, oops.With("url", raw).Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return BaseURL{}, oops.With("url", raw).Errorf("missing host")
	}

	u.RawQuery = ""
	u.Fragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}
	return BaseURL{site: u}, nil
}

// MustParseBaseURL is like ParseBaseURL but panics on error.
func MustParseBaseURL(raw string) BaseURL {
	b, err := ParseBaseURL(raw)
	if err != nil {
		panic(err)
	}
	return b
}

// IsZero reports whether b was never parsed.
func (b BaseURL) IsZero() bool {
	return b.site == nil
}

// String returns the site URL, trailing slash included.
func (b BaseURL) String() string {
	if b.site == nil {
		return ""
	}
	return b.site.String()
}

// APIRoute returns the API root beneath the site URL.
func (b BaseURL) APIRoute() *url.URL {
	return b.site.ResolveReference(&url.URL{Path: apiRoute})
}

// Resolve resolves an API path such as "auth/getdata" against the API root.
// Absolute URLs and rooted paths are rejected because they would escape it.
func (b BaseURL) Resolve(path string) (*url.URL, error) {
	if b.site == nil {
		return nil, oops.Errorf("base URL is not set")
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	if ref.IsAbs() || ref.Host != "" || strings.HasPrefix(ref.Path, "/") {
		return nil, oops.With("path", path).Errorf("path must be relative to the API root")
	}
	return b.APIRoute().ResolveReference(ref), nil
}
