// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

// Package webclient is the HTTP transport used to talk to a NetSchool portal.
//
// A Client owns one cookie jar. Requests are issued through one of two
// handle types sharing that client: Anonymous, which sends no credentials,
// and Authenticated, which adds the portal access token to every request.
// Converting between them never touches the cookie jar.
package webclient

import (
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/samber/oops"
	"golang.org/x/net/publicsuffix"
)

// Default transport settings.
const (
	DefaultUserAgent = "NetSchoolAPI/5.0.3"
	DefaultTimeout   = 30 * time.Second

	// AccessTokenHeader carries the access token on authenticated requests.
	AccessTokenHeader = "at"
)

// Config configures a Client.
type Config struct {
	BaseURL   BaseURL
	UserAgent string        // DefaultUserAgent if empty
	Timeout   time.Duration // per request; DefaultTimeout if zero
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Client is a cookie-keeping HTTP client bound to one portal.
type Client struct {
	http      *http.Client
	base      BaseURL
	userAgent string
	logger    *slog.Logger
}

// New creates a Client with an empty cookie jar.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL.IsZero() {
		return nil, oops.Code("WEBCLIENT_INVALID_CONFIG").Errorf("base URL is required")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, oops.Code("WEBCLIENT_INVALID_CONFIG").Wrap(err)
	}

	return &Client{
		http: &http.Client{
			Transport: cfg.Transport,
			Jar:       jar,
			Timeout:   cfg.Timeout,
		},
		base:      cfg.BaseURL,
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger.With("component", "webclient"),
	}, nil
}

// Base returns the portal site URL.
func (c *Client) Base() BaseURL {
	return c.base
}

// Cookies returns the cookies the jar would send to the API root.
func (c *Client) Cookies() []*http.Cookie {
	return c.http.Jar.Cookies(c.base.APIRoute())
}
