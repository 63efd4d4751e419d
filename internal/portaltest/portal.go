// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 NetSchool Go Contributors

// Package portaltest provides an in-process fake NetSchool portal for tests.
package portaltest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Default fixture values served by a new Portal.
const (
	Salt          = "abc"
	LT            = "777"
	Ver           = "4242"
	AccessToken   = "token-1"
	SessionCookie = "ESRNSec"
)

// DefaultSchools is the directory served by a new Portal. The last entry's
// ids exceed 64 bits.
const DefaultSchools = `[
	{"countryId": 2, "stateId": 1, "municipalityDistrictId": 34, "cityId": 5, "id": 101, "name": "School 1", "educationalInstitutionType": 2},
	{"countryId": 2, "stateId": 1, "municipalityDistrictId": 34, "cityId": 5, "id": 102, "name": "Lyceum 42"},
	{"countryId": 2, "stateId": 1, "municipalityDistrictId": 34, "cityId": 5, "id": 103, "name": "Lyceum 7", "educationalInstitutionType": 3},
	{"countryId": 2, "stateId": 18446744073709551617, "municipalityDistrictId": 34, "cityId": 5, "id": 340282366920938463463374607431768211457, "name": "Kindergarten 3", "educationalInstitutionType": 1}
]`

// Call records one request the portal received.
type Call struct {
	Method string
	Path   string         // relative to webapi/
	Token  string         // value of the "at" header
	Cookie bool           // whether the session cookie was sent
	Body   map[string]any // JSON body, numbers as json.Number
}

type reply struct {
	status int
	body   string
}

// Portal is a fake portal. The zero value is not usable; call New.
type Portal struct {
	server *httptest.Server

	mu      sync.Mutex
	calls   []Call
	replies map[string]reply
}

// New starts a portal that answers every endpoint with a successful,
// well-formed response. Close it when done.
func New() *Portal {
	p := &Portal{
		replies: map[string]reply{
			"GET logindata":              {http.StatusOK, `{}`},
			"POST auth/getdata":          {http.StatusOK, `{"lt": "` + LT + `", "ver": "` + Ver + `", "salt": "` + Salt + `"}`},
			"POST login":                 {http.StatusOK, `{"at": "` + AccessToken + `"}`},
			"POST auth/logout":           {http.StatusOK, ``},
			"GET addresses/schools":      {http.StatusOK, DefaultSchools},
			"GET student/diary/init":     {http.StatusOK, `{"students": [{"studentId": 9001}, {"studentId": 9002}], "currentStudentId": 1}`},
			"GET years/current":          {http.StatusOK, `{"id": 2026}`},
			"GET grade/assignment/types": {http.StatusOK, `[{"id": 1, "name": "Homework"}, {"id": 2, "name": "Test"}]`},
		},
	}
	p.server = httptest.NewServer(http.HandlerFunc(p.serve))
	return p
}

// URL returns the portal site URL.
func (p *Portal) URL() string {
	return p.server.URL
}

// Close shuts the portal down.
func (p *Portal) Close() {
	p.server.Close()
}

// Respond overrides the reply for a method and API path, e.g.
// Respond("POST", "login", 409, "").
func (p *Portal) Respond(method, path string, status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replies[method+" "+path] = reply{status: status, body: body}
}

// Calls returns every request received so far, in order.
func (p *Portal) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// Paths returns "METHOD path" for every request received so far.
func (p *Portal) Paths() []string {
	calls := p.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method + " " + c.Path
	}
	return out
}

// Count returns how many times method and path were requested.
func (p *Portal) Count(method, path string) int {
	n := 0
	for _, c := range p.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// LastLoginForm returns the decoded body of the most recent login request.
func (p *Portal) LastLoginForm() map[string]any {
	calls := p.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == http.MethodPost && calls[i].Path == "login" {
			return calls[i].Body
		}
	}
	return nil
}

func (p *Portal) serve(w http.ResponseWriter, r *http.Request) {
	path, ok := strings.CutPrefix(r.URL.Path, "/webapi/")
	if !ok {
		http.NotFound(w, r)
		return
	}

	call := Call{
		Method: r.Method,
		Path:   path,
		Token:  r.Header.Get("at"),
	}
	if _, err := r.Cookie(SessionCookie); err == nil {
		call.Cookie = true
	}
	if r.Header.Get("Content-Type") == "application/json" {
		var body map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err == nil {
			call.Body = body
		}
	}

	p.mu.Lock()
	p.calls = append(p.calls, call)
	rep, found := p.replies[r.Method+" "+path]
	p.mu.Unlock()

	if !found {
		http.NotFound(w, r)
		return
	}
	if path == "logindata" {
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "s1", Path: "/"})
	}
	if rep.body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(rep.status)
	_, _ = w.Write([]byte(rep.body))
}
