package httpclient

import (
	"net/http"
	"strings"
)

const bearerScheme = "Bearer "

// BearerTransport attaches a static bearer token to every outgoing request
// before delegating to Base. When Host is set, only requests addressed to
// that host (host[:port], case-insensitive) carry the token, so a redirect
// to another origin goes out without it.
type BearerTransport struct {
	Base  http.RoundTripper
	Token string
	Host  string
}

// NewBearerTransport wraps base (http.DefaultTransport when nil).
func NewBearerTransport(base http.RoundTripper, token string) *BearerTransport {
	return &BearerTransport{Base: base, Token: token}
}

// NewBearerTransportForHost is NewBearerTransport restricted to host.
func NewBearerTransportForHost(base http.RoundTripper, token, host string) *BearerTransport {
	return &BearerTransport{Base: base, Token: token, Host: host}
}

// RoundTrip implements http.RoundTripper. The caller's request is cloned so
// its header map is never mutated.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	value := AuthorizationValue(t.Token)
	if value == "" || !t.allows(req) {
		return base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", value)
	return base.RoundTrip(clone)
}

func (t *BearerTransport) allows(req *http.Request) bool {
	if t.Host == "" {
		return true
	}
	if req.URL == nil {
		return false
	}
	return strings.EqualFold(req.URL.Host, t.Host)
}

// AuthorizationValue returns the Authorization header value for token. A
// token that already carries the Bearer scheme is returned unchanged.
func AuthorizationValue(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if len(token) >= len(bearerScheme) && strings.EqualFold(token[:len(bearerScheme)], bearerScheme) {
		return token
	}
	return bearerScheme + token
}
