package auth

import (
	"fmt"
	"net/http"
)

// Transport injects the Atlassian personal access token into outbound
// requests as a bearer credential.
type Transport struct {
	base  http.RoundTripper
	token string
}

// NewTransport creates an auth transport wrapping the provided RoundTripper.
func NewTransport(base http.RoundTripper, token string) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, token: token}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" {
		return nil, fmt.Errorf("auth: token required")
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	clone.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(clone)
}
