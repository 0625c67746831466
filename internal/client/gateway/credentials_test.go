package gateway

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestCredentials_SetsHeaderOnClone(t *testing.T) {
	var seen *http.Request
	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	rt := Credentials(TokenFunc(func() string { return "abc123" }), next)

	req, err := http.NewRequest(http.MethodGet, "http://h/api/profile/", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, "Token abc123", seen.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Authorization"), "original request untouched")
}

func TestCredentials_NoTokenStripsStaleHeader(t *testing.T) {
	var seen *http.Request
	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	rt := Credentials(TokenFunc(func() string { return "" }), next)

	req, err := http.NewRequest(http.MethodGet, "http://h/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Token stale")

	_, err = rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Empty(t, seen.Header.Get("Authorization"))
}

func TestCredentials_NilNextUsesDefaultTransport(t *testing.T) {
	rt := Credentials(TokenFunc(func() string { return "" }), nil).(*credentialTransport)
	assert.Equal(t, http.DefaultTransport, rt.next)
}
