package gateway

import "net/http"

// AuthorizationScheme is the prefix the backend expects in the
// Authorization header.
const AuthorizationScheme = "Token"

// TokenSource yields the current credential. An empty string means
// "not logged in". It is consulted on every request, never cached.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// credentialTransport decorates a RoundTripper with the Authorization header.
type credentialTransport struct {
	tokens TokenSource
	next   http.RoundTripper
}

// Credentials wraps next so that every outbound request carries
// "Authorization: Token <t>" when tokens yields a non-empty token, and no
// Authorization header at all otherwise. The caller's request is cloned,
// never modified.
func Credentials(tokens TokenSource, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &credentialTransport{tokens: tokens, next: next}
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Del("Authorization")
	if tok := t.tokens.Token(); tok != "" {
		r.Header.Set("Authorization", AuthorizationScheme+" "+tok)
	}
	return t.next.RoundTrip(r)
}
