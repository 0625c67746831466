// Package gateway is the single HTTP channel from the back-office client to
// its REST backend.
//
// A Gateway is bound to one base address for its whole life and exposes
// Get/Post/Put/Delete relative to it. Credential attachment is not hidden in
// the call path: it is the Credentials RoundTripper decorator, installed with
// WithCredentials, which reads the token from a TokenSource on every request.
// A login or logout between two calls is therefore visible to the next call.
//
// # Error Handling
//
// The gateway performs no retries. Non-2xx responses are returned as
// *StatusError and match one of the sentinels with errors.Is:
// ErrUnauthorized (401/403), ErrNotFound, ErrBadRequest, ErrUnavailable
// (502/503/504). Failing to reach the backend also matches ErrUnavailable,
// so callers can tell "the server said no" from "the server is not there".
package gateway
