package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth means the token grant was rejected or returned no token.
	ErrAuth = errors.New("remote config authentication failed")

	// ErrUpdateRejected means the config service answered HTTP 200 but
	// reported a non-zero result code in the body, typically because the
	// submitted version no longer matches the server's.
	ErrUpdateRejected = errors.New("remote config update rejected")

	// ErrMissingRoleArn means temporary credential issuance was requested
	// but no RAM role is configured.
	ErrMissingRoleArn = errors.New("sts role arn is not configured")
)

// UpstreamError carries the HTTP status and response body of a failed
// upstream call so handlers can log the upstream's own diagnostics.
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

func newUpstreamError(op string, statusCode int, body []byte) *UpstreamError {
	const bodyLimit = 2048
	b := string(body)
	if len(b) > bodyLimit {
		b = b[:bodyLimit]
	}
	return &UpstreamError{Op: op, StatusCode: statusCode, Body: b}
}
