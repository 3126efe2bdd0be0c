// Package common defines the sentinel errors shared across the client and
// server layers of Quoteshelf. Callers should use errors.Is to match these
// values; the HTTP boundary translates them to status codes in one place.
package common

import "errors"

var (
	// ErrValidation marks missing or malformed request fields.
	// User-correctable, surfaced as 400 with a field-level message.
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized covers every authentication failure: missing token,
	// bad signature, expired token, unknown email, wrong password.
	// All of them present identically to the caller as 401 "invalid
	// credentials" so the response never reveals which check failed.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrForbidden means the caller is authenticated but does not own
	// the resource it tries to view or mutate. Surfaced as 403.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks duplicate registration emails and duplicate
	// favorite pairs. Surfaced as 409; favorite callers may treat it as
	// success-if-already-true.
	ErrConflict = errors.New("already exists")

	// ErrNotFound is returned by repositories for missing rows. Surfaced as 404.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited marks a registration attempt over the per-window
	// threshold. Surfaced as 429 with no retry-after precision.
	ErrRateLimited = errors.New("too many attempts")

	// ErrStorage marks infrastructure failures (database, redis).
	// Logged with internal detail, surfaced as a generic 500.
	ErrStorage = errors.New("storage error")

	// ErrInvalidToken is the umbrella for token decode failures. The auth
	// package wraps its specific decode errors so they all match it.
	ErrInvalidToken = errors.New("invalid token")
)
