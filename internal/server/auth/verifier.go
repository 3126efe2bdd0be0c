package auth

import "github.com/dkowalski/quoteshelf/internal/common"

// Reason explains why a verification did not authenticate.
type Reason string

const (
	// ReasonMissing: no credential was presented. Read endpoints use this
	// to fall back to the guest view instead of failing.
	ReasonMissing Reason = "missing"
	// ReasonInvalid: a credential was presented but failed decoding or is
	// expired. The distinction is never surfaced to the caller.
	ReasonInvalid Reason = "invalid"
)

// Result is the outcome of verifying a presented credential.
// UserID is only meaningful when Authenticated is true.
type Result struct {
	Authenticated bool
	UserID        int64
	Reason        Reason
}

// Verifier validates presented credentials against the server secret.
// Verification is local and synchronous; no storage round-trip.
type Verifier struct {
	secretKey []byte
}

func NewVerifier(secretKey []byte) *Verifier {
	return &Verifier{secretKey: secretKey}
}

// Verify inspects a raw token (possibly empty) and reports whether the
// request is authenticated. The absence of a token is an ordinary outcome,
// not an error.
func (v *Verifier) Verify(raw string) Result {
	if raw == "" {
		return Result{Authenticated: false, Reason: ReasonMissing}
	}

	claims, err := Decode(raw, v.secretKey)
	if err != nil {
		return Result{Authenticated: false, Reason: ReasonInvalid}
	}

	return Result{Authenticated: true, UserID: claims.UserID}
}

// RequireAuth is the strict wrapper used by mutation endpoints: it returns
// the subject id or common.ErrUnauthorized.
func (v *Verifier) RequireAuth(raw string) (int64, error) {
	result := v.Verify(raw)
	if !result.Authenticated {
		return 0, common.ErrUnauthorized
	}
	return result.UserID, nil
}

// Viewer converts a verification result into the optional viewer id used by
// the access policy and the visibility filter: nil for guests.
func (r Result) Viewer() *int64 {
	if !r.Authenticated {
		return nil
	}
	id := r.UserID
	return &id
}
