// Package auth implements the credential subsystem: a signed, time-bounded
// token codec, a verifier that turns a presented token into an
// authentication result, and the ownership-based access policy.
//
// Decoding is a pure, local check: it never consults the persistence layer.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkowalski/quoteshelf/internal/common"
)

// Decode failure kinds. Each wraps common.ErrInvalidToken so callers can log
// the specific kind while the HTTP boundary collapses all of them to 401.
var (
	// ErrTokenMalformed: wrong shape or segment count.
	ErrTokenMalformed = fmt.Errorf("%w: malformed", common.ErrInvalidToken)
	// ErrTokenSignature: signature does not match the server secret.
	ErrTokenSignature = fmt.Errorf("%w: bad signature", common.ErrInvalidToken)
	// ErrTokenExpired: structurally valid but past its embedded expiry.
	ErrTokenExpired = fmt.Errorf("%w: expired", common.ErrInvalidToken)
	// ErrTokenPayload: syntactically invalid claims payload.
	ErrTokenPayload = fmt.Errorf("%w: bad payload", common.ErrInvalidToken)
)

// Claims carries the subject identity inside a token. ExpiresAt is always
// IssuedAt plus the fixed lifetime and is never extended.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// Issue signs a credential for the given subject, valid for lifetime from now.
func Issue(userID int64, email string, secretKey []byte, lifetime time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Decode validates the raw token against the secret and returns its claims.
// Failures are reported as one of the package sentinels above.
func Decode(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, classifyDecodeError(err)
	}

	if !token.Valid {
		return nil, ErrTokenPayload
	}

	return claims, nil
}

// PeekClaims decodes the claims payload without verifying the signature.
// The client uses it to schedule its own expiry countdown from the embedded
// exp; it must never be used to authenticate anything.
func PeekClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, classifyDecodeError(err)
	}
	return claims, nil
}

func classifyDecodeError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenPayload
	}
}
