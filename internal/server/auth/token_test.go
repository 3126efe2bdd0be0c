package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dkowalski/quoteshelf/internal/common"
)

func TestIssueAndDecode_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := Issue(123, "a@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := Decode(tok, secret)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if claims.UserID != 123 {
		t.Fatalf("UserID mismatch: got %d want %d", claims.UserID, 123)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("Email mismatch: got %q want %q", claims.Email, "a@x.com")
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != time.Hour {
		t.Fatalf("lifetime mismatch: got %v want %v", lifetime, time.Hour)
	}
}

func TestDecode_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := Issue(1, "u1@x.com", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = Decode(tok, secret)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected error to match common.ErrInvalidToken, got %v", err)
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Issue(2, "u2@x.com", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = Decode(tok, []byte("wrong-secret"))
	if !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestDecode_TamperedSignature(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := Issue(3, "u3@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// flip the last signature character to another base64url character
	last := tok[len(tok)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := tok[:len(tok)-1] + string(flipped)

	if _, err := Decode(tampered, secret); err == nil {
		t.Fatalf("expected error for tampered signature, got nil")
	}
}

func TestDecode_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := Decode("not.a.jwt", []byte("k"))
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected error to match common.ErrInvalidToken, got %v", err)
	}

	_, err = Decode("twosegments.only", []byte("k"))
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestPeekClaims_NoVerification(t *testing.T) {
	t.Parallel()

	// PeekClaims must read the payload even when the signature cannot be
	// checked; the client only needs the embedded expiry.
	tok, err := Issue(7, "peek@x.com", []byte("some-secret"), time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := PeekClaims(tok)
	if err != nil {
		t.Fatalf("PeekClaims error: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "peek@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("expected embedded expiry")
	}
}
