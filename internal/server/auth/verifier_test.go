package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkowalski/quoteshelf/internal/common"
)

func TestVerifier_Missing(t *testing.T) {
	t.Parallel()

	v := NewVerifier([]byte("s"))

	res := v.Verify("")
	assert.False(t, res.Authenticated)
	assert.Equal(t, ReasonMissing, res.Reason)
	assert.Nil(t, res.Viewer())
}

func TestVerifier_Valid(t *testing.T) {
	t.Parallel()

	secret := []byte("s")
	tok, err := Issue(42, "v@x.com", secret, time.Hour)
	require.NoError(t, err)

	res := NewVerifier(secret).Verify(tok)
	assert.True(t, res.Authenticated)
	assert.Equal(t, int64(42), res.UserID)
	require.NotNil(t, res.Viewer())
	assert.Equal(t, int64(42), *res.Viewer())
}

func TestVerifier_Invalid(t *testing.T) {
	t.Parallel()

	v := NewVerifier([]byte("right"))

	tok, err := Issue(1, "i@x.com", []byte("wrong"), time.Hour)
	require.NoError(t, err)

	res := v.Verify(tok)
	assert.False(t, res.Authenticated)
	assert.Equal(t, ReasonInvalid, res.Reason)

	res = v.Verify("garbage")
	assert.False(t, res.Authenticated)
	assert.Equal(t, ReasonInvalid, res.Reason)
}

func TestVerifier_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("s")
	tok, err := Issue(5, "e@x.com", secret, -2*time.Second)
	require.NoError(t, err)

	res := NewVerifier(secret).Verify(tok)
	assert.False(t, res.Authenticated)
	assert.Equal(t, ReasonInvalid, res.Reason)
}

func TestVerifier_RequireAuth(t *testing.T) {
	t.Parallel()

	secret := []byte("s")
	v := NewVerifier(secret)

	tok, err := Issue(9, "r@x.com", secret, time.Hour)
	require.NoError(t, err)

	id, err := v.RequireAuth(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	_, err = v.RequireAuth("")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	_, err = v.RequireAuth("bad token")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}
