package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)

	token, exp, err := tm.Issue("donor@x.com", "Donor")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	id, err := tm.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "donor@x.com", id.Email)
	assert.Equal(t, "Donor", id.Name)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, _, err := tm.Issue("donor@x.com", "Donor")
	require.NoError(t, err)

	_, err = tm.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Minute)
	verifier := NewTokenManager("secret-b", time.Minute)

	token, _, err := issuer.Issue("donor@x.com", "Donor")
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestVerifyRejectsEmptyEmail(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)

	token, _, err := tm.Issue("", "Nameless")
	require.NoError(t, err)

	_, err = tm.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
