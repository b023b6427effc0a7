package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginPlainPassword(t *testing.T) {
	s := NewAuthService(AuthConfig{Password: "open sesame"})

	res, err := s.Login("open sesame")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Token)

	for _, wrong := range []string{"", "open", "open sesame ", "Open Sesame"} {
		_, err := s.Login(wrong)
		assert.ErrorIs(t, err, ErrUnauthorized, wrong)
	}
}

func TestLoginWithoutSecretAlwaysFails(t *testing.T) {
	s := NewAuthService(AuthConfig{})

	assert.False(t, s.Configured())
	_, err := s.Login("")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed secret"), bcrypt.MinCost)
	require.NoError(t, err)

	s := NewAuthService(AuthConfig{Password: "ignored", PasswordHash: string(hash)})

	_, err = s.Login("hashed secret")
	assert.NoError(t, err)
	_, err = s.Login("ignored")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginIssuesToken(t *testing.T) {
	s := NewAuthService(AuthConfig{Password: "pw", IssueTokens: true, JWTSecret: "signing", TokenTTL: time.Hour})

	res, err := s.Login("pw")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.NoError(t, s.ValidateToken(res.Token))
}

func TestValidateTokenRejects(t *testing.T) {
	s := NewAuthService(AuthConfig{Password: "pw", IssueTokens: true, JWTSecret: "signing", TokenTTL: time.Hour})
	valid, err := s.GenerateToken()
	require.NoError(t, err)

	other := NewAuthService(AuthConfig{JWTSecret: "different"})
	forged, err := other.GenerateToken()
	require.NoError(t, err)

	expired := NewAuthService(AuthConfig{JWTSecret: "signing", TokenTTL: time.Minute})
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, err := expired.GenerateToken()
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: tokenSubject})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.NoError(t, s.ValidateToken(valid))
	for name, token := range map[string]string{
		"garbage":  "not.a.token",
		"forged":   forged,
		"expired":  stale,
		"unsigned": unsigned,
		"empty":    "",
	} {
		assert.ErrorIs(t, s.ValidateToken(token), ErrUnauthorized, name)
	}
}

func TestGenerateTokenNeedsSecret(t *testing.T) {
	s := NewAuthService(AuthConfig{Password: "pw", IssueTokens: true})

	_, err := s.Login("pw")
	assert.Error(t, err)
}
