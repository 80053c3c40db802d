// AngelaMos | 2026
// token_test.go

package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raj-p26/inklink-backend/internal/config"
	"github.com/raj-p26/inklink-backend/internal/core"
)

var testJWTConfig = config.JWTConfig{
	Secret:          "test-secret-that-is-at-least-32-bytes-long",
	TokenTTLMinutes: 64,
	Issuer:          "inklink",
	CookieName:      "token",
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTokens(t *testing.T, cfg config.JWTConfig) (*TokenService, *fakeClock) {
	t.Helper()
	svc, err := NewTokenService(cfg)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return svc.WithClock(clock.Now), clock
}

func decodeClaims(t *testing.T, token string) map[string]any {
	t.Helper()
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(raw, &claims))
	return claims
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService(config.JWTConfig{TokenTTLMinutes: 64})
	assert.Error(t, err)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc, _ := newTestTokens(t, testJWTConfig)

	for _, subject := range []string{
		"0b8e6f7c-2a61-4c2b-9b6d-7f0e3d1f9a10",
		"x",
		"ünïcødé-subject",
	} {
		token, err := svc.Issue(subject, 64)
		require.NoError(t, err)
		assert.Equal(t, subject, token.Subject)

		got, err := svc.Verify(token.Value)
		require.NoError(t, err)
		assert.Equal(t, subject, got)
	}
}

func TestIssue_ClaimsCarryExpiry(t *testing.T) {
	svc, clock := newTestTokens(t, testJWTConfig)

	token, err := svc.Issue("user-1", 64)
	require.NoError(t, err)

	assert.Equal(t, clock.now, token.IssuedAt)
	assert.Equal(t, clock.now.Add(64*time.Minute), token.ExpiresAt)

	claims := decodeClaims(t, token.Value)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "inklink", claims["iss"])

	iat, ok := claims["iat"].(float64)
	require.True(t, ok)
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Equal(t, float64(64*60), exp-iat)
}

func TestIssueDefault_UsesConfiguredTTL(t *testing.T) {
	svc, _ := newTestTokens(t, testJWTConfig)

	token, err := svc.IssueDefault("user-1")
	require.NoError(t, err)
	assert.Equal(t, 64*time.Minute, token.ExpiresAt.Sub(token.IssuedAt))
	assert.Equal(t, 64, svc.DefaultTTL())
}

func TestIssue_EmptySubjectRejectedForAnyTTL(t *testing.T) {
	svc, _ := newTestTokens(t, testJWTConfig)

	for _, ttl := range []int{-5, 0, 1, 64} {
		token, err := svc.Issue("", ttl)
		assert.Nil(t, token)
		assert.ErrorIs(t, err, ErrInvalidSubject, "ttl %d", ttl)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	}
}

func TestIssue_NonPositiveTTL(t *testing.T) {
	svc, _ := newTestTokens(t, testJWTConfig)

	for _, ttl := range []int{-1, 0} {
		_, err := svc.Issue("user-1", ttl)
		assert.ErrorIs(t, err, ErrInvalidTTL)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	}
}

func TestVerify_Expiry(t *testing.T) {
	svc, clock := newTestTokens(t, testJWTConfig)

	token, err := svc.Issue("user-1", 1)
	require.NoError(t, err)

	clock.now = clock.now.Add(30 * time.Second)
	_, err = svc.Verify(token.Value)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = svc.Verify(token.Value)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestVerify_WrongSecret(t *testing.T) {
	svc, _ := newTestTokens(t, testJWTConfig)

	otherCfg := testJWTConfig
	otherCfg.Secret = "another-secret-that-is-also-32-bytes-or-more"
	other, _ := newTestTokens(t, otherCfg)

	token, err := other.Issue("user-1", 64)
	require.NoError(t, err)

	_, err = svc.Verify(token.Value)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerify_WrongIssuer(t *testing.T) {
	svc, _ := newTestTokens(t, testJWTConfig)

	otherCfg := testJWTConfig
	otherCfg.Issuer = "someone-else"
	other, _ := newTestTokens(t, otherCfg)

	token, err := other.Issue("user-1", 64)
	require.NoError(t, err)

	_, err = svc.Verify(token.Value)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerify_SwappedPayload(t *testing.T) {
	svc, _ := newTestTokens(t, testJWTConfig)

	victim, err := svc.Issue("victim", 64)
	require.NoError(t, err)
	attacker, err := svc.Issue("attacker", 64)
	require.NoError(t, err)

	v := strings.Split(victim.Value, ".")
	a := strings.Split(attacker.Value, ".")
	forged := strings.Join([]string{a[0], v[1], a[2]}, ".")

	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerify_UnsignedToken(t *testing.T) {
	svc, clock := newTestTokens(t, testJWTConfig)

	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{
		"sub": "user-1",
		"iss": "inklink",
		"iat": clock.now.Unix(),
		"exp": clock.now.Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	unsigned := header + "." + enc.EncodeToString(payload) + "."

	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	svc, _ := newTestTokens(t, testJWTConfig)

	for _, input := range []string{
		"",
		"not-a-token",
		"a.b.c",
		"....",
		"eyJhbGciOiJIUzI1NiJ9..",
	} {
		_, err := svc.Verify(input)
		assert.ErrorIs(t, err, core.ErrTokenInvalid, "input %q", input)
	}
}
