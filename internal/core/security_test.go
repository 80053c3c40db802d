// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fastParams = Argon2Params{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32}

func TestHashVerify_RoundTrip(t *testing.T) {
	h := NewPasswordHasherWithParams(fastParams)

	plaintexts := []string{
		"correct horse battery staple",
		"",
		"pässwörd-ünïcødé",
		"密码🔐",
		strings.Repeat("x", 128),
	}

	for _, p := range plaintexts {
		digest, err := h.Hash(p)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
		if p != "" {
			assert.NotContains(t, digest, p)
		}

		assert.True(t, h.Verify(p, digest), "exact plaintext %q", p)
		assert.False(t, h.Verify(p+"x", digest), "other plaintext for %q", p)
		assert.False(t, h.Verify(strings.ToUpper(p)+"?", digest))
	}
}

func TestHash_SaltedDigestsDiffer(t *testing.T) {
	h := NewPasswordHasherWithParams(fastParams)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same", a))
	assert.True(t, h.Verify("same", b))
}

func TestVerify_MalformedDigestIsFalse(t *testing.T) {
	h := NewPasswordHasherWithParams(fastParams)

	for _, digest := range []string{
		"",
		"plain",
		"$argon2id$",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA",
		"$2a$10$short",
	} {
		assert.False(t, h.Verify("anything", digest), "digest %q", digest)
	}
}

func TestVerify_LegacyBcrypt(t *testing.T) {
	h := NewPasswordHasherWithParams(fastParams)

	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, h.Verify("legacy-pass", string(legacy)))
	assert.False(t, h.Verify("wrong", string(legacy)))
	assert.True(t, h.NeedsRehash(string(legacy)))
}

func TestNeedsRehash(t *testing.T) {
	h := NewPasswordHasherWithParams(fastParams)

	current, err := h.Hash("pw")
	require.NoError(t, err)
	assert.False(t, h.NeedsRehash(current))

	older := NewPasswordHasherWithParams(Argon2Params{
		Memory: 512, Time: 1, Threads: 1, KeyLen: 32,
	})
	stale, err := older.Hash("pw")
	require.NoError(t, err)
	assert.True(t, h.NeedsRehash(stale))

	assert.True(t, h.NeedsRehash("garbage"))
}

func TestVerifyTimingSafe(t *testing.T) {
	h := NewPasswordHasherWithParams(fastParams)

	digest, err := h.Hash("pw")
	require.NoError(t, err)

	empty := ""
	assert.True(t, h.VerifyTimingSafe("pw", &digest))
	assert.False(t, h.VerifyTimingSafe("nope", &digest))
	assert.False(t, h.VerifyTimingSafe("pw", nil))
	assert.False(t, h.VerifyTimingSafe("dummy_password_for_timing_attack_prevention", nil))
	assert.False(t, h.VerifyTimingSafe("pw", &empty))
}
