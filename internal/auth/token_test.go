package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/identity-service/internal/domain"
)

const testSecret = "test-secret-test-secret"

func newTestManager(t *testing.T, ttl time.Duration) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecret, ttl)
	require.NoError(t, err)
	return tm
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Minute)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestNewTokenManagerDefaultsTTL(t *testing.T) {
	tm := newTestManager(t, 0)
	assert.Equal(t, time.Hour, tm.TTL())
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := newTestManager(t, time.Minute)
	payloads := []domain.TokenPayload{
		{SubjectID: "user-1", Subject: domain.SubjectTypeUser, Email: "a@x.com"},
		{SubjectID: "admin-9", Subject: domain.SubjectTypeAdmin, Email: "root@example.com"},
		{SubjectID: "no-email", Subject: domain.SubjectTypeUser},
	}

	for _, payload := range payloads {
		token, exp, err := tm.Issue(payload)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 2*time.Second)

		got := tm.Verify(token)
		require.True(t, got.Valid)
		require.NotNil(t, got.Data)
		assert.Equal(t, payload, *got.Data)
		assert.Equal(t, exp.Unix(), got.ExpiresAt.Unix())
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := newTestManager(t, time.Hour)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := tm.Issue(domain.TokenPayload{SubjectID: "user-1", Subject: domain.SubjectTypeUser})
	require.NoError(t, err)

	tm.now = time.Now
	got := tm.Verify(token)
	assert.False(t, got.Valid)
	assert.Nil(t, got.Data)
}

func TestVerifyRejectsAlteredSignature(t *testing.T) {
	tm := newTestManager(t, time.Minute)
	token, _, err := tm.Issue(domain.TokenPayload{SubjectID: "user-1", Subject: domain.SubjectTypeUser})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	got := tm.Verify(tampered)
	assert.False(t, got.Valid)
	assert.Nil(t, got.Data)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	issuer, err := NewTokenManager("another-secret", time.Minute)
	require.NoError(t, err)
	token, _, err := issuer.Issue(domain.TokenPayload{SubjectID: "admin-1", Subject: domain.SubjectTypeAdmin})
	require.NoError(t, err)

	assert.False(t, newTestManager(t, time.Minute).Verify(token).Valid)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	tm := newTestManager(t, time.Minute)
	for _, token := range []string{"", "garbage", "a.b.c", "....", "Bearer abc"} {
		got := tm.Verify(token)
		assert.False(t, got.Valid, "token %q", token)
		assert.Nil(t, got.Data)
	}
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	tm := newTestManager(t, time.Minute)
	claims := &Claims{
		Subject: domain.SubjectTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	assert.False(t, tm.Verify(token).Valid)
}

func TestVerifyRejectsUnknownSubjectOrMissingExpiry(t *testing.T) {
	tm := newTestManager(t, time.Minute)

	unknown := &Claims{
		Subject: domain.SubjectType("ROBOT"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "r-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, unknown).SignedString([]byte(testSecret))
	require.NoError(t, err)
	assert.False(t, tm.Verify(token).Valid)

	noExpiry := &Claims{
		Subject:          domain.SubjectTypeUser,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, noExpiry).SignedString([]byte(testSecret))
	require.NoError(t, err)
	assert.False(t, tm.Verify(token).Valid)
}
