package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyhub/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := New("test-secret-123", "surveyhub", "surveyhub-web", 15*time.Minute)

	token, err := svc.Issue(testUser(), []string{"User", "Conducting"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{"User", "Conducting"}, claims.Roles)
	assert.NotEmpty(t, claims.ID, "every token carries a jti")
}

func TestVerify_Expired(t *testing.T) {
	svc := New("test-secret-123", "surveyhub", "surveyhub-web", 15*time.Minute)

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	token, err := svc.Issue(testUser(), nil)
	require.NoError(t, err)

	// Still valid one second before expiry.
	svc.now = func() time.Time { return issued.Add(15*time.Minute - time.Second) }
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	// No leeway: rejected the moment it expires.
	svc.now = func() time.Time { return issued.Add(15 * time.Minute) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuerOrAudience(t *testing.T) {
	issuerA := New("same-secret", "surveyhub", "surveyhub-web", time.Hour)
	otherIssuer := New("same-secret", "someone-else", "surveyhub-web", time.Hour)
	otherAudience := New("same-secret", "surveyhub", "other-app", time.Hour)

	token, err := otherIssuer.Issue(testUser(), nil)
	require.NoError(t, err)
	_, err = issuerA.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, err = otherAudience.Issue(testUser(), nil)
	require.NoError(t, err)
	_, err = issuerA.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedSignature(t *testing.T) {
	svc := New("test-secret-123", "surveyhub", "surveyhub-web", time.Hour)
	forger := New("other-secret", "surveyhub", "surveyhub-web", time.Hour)

	forged, err := forger.Issue(testUser(), []string{"Admin"})
	require.NoError(t, err)

	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	svc := New("test-secret-123", "surveyhub", "surveyhub-web", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
