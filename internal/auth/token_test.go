package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostel-cms/complaint-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:     "user-1",
		Name:   "Arjun Patel",
		Email:  "student@hostel.com",
		Role:   domain.RoleStudent,
		Hostel: "Block A",
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	token, exp, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)

	identity := claims.Identity()
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "student@hostel.com", identity.Email)
	assert.Equal(t, domain.RoleStudent, identity.Role)
	assert.Equal(t, "Arjun Patel", identity.Name)
	assert.Equal(t, "Block A", identity.Hostel)
}

func TestParseToken_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	tm.now = func() time.Time { return issued }

	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		UserID: "user-1",
		Role:   domain.RoleWarden,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("student123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "student123", hash)

	assert.NoError(t, ComparePassword(hash, "student123"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
