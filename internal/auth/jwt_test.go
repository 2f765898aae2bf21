package auth

import (
	"testing"

	"github.com/photoclub/club-management-api/internal/models"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "tester",
		Role:     models.RoleMember,
	}
}

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", "issuer", "audience")

	token, err := m.GenerateToken(testUser())
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "tester", claims.Username)
	require.Equal(t, models.RoleMember, claims.Role)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	issuing := NewManager("secret-one", "issuer", "audience")
	validating := NewManager("secret-two", "issuer", "audience")

	token, err := issuing.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = validating.ValidateToken(token)
	require.Error(t, err)
}

func TestManager_RejectsWrongIssuerAndAudience(t *testing.T) {
	issuing := NewManager("secret", "other-issuer", "audience")
	validating := NewManager("secret", "issuer", "audience")

	token, err := issuing.GenerateToken(testUser())
	require.NoError(t, err)
	_, err = validating.ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidIssuer)

	issuing = NewManager("secret", "issuer", "other-audience")
	token, err = issuing.GenerateToken(testUser())
	require.NoError(t, err)
	_, err = validating.ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidAudience)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := NewManager("secret", "issuer", "audience")

	_, err := m.ValidateToken("not.a.token")
	require.Error(t, err)
	_, err = m.ValidateToken("")
	require.Error(t, err)
}
