package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "af-logistics/models/user"
)

func TestGenerateTrackingID(t *testing.T) {
	id := GenerateTrackingID()

	assert.Regexp(t, `^AFL\d{8}[A-Z0-9]{4}$`, id)
	assert.Len(t, id, 15)
}

func TestGenerateTrackingIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTrackingID()
		assert.False(t, seen[id], "duplicate tracking id %s", id)
		seen[id] = true
	}
}

func TestCalculatePrice(t *testing.T) {
	cases := []struct {
		deliveryType string
		weight       float64
		want         float64
	}{
		{"express", 1, 3500},
		{"standard", 5, 2000},
		{"economy", 0.5, 1200},
		{"standard", 8, 2600},  // 2000 + 3kg * 200
		{"express", 10, 4500},  // 3500 + 5kg * 200
		{"economy", 5.5, 1300}, // 1200 + 0.5kg * 200
	}

	for _, tc := range cases {
		got, err := CalculatePrice(tc.deliveryType, tc.weight)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %gkg", tc.deliveryType, tc.weight)
	}
}

func TestCalculatePriceRejectsBadInput(t *testing.T) {
	_, err := CalculatePrice("teleport", 1)
	assert.Error(t, err)

	_, err = CalculatePrice("standard", -1)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := &userModel.User{
		Uuid:  "user-1",
		Name:  "John Doe",
		Email: "john@example.com",
		Role:  userModel.RoleRider,
	}

	token, err := GenerateToken(u)
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", ClaimString(claims, "uuid"))
	assert.Equal(t, "John Doe", ClaimString(claims, "name"))
	assert.Equal(t, userModel.RoleRider, ClaimString(claims, "role"))

	perms, ok := claims["permissions"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, perms, "af-logistics.rider.full-permit")
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := &userModel.User{Uuid: "user-1", Name: "John", Email: "j@x.com", Role: userModel.RoleCustomer}
	token, err := GenerateToken(u)
	require.NoError(t, err)

	_, err = VerifyToken(token + "x")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	_, err = VerifyToken(token)
	assert.Error(t, err)
}
