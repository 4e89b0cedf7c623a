package utils

import (
	"strings"
	"testing"
	"time"

	"MedicApp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestTokenMaker_RoundTrip(t *testing.T) {
	maker, err := NewTokenMaker(testKey, 0)
	require.NoError(t, err)

	token, claims, err := maker.GenerateDeviceToken()
	require.NoError(t, err)
	assert.NotEmpty(t, claims.DeviceID)
	assert.True(t, claims.Expiry.IsZero())
	assert.True(t, strings.HasPrefix(token, "v2.local."))

	parsed, err := maker.ValidateDeviceToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims.DeviceID, parsed.DeviceID)

	_, second, err := maker.GenerateDeviceToken()
	require.NoError(t, err)
	assert.NotEqual(t, claims.DeviceID, second.DeviceID)
}

func TestTokenMaker_Expiry(t *testing.T) {
	maker, err := NewTokenMaker(testKey, time.Hour)
	require.NoError(t, err)
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	maker.now = func() time.Time { return issued }

	token, claims, err := maker.GenerateDeviceToken()
	require.NoError(t, err)
	assert.Equal(t, issued.Add(time.Hour), claims.Expiry)

	_, err = maker.ValidateDeviceToken(token)
	require.NoError(t, err)

	maker.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = maker.ValidateDeviceToken(token)
	assert.ErrorIs(t, err, ErrDeviceTokenExpired)
}

func TestTokenMaker_Rejects(t *testing.T) {
	_, err := NewTokenMaker("short", 0)
	assert.Error(t, err)

	maker, err := NewTokenMaker(testKey, 0)
	require.NoError(t, err)
	_, err = maker.ValidateDeviceToken("v2.local.garbage")
	assert.ErrorIs(t, err, ErrInvalidDeviceToken)

	other, err := NewTokenMaker("fedcba9876543210fedcba9876543210", 0)
	require.NoError(t, err)
	token, _, err := other.GenerateDeviceToken()
	require.NoError(t, err)
	_, err = maker.ValidateDeviceToken(token)
	assert.ErrorIs(t, err, ErrInvalidDeviceToken)
}

func TestPasswords(t *testing.T) {
	hashed, err := HashPassword("x")
	require.NoError(t, err)
	assert.True(t, IsPasswordHash(hashed))
	assert.True(t, CheckPassword(hashed, "x"))
	assert.False(t, CheckPassword(hashed, "y"))

	assert.False(t, IsPasswordHash("secret"))
	assert.True(t, CheckPassword("secret", "secret"))
	assert.False(t, CheckPassword("secret", "Secret"))
}

func TestValidateSignUp(t *testing.T) {
	valid := SignUpInput{Email: "a@b.com", Password: "x", FirstName: "Jo", LastName: "Doe", Role: models.RolePatient}
	assert.NoError(t, ValidateSignUp(valid))

	tests := map[string]func(in *SignUpInput){
		"bad email":     func(in *SignUpInput) { in.Email = "not-an-email" },
		"no password":   func(in *SignUpInput) { in.Password = "" },
		"long password": func(in *SignUpInput) { in.Password = strings.Repeat("p", 73) },
		"no first name": func(in *SignUpInput) { in.FirstName = "" },
		"unknown role":  func(in *SignUpInput) { in.Role = "admin" },
		"missing role":  func(in *SignUpInput) { in.Role = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			assert.Error(t, ValidateSignUp(in))
		})
	}
}

func TestSignUpInput_Normalize(t *testing.T) {
	in := SignUpInput{Email: " A@B.com ", FirstName: " Jo", LastName: "Doe "}
	in.Normalize()
	assert.Equal(t, "a@b.com", in.Email)
	assert.Equal(t, "Jo", in.FirstName)
	assert.Equal(t, "Doe", in.LastName)
	assert.Equal(t, "a@b.com", NormalizeEmail("  a@B.COM"))
}

func TestValidateBookingAndStatus(t *testing.T) {
	assert.NoError(t, ValidateBooking("d1", "2025-03-01T09:30:00.000Z"))
	assert.Error(t, ValidateBooking("", "2025-03-01T09:30:00Z"))
	assert.Error(t, ValidateBooking("d1", "tomorrow"))
	assert.Error(t, ValidateBooking("d1", ""))

	assert.NoError(t, ValidateStatus(models.StatusCompleted))
	assert.Error(t, ValidateStatus("fulfilled"))
	assert.Error(t, ValidateStatus(""))

	assert.NoError(t, ValidateLogin("a@b.com", "x"))
	assert.Error(t, ValidateLogin("a@b.com", ""))
	assert.NoError(t, ValidateBlog("Title"))
	assert.Error(t, ValidateBlog(""))
}
