package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/o1egl/paseto"
)

var (
	ErrInvalidDeviceToken = errors.New("invalid device token")
	ErrDeviceTokenExpired = errors.New("device token expired")
)

// DeviceClaims is the data carried by a device token. A zero Expiry never expires.
type DeviceClaims struct {
	DeviceID string    `json:"deviceId"`
	IssuedAt time.Time `json:"issuedAt"`
	Expiry   time.Time `json:"expiry,omitempty"`
}

// TokenMaker issues and checks PASETO v2.local device tokens.
type TokenMaker struct {
	symmetricKey []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewTokenMaker ensures the key has the correct length (32 bytes).
func NewTokenMaker(symmetricKey string, ttl time.Duration) (*TokenMaker, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("SYMMETRIC_KEY must be 32 bytes long. Current length: %d", len(symmetricKey))
	}
	return &TokenMaker{symmetricKey: []byte(symmetricKey), ttl: ttl, now: time.Now}, nil
}

// GenerateDeviceToken registers a new device and returns its token and id.
func (m *TokenMaker) GenerateDeviceToken() (token string, claims DeviceClaims, err error) {
	now := m.now().UTC()
	claims = DeviceClaims{
		DeviceID: uuid.New().String(),
		IssuedAt: now,
	}
	if m.ttl > 0 {
		claims.Expiry = now.Add(m.ttl)
	}

	token, err = paseto.NewV2().Encrypt(m.symmetricKey, claims, nil)
	if err != nil {
		return "", DeviceClaims{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, claims, nil
}

// ValidateDeviceToken decrypts the token and checks its expiry.
func (m *TokenMaker) ValidateDeviceToken(token string) (*DeviceClaims, error) {
	var claims DeviceClaims
	if err := paseto.NewV2().Decrypt(token, m.symmetricKey, &claims, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeviceToken, err)
	}
	if claims.DeviceID == "" {
		return nil, ErrInvalidDeviceToken
	}
	if !claims.Expiry.IsZero() && m.now().After(claims.Expiry) {
		return nil, ErrDeviceTokenExpired
	}
	return &claims, nil
}
