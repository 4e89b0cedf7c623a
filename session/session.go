// Package session keeps the identity of whoever is using a device.
//
// Each device owns exactly one slot holding the current user id. The slot is
// written on login or signup, read on every request and removed on logout. It
// never expires on its own.
package session

import (
	"context"
	"errors"
	"fmt"

	"MedicApp/cache"
)

const currentUserKey = "userId"

// Manager hands out sessions bound to a device.
type Manager struct {
	store cache.Store
}

func NewManager(store cache.Store) *Manager {
	return &Manager{store: store}
}

// For returns the session of deviceID.
func (m *Manager) For(deviceID string) (*Session, error) {
	if deviceID == "" {
		return nil, errors.New("device id is required")
	}
	return &Session{store: m.store, deviceID: deviceID}, nil
}

// Session is the single-slot identity store of one device.
type Session struct {
	store    cache.Store
	deviceID string
}

// DeviceID returns the device the session belongs to.
func (s *Session) DeviceID() string {
	return s.deviceID
}

func (s *Session) key() string {
	return fmt.Sprintf("session:%s:%s", s.deviceID, currentUserKey)
}

// SetCurrentUser makes userID the active identity, replacing any previous one.
func (s *Session) SetCurrentUser(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("user id is required")
	}
	if err := s.store.Set(ctx, s.key(), userID, 0); err != nil {
		return fmt.Errorf("failed to store current user: %w", err)
	}
	return nil
}

// GetCurrentUser returns the active identity; ok is false when nobody is logged in.
func (s *Session) GetCurrentUser(ctx context.Context) (userID string, ok bool, err error) {
	userID, err = s.store.Get(ctx, s.key())
	if err != nil {
		return "", false, fmt.Errorf("failed to read current user: %w", err)
	}
	return userID, userID != "", nil
}

// ClearCurrentUser forgets the active identity.
func (s *Session) ClearCurrentUser(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key()); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	return nil
}
