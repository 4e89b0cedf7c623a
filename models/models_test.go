package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalLayouts(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{`"2025-03-01T09:30:00Z"`, time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
		{`"2025-03-01T11:30:00+02:00"`, time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
		{`"2025-03-01T09:30:00"`, time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
		{`"2025-03-01T09:30:00.123456"`, time.Date(2025, 3, 1, 9, 30, 0, 123456000, time.UTC)},
		{`"1990-07-14"`, time.Date(1990, 7, 14, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_NullAndInvalid(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &ts))
}

func TestTimestamp_Scan(t *testing.T) {
	var ts Timestamp
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, ts.Scan(now))
	assert.True(t, now.Equal(ts.Time))
	require.NoError(t, ts.Scan([]byte("2025-01-02 03:04:05")))
	assert.True(t, now.Equal(ts.Time))
	assert.Error(t, ts.Scan(42))

	v, err := NewTimestamp(now).Value()
	require.NoError(t, err)
	assert.Equal(t, now, v)
}

func TestRole(t *testing.T) {
	assert.True(t, RoleDoctor.Valid())
	assert.True(t, RolePatient.Valid())
	assert.False(t, Role("admin").Valid())
	assert.Equal(t, "DoctorNavigator", RoleDoctor.Area())
	assert.Equal(t, "PatientNavigator", RolePatient.Area())
}

func TestAppointmentStatus(t *testing.T) {
	assert.True(t, StatusScheduled.Valid())
	assert.False(t, StatusScheduled.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, AppointmentStatus("fulfilled").Valid())
}

func TestAppointment_CounterpartName(t *testing.T) {
	a := Appointment{
		DoctorName:  &DoctorName{Name: "Dr. Grey"},
		PatientName: &PatientName{FirstName: "Jo", LastName: "Doe"},
	}
	assert.Equal(t, "Jo Doe", a.CounterpartName(RoleDoctor))
	assert.Equal(t, "Dr. Grey", a.CounterpartName(RolePatient))
	assert.Empty(t, Appointment{}.CounterpartName(RoleDoctor))
}

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("loading profile: %w", NewNotFoundError("User not found"))
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, "User not found", MessageOf(wrapped))

	cause := errors.New("timeout")
	backend := NewBackendError(cause)
	assert.ErrorIs(t, backend, cause)
	assert.Equal(t, "timeout", backend.Message)

	plain := errors.New("boom")
	assert.Equal(t, KindBackend, KindOf(plain))
	assert.Equal(t, "boom", MessageOf(plain))
	assert.False(t, IsNotFound(plain))
}
