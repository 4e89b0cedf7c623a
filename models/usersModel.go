package models

import (
	"time"
)

// Role is fixed per user at signup and drives every role branch.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleDoctor || r == RolePatient
}

// Area returns the navigator a role lands in after login or signup.
func (r Role) Area() string {
	if r == RoleDoctor {
		return "DoctorNavigator"
	}
	return "PatientNavigator"
}

// User represents an account in the users collection
type User struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"password,omitempty"`
	Role      Role      `gorm:"size:20;not null;check:role IN ('doctor', 'patient');column:role" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}
