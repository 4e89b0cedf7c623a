package models

import (
	"time"
)

// Blog post, authored by a doctor
type Blog struct {
	ID         int64       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID   string      `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	Title      string      `gorm:"column:title;not null" json:"title"`
	Content    string      `gorm:"column:content;type:text" json:"content"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	Doctor     *Doctor     `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	DoctorName *DoctorName `gorm:"-" json:"doctors,omitempty"`
}

func (Blog) TableName() string {
	return "blogs"
}

// Notification is created outside this application and only read here.
type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID    string    `gorm:"column:user_id;not null;index" json:"user_id"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	Read      bool      `gorm:"column:read;default:false" json:"read"`
}

func (Notification) TableName() string {
	return "notifications"
}
