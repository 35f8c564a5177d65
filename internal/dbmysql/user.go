package dbmysql

import (
	"time"
)

// User is the account row. Staff users act as mentors.
type User struct {
	UserID       uint64    `gorm:"primaryKey;column:user_id;autoIncrement" json:"user_id"`
	Email        string    `gorm:"column:email;uniqueIndex;size:254;not null" json:"email"`
	Username     string    `gorm:"column:username;uniqueIndex;size:150;not null" json:"username"`
	FirstName    string    `gorm:"column:first_name;size:30" json:"first_name"`
	LastName     string    `gorm:"column:last_name;size:30" json:"last_name"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	IsActive     bool      `gorm:"column:is_active;not null" json:"is_active"`
	IsStaff      bool      `gorm:"column:is_staff;not null;index" json:"is_staff"`
	DateJoined   time.Time `gorm:"column:date_joined;autoCreateTime" json:"date_joined"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
