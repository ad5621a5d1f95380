// Package domain defines the persistent models of the forum.
package domain

import "time"

// User is a registered forum member.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(191);uniqueIndex:uq_users_username;not null"`
	Password  string    `gorm:"type:text;not null"` // bcrypt hash, never the plain password
	Email     string    `gorm:"type:varchar(191);uniqueIndex:uq_users_email;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
