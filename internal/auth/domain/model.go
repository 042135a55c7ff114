// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is an operator account allowed to use the API.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"type:varchar(80);not null;uniqueIndex" json:"username"`
	PasswordHash string       `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
