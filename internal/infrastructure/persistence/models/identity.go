package models

import (
	"time"

	"github.com/beamworkflow/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
// Email is the primary key; there is no surrogate id.
type UserModel struct {
	Email        string    `gorm:"type:varchar(200);primaryKey"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Username     string    `gorm:"type:varchar(20);not null"`
	Gender       string    `gorm:"type:varchar(7)"`
	UserImage    string    `gorm:"type:varchar(255)"`
	ThemeName    string    `gorm:"type:varchar(50);not null;default:'lumen'"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Username:     m.Username,
		Gender:       m.Gender,
		UserImage:    m.UserImage,
		ThemeName:    m.ThemeName,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Username = u.Username
	m.Gender = u.Gender
	m.UserImage = u.UserImage
	m.ThemeName = u.ThemeName
	m.CreatedAt = u.CreatedAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
