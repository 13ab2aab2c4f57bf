package models

import "time"

type User struct {
	ID             int     `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"not null" json:"name"`
	Email          string  `gorm:"unique;not null" json:"email"`
	Phone          *string `gorm:"unique" json:"phone,omitempty"`
	Password       string  `gorm:"not null" json:"-"`
	ProfilePicture string  `gorm:"default:default.png" json:"profile_picture"`
	NameChanged    bool    `gorm:"default:false" json:"name_changed"` // name can only be changed once
	AnonymousUsed  bool    `gorm:"default:false" json:"anonymous_used"`
	IsAdmin        bool    `gorm:"default:false" json:"is_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}
