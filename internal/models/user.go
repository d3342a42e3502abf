package models

import "time"

type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UID         string `gorm:"uniqueIndex;not null" json:"uid"`
	Username    string `gorm:"unique;not null" json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `gorm:"unique;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"` // empty for OAuth users
	PhotoURL    string `json:"photo_url"`

	Karma        int `gorm:"default:0" json:"karma"`
	PostKarma    int `gorm:"default:0" json:"post_karma"`
	CommentKarma int `gorm:"default:0" json:"comment_karma"`

	// OAuth fields
	GoogleID     string `gorm:"index" json:"-"`
	AuthProvider string `json:"auth_provider"` // "email" or "google"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PasswordReset is an outstanding reset token. Delivery of the token to the
// user's inbox is outside this repo.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
