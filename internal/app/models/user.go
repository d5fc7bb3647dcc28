package models

import "time"

// User defines the user model based on the 'users' table. One row per
// authenticated identity; the role decides which dashboard a session
// resolves to and which routes the user may call.
type User struct {
	ID            int64      `json:"id" db:"id" example:"1"`
	Email         string     `json:"email" db:"email" example:"student@manassa.app"`
	Password      string     `json:"-" db:"password"` // hashed, excluded from JSON
	FullName      string     `json:"fullName" db:"full_name" example:"Ahmed Hassan"`
	Role          Role       `json:"role" db:"role" example:"student"`
	Subject       *string    `json:"subject,omitempty" db:"subject" example:"Mathematics"` // teachers only
	Grade         *string    `json:"grade,omitempty" db:"grade" example:"3rd secondary"`   // students only
	Phone         *string    `json:"phone,omitempty" db:"phone"`
	AvatarURL     *string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty" db:"cover_image_url"`
	IsActive      bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}
