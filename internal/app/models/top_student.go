package models

import "time"

// TopStudent promotes a student as a featured achiever. Listings are
// always ordered by score descending.
type TopStudent struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	Achievement string    `json:"achievement" db:"achievement" example:"First place, national physics olympiad"`
	Score       int       `json:"score" db:"score" example:"98"` // 0..100
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	IsFeatured  bool      `json:"isFeatured" db:"is_featured"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
