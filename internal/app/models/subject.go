package models

import "time"

// Subject defines a course based on the 'subjects' table. A teacher owns
// zero or more subjects. Price 0 means the subject is free to enroll.
type Subject struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"Physics"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price" db:"price" example:"100"`
	TeacherID   *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Free reports whether the subject takes the free enrollment path.
func (s *Subject) Free() bool {
	return s.Price == 0
}
