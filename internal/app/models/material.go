package models

import "time"

// Material defines a course material based on the 'materials' table.
// Views is a monotonic counter; it is only ever incremented, atomically,
// in the database.
type Material struct {
	ID          int64        `json:"id" db:"id"`
	Title       string       `json:"title" db:"title" example:"Chapter 4 - Motion"`
	Description *string      `json:"description,omitempty" db:"description"`
	Type        MaterialType `json:"type" db:"type" example:"video"`
	FileURL     *string      `json:"fileUrl,omitempty" db:"file_url"`
	FileSize    *string      `json:"fileSize,omitempty" db:"file_size"`
	SubjectID   int64        `json:"subjectId" db:"subject_id"`
	TeacherID   int64        `json:"teacherId" db:"teacher_id"`
	Views       int64        `json:"views" db:"views"`
	IsPublished bool         `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}
