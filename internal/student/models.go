package student

import (
	"time"

	"classtrack/pkg/domain"
)

// Student is immutable once created; there is no update operation. The
// parent reference is optional and cascade-deletes with the parent.
type Student struct {
	ID           domain.StudentID `json:"id"`
	Name         string           `json:"name"`
	DOB          time.Time        `json:"dob"`
	Gender       domain.Gender    `json:"gender"`
	CurrentGrade *int             `json:"currentGrade"`
	ParentID     *domain.ParentID `json:"parentId,omitempty"`
}

// ParentSummary is the parent projection embedded in student reads.
type ParentSummary struct {
	ID    domain.ParentID `json:"id"`
	Name  string          `json:"name"`
	Phone string          `json:"phone"`
	Email string          `json:"email"`
}

// WithParent is a student joined with its parent, when one is set.
type WithParent struct {
	Student
	Parent *ParentSummary `json:"parent"`
}
