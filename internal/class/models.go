package class

import "classtrack/pkg/domain"

// Class is read-mostly; capacity is fixed at creation. TimeSlot is stored in
// its validated HH:MM-HH:MM form and parsed on demand.
type Class struct {
	ID          domain.ClassID   `json:"id"`
	Name        string           `json:"name"`
	Subject     string           `json:"subject"`
	DayOfWeek   domain.DayOfWeek `json:"dayOfWeek"`
	TimeSlot    string           `json:"timeSlot"`
	TeacherName string           `json:"teacherName"`
	MaxStudents int              `json:"maxStudents"`
}

// WithCount is a class annotated with its current registration count.
type WithCount struct {
	Class
	Registered int `json:"registered"`
}
