package parent

import "classtrack/pkg/domain"

// Parent is a guardian account. Phone and email are unique across parents;
// deleting a parent cascades to its students.
type Parent struct {
	ID    domain.ParentID `json:"id"`
	Name  string          `json:"name"`
	Phone string          `json:"phone"`
	Email string          `json:"email"`
}
