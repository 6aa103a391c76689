package subscription

import (
	"time"

	"classtrack/pkg/domain"
)

// Subscription is a purchased session package. UsedSessions starts at 0 and
// only ever moves up, one consumption at a time; 0 <= used <= total holds
// after every mutation.
type Subscription struct {
	ID            domain.SubscriptionID `json:"id"`
	StudentID     domain.StudentID      `json:"studentId"`
	PackageName   string                `json:"packageName"`
	StartDate     time.Time             `json:"startDate"`
	EndDate       time.Time             `json:"endDate"`
	TotalSessions int                   `json:"totalSessions"`
	UsedSessions  int                   `json:"usedSessions"`
}

// Remaining returns the unconsumed session balance.
func (s *Subscription) Remaining() int {
	return s.TotalSessions - s.UsedSessions
}
