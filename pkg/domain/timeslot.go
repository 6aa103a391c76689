package domain

import (
	"fmt"
	"regexp"

	dErrors "classtrack/pkg/domain-errors"
)

// TimeSlot is a half-open interval [Start, End) of a single day, in minutes
// since midnight. End > Start and the duration is at least MinSlotMinutes.
// Slots are closed on the start side and open on the end side, so two
// back-to-back slots never overlap.
type TimeSlot struct {
	Start int
	End   int
}

// MinSlotMinutes is the minimum permitted slot duration.
const MinSlotMinutes = 30

// timeSlotPattern matches "HH:MM-HH:MM" with 24-hour times. Single-digit
// hours are permitted, matching the persisted layout contract.
var timeSlotPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])-([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTimeSlot parses and validates a slot string at the trust boundary.
// Strings violating the pattern, with end <= start, or shorter than
// MinSlotMinutes are rejected before any store access.
//
// Errors: CodeInvalidInput only.
func ParseTimeSlot(s string) (TimeSlot, error) {
	m := timeSlotPattern.FindStringSubmatch(s)
	if m == nil {
		return TimeSlot{}, dErrors.New(dErrors.CodeInvalidInput, "timeSlot must be in HH:MM-HH:MM format")
	}
	start := minutesOf(m[1], m[2])
	end := minutesOf(m[3], m[4])
	if end <= start {
		return TimeSlot{}, dErrors.New(dErrors.CodeInvalidInput, "timeSlot end must be after start")
	}
	if end-start < MinSlotMinutes {
		return TimeSlot{}, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("timeSlot must be at least %d minutes", MinSlotMinutes))
	}
	return TimeSlot{Start: start, End: end}, nil
}

// Overlaps reports whether two slots on the same day share any minute.
// Half-open semantics: a slot ending exactly when another starts does not
// overlap it.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	return !(t.End <= other.Start || t.Start >= other.End)
}

// Duration returns the slot length in minutes.
func (t TimeSlot) Duration() int {
	return t.End - t.Start
}

// String renders the slot back into HH:MM-HH:MM form.
func (t TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", t.Start/60, t.Start%60, t.End/60, t.End%60)
}

func minutesOf(hh, mm string) int {
	var h, m int
	fmt.Sscanf(hh, "%d", &h)
	fmt.Sscanf(mm, "%d", &m)
	return h*60 + m
}
