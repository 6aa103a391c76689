package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "classtrack/pkg/domain-errors"
)

func TestParseTimeSlot(t *testing.T) {
	t.Run("parses valid slots", func(t *testing.T) {
		tests := []struct {
			in         string
			start, end int
		}{
			{"09:00-10:00", 540, 600},
			{"9:00-10:00", 540, 600},
			{"00:00-23:59", 0, 1439},
			{"13:30-14:00", 810, 840},
		}
		for _, tc := range tests {
			slot, err := ParseTimeSlot(tc.in)
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.start, slot.Start, tc.in)
			assert.Equal(t, tc.end, slot.End, tc.in)
			assert.GreaterOrEqual(t, slot.Duration(), MinSlotMinutes, tc.in)
		}
	})

	t.Run("rejects malformed strings", func(t *testing.T) {
		for _, in := range []string{
			"",
			"9am-10am",
			"09:00",
			"09:00-",
			"25:00-26:00",
			"09:60-10:00",
			"09:00 - 10:00",
		} {
			_, err := ParseTimeSlot(in)
			require.Error(t, err, in)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), in)
		}
	})

	t.Run("rejects end before or equal to start", func(t *testing.T) {
		for _, in := range []string{"10:00-09:00", "09:00-09:00"} {
			_, err := ParseTimeSlot(in)
			require.Error(t, err, in)
		}
	})

	t.Run("rejects slots shorter than the minimum", func(t *testing.T) {
		_, err := ParseTimeSlot("09:00-09:15")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	base, err := ParseTimeSlot("09:00-10:00")
	require.NoError(t, err)

	tests := []struct {
		name    string
		other   string
		overlap bool
	}{
		{"identical", "09:00-10:00", true},
		{"partial tail", "09:30-10:30", true},
		{"partial head", "08:30-09:30", true},
		{"contained", "09:15-09:45", true},
		{"containing", "08:00-11:00", true},
		{"back-to-back after", "10:00-11:00", false},
		{"back-to-back before", "08:00-09:00", false},
		{"disjoint", "11:00-12:00", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			other, err := ParseTimeSlot(tc.other)
			require.NoError(t, err)
			assert.Equal(t, tc.overlap, base.Overlaps(other))
			assert.Equal(t, tc.overlap, other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestTimeSlotString(t *testing.T) {
	slot, err := ParseTimeSlot("9:00-10:30")
	require.NoError(t, err)
	assert.Equal(t, "09:00-10:30", slot.String())

	// Round trip: rendering then re-parsing yields the same offsets.
	again, err := ParseTimeSlot(slot.String())
	require.NoError(t, err)
	assert.Equal(t, slot, again)
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.Len(t, id, 10)
		assert.False(t, seen[id], "ids must not repeat")
		seen[id] = true
	}
}

func TestParseGender(t *testing.T) {
	for _, in := range []string{"male", "female", "other"} {
		g, err := ParseGender(in)
		require.NoError(t, err)
		assert.True(t, g.IsValid())
	}
	for _, in := range []string{"", "unknown", "MALE"} {
		_, err := ParseGender(in)
		require.Error(t, err, in)
	}
}

func TestParseDayOfWeek(t *testing.T) {
	for n := 0; n <= 6; n++ {
		d, err := ParseDayOfWeek(n)
		require.NoError(t, err)
		assert.Equal(t, n, d.Int())
	}
	for _, n := range []int{-1, 7, 100} {
		_, err := ParseDayOfWeek(n)
		require.Error(t, err)
	}
}
