package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/pontocerto/pontocerto-backend-go/internal/domain/shift"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestActiveShifts_DayShift(t *testing.T) {
	shifts := []domain.Shift{
		{ID: "day", EntryTime: "09:00", ExitTime: "17:00"},
	}

	cases := []struct {
		name   string
		now    time.Time
		active bool
	}{
		{"two hours before entry", at(7, 0), true},
		{"one minute into grace", at(7, 1), true},
		{"just before entry", at(8, 59), true},
		{"mid shift", at(12, 0), true},
		{"just before grace ends", at(17, 59), true},
		{"end of exit grace", at(18, 0), true},
		{"before entry grace", at(6, 59), false},
		{"after exit grace", at(18, 1), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ActiveShifts(shifts, c.now)
			if c.active {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestActiveShifts_OvernightShift(t *testing.T) {
	shifts := []domain.Shift{
		{ID: "night", EntryTime: "22:00", ExitTime: "06:00"},
	}

	cases := []struct {
		name   string
		now    time.Time
		active bool
	}{
		{"before midnight", at(23, 59), true},
		{"after midnight", at(5, 0), true},
		{"entry grace", at(20, 0), true},
		{"exit grace", at(7, 0), true},
		{"midday", at(12, 0), false},
		{"after exit grace", at(7, 1), false},
		{"before entry grace", at(19, 59), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ActiveShifts(shifts, c.now)
			if c.active {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestActiveShifts_MalformedTimesAreAlwaysActive(t *testing.T) {
	shifts := []domain.Shift{
		{ID: "broken", EntryTime: "nine", ExitTime: "17:00"},
		{ID: "empty", EntryTime: "", ExitTime: ""},
	}

	got := ActiveShifts(shifts, at(3, 0))
	assert.Len(t, got, 2)
}

func TestActiveShifts_PreservesInputOrder(t *testing.T) {
	shifts := []domain.Shift{
		{ID: "morning", EntryTime: "06:00", ExitTime: "14:00"},
		{ID: "afternoon", EntryTime: "13:00", ExitTime: "21:00"},
	}

	got := ActiveShifts(shifts, at(13, 30))
	assert.Len(t, got, 2)
	assert.Equal(t, "morning", got[0].ID)
	assert.Equal(t, "afternoon", got[1].ID)
}
