package shift

import (
	"strconv"
	"strings"
	"time"
)

// Shift is a named daily work schedule. Times are local "HH:MM" strings;
// an exit time earlier than the entry time means the shift crosses
// midnight and exits on the next calendar day.
type Shift struct {
	ID             string
	CompanyID      string
	Name           string
	EntryTime      string
	ExitTime       string
	BreakStartTime *string
	BreakEndTime   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasBreak reports whether the shift defines a break. Both break fields
// must be present for the break to be considered.
func (s Shift) HasBreak() bool {
	return s.BreakStartTime != nil && s.BreakEndTime != nil
}

// IsOvernight reports whether the shift exits on the next calendar day.
func (s Shift) IsOvernight() bool {
	entry, okEntry := MinuteOfDay(s.EntryTime)
	exit, okExit := MinuteOfDay(s.ExitTime)
	return okEntry && okExit && exit < entry
}

// MinuteOfDay parses a strict 24-hour "HH:MM" string into minutes since
// midnight. Returns false for anything malformed.
func MinuteOfDay(clock string) (int, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
