package shift

import (
	"time"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/shift"
)

// Grace windows around a shift: an employee may start a verification flow
// up to two hours before entry and up to one hour after exit.
const (
	GraceBeforeEntryMinutes = 120
	GraceAfterExitMinutes   = 60
)

const minutesPerDay = 24 * 60

// ActiveShifts returns the subset of shifts plausibly active at now,
// preserving input order. A shift is active when the current minute of
// day falls inside [entry - GraceBeforeEntry, exit + GraceAfterExit],
// with wraparound when the window crosses midnight. Shifts whose entry
// or exit time does not parse are treated permissively and always
// returned; sparse scheduling data is not an error.
func ActiveShifts(shifts []shift.Shift, now time.Time) []shift.Shift {
	nowMin := now.Hour()*60 + now.Minute()

	active := make([]shift.Shift, 0, len(shifts))
	for _, s := range shifts {
		if shiftActiveAt(s, nowMin) {
			active = append(active, s)
		}
	}
	return active
}

func shiftActiveAt(s shift.Shift, nowMin int) bool {
	entry, okEntry := shift.MinuteOfDay(s.EntryTime)
	exit, okExit := shift.MinuteOfDay(s.ExitTime)
	if !okEntry || !okExit {
		return true
	}

	windowStart := wrapMinute(entry - GraceBeforeEntryMinutes)
	windowEnd := wrapMinute(exit + GraceAfterExitMinutes)

	if windowStart > windowEnd {
		// Window crosses midnight
		return nowMin >= windowStart || nowMin <= windowEnd
	}
	return nowMin >= windowStart && nowMin <= windowEnd
}

func wrapMinute(m int) int {
	return ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
}
