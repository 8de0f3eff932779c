package attendance

import (
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
)

// NextAction computes the single legal next event type from a day's
// records, newest first. The daily cycle is ENTRY, BREAK_START,
// BREAK_END, EXIT; after EXIT a new cycle on the same day is permitted.
// An empty day or an unrecognized latest type both resolve to ENTRY
// rather than failing, since stored data may be sparse or corrupt.
func NextAction(recordsDescByTime []attendance.Record) attendance.EventType {
	if len(recordsDescByTime) == 0 {
		return attendance.EventEntry
	}

	switch recordsDescByTime[0].Type {
	case attendance.EventEntry:
		return attendance.EventBreakStart
	case attendance.EventBreakStart:
		return attendance.EventBreakEnd
	case attendance.EventBreakEnd:
		return attendance.EventExit
	case attendance.EventExit:
		return attendance.EventEntry
	default:
		return attendance.EventEntry
	}
}
