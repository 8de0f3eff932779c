package attendance

import (
	"time"
)

// EventType is one step of the daily attendance cycle.
type EventType string

const (
	EventEntry      EventType = "ENTRY"
	EventBreakStart EventType = "BREAK_START"
	EventBreakEnd   EventType = "BREAK_END"
	EventExit       EventType = "EXIT"
)

// Valid reports whether t is one of the four known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventEntry, EventBreakStart, EventBreakEnd, EventExit:
		return true
	}
	return false
}

// IsArrival reports whether t is scored as an arrival (being early is
// good). ENTRY and BREAK_END are arrivals; EXIT and BREAK_START are
// departures and score mirrored.
func (t EventType) IsArrival() bool {
	return t == EventEntry || t == EventBreakEnd
}

// PunctualityStatus is the qualitative outcome of the punctuality scorer.
type PunctualityStatus string

const (
	StatusPerfect PunctualityStatus = "PERFECT"
	StatusGood    PunctualityStatus = "GOOD"
	StatusLate    PunctualityStatus = "LATE"
	StatusNeutral PunctualityStatus = "NEUTRAL"
)

// Record is one attendance event. Records are immutable once created:
// there is no update path in the normal flow, and the ordered sequence of
// a day's records for one employee is the authoritative timeline consumed
// by the sequencer and by reporting.
type Record struct {
	ID           string
	EmployeeID   string
	CompanyID    string
	LocationID   string
	LocationName string
	Timestamp    time.Time
	Type         EventType

	Latitude       float64
	Longitude      float64
	DistanceMeters float64

	PhotoURL *string
	Verified bool

	Score              int
	PunctualityStatus  PunctualityStatus
	PunctualityMessage string

	CreatedAt time.Time

	// Joined for listings
	EmployeeName *string
}
