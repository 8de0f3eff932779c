package attendance

import (
	"fmt"
	"time"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/shift"
)

// Punctuality scoring constants. The tolerance window applies in both
// directions; the annotation threshold only affects the PERFECT message.
const (
	ToleranceMinutes         = 10
	PerfectAnnotationMinutes = 5
	ScorePerfect             = 100
	ScoreGood                = 80
	ScoreLate                = 10
)

// Punctuality is the scorer's verdict for one attendance event.
type Punctuality struct {
	Score   int
	Status  attendance.PunctualityStatus
	Message string
}

var neutral = Punctuality{Score: 0, Status: attendance.StatusNeutral, Message: ""}

// ScorePunctuality grades one attendance event against its shift target
// time. Pure: the reference instant is passed in, never read from the
// wall clock. Missing or unparseable scheduling data yields NEUTRAL,
// never an error; sparse schedules are legitimate.
//
// Arrivals (ENTRY, BREAK_END) reward being early; departures (EXIT,
// BREAK_START) mirror and reward staying late. For overnight shifts both
// instants are lifted onto a common virtual day anchored at the entry
// time before the difference is taken.
func ScorePunctuality(eventType attendance.EventType, at time.Time, s *shift.Shift) Punctuality {
	if s == nil {
		return neutral
	}

	entryMin, ok := shift.MinuteOfDay(s.EntryTime)
	if !ok {
		return neutral
	}

	target, ok := targetClock(eventType, *s)
	if !ok {
		return neutral
	}
	targetMin, ok := shift.MinuteOfDay(target)
	if !ok {
		return neutral
	}

	nowMin := at.Hour()*60 + at.Minute()

	if s.IsOvernight() {
		if targetMin < entryMin {
			targetMin += 24 * 60
		}
		if nowMin < entryMin {
			nowMin += 24 * 60
		}
	}

	diff := nowMin - targetMin

	if eventType.IsArrival() {
		return scoreArrival(diff)
	}
	return scoreDeparture(diff)
}

func targetClock(eventType attendance.EventType, s shift.Shift) (string, bool) {
	switch eventType {
	case attendance.EventEntry:
		return s.EntryTime, true
	case attendance.EventExit:
		return s.ExitTime, true
	case attendance.EventBreakStart:
		if s.BreakStartTime == nil {
			return "", false
		}
		return *s.BreakStartTime, true
	case attendance.EventBreakEnd:
		if s.BreakEndTime == nil {
			return "", false
		}
		return *s.BreakEndTime, true
	}
	return "", false
}

func scoreArrival(diff int) Punctuality {
	switch {
	case diff <= 0:
		msg := "on time"
		if diff < -PerfectAnnotationMinutes {
			msg = fmt.Sprintf("early by %d min", -diff)
		}
		return Punctuality{Score: ScorePerfect, Status: attendance.StatusPerfect, Message: msg}
	case diff <= ToleranceMinutes:
		return Punctuality{
			Score:   ScoreGood,
			Status:  attendance.StatusGood,
			Message: fmt.Sprintf("late by %d min, within tolerance", diff),
		}
	default:
		return Punctuality{
			Score:   ScoreLate,
			Status:  attendance.StatusLate,
			Message: fmt.Sprintf("late by %d min", diff),
		}
	}
}

func scoreDeparture(diff int) Punctuality {
	switch {
	case diff >= 0:
		msg := "on time"
		if diff > PerfectAnnotationMinutes {
			msg = fmt.Sprintf("+%d min", diff)
		}
		return Punctuality{Score: ScorePerfect, Status: attendance.StatusPerfect, Message: msg}
	case diff >= -ToleranceMinutes:
		return Punctuality{
			Score:   ScoreGood,
			Status:  attendance.StatusGood,
			Message: fmt.Sprintf("%d min early, within tolerance", -diff),
		}
	default:
		return Punctuality{
			Score:   ScoreLate,
			Status:  attendance.StatusLate,
			Message: fmt.Sprintf("left %d min early", -diff),
		}
	}
}
