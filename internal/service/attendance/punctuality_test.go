package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/shift"
)

func clock(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func dayShift() *shift.Shift {
	return &shift.Shift{
		EntryTime:      "09:00",
		ExitTime:       "17:00",
		BreakStartTime: strPtr("12:00"),
		BreakEndTime:   strPtr("13:00"),
	}
}

func TestScorePunctuality_Entry(t *testing.T) {
	cases := []struct {
		name    string
		at      time.Time
		score   int
		status  attendance.PunctualityStatus
		message string
	}{
		{"exactly on time", clock(9, 0), ScorePerfect, attendance.StatusPerfect, "on time"},
		{"slightly early", clock(8, 57), ScorePerfect, attendance.StatusPerfect, "on time"},
		{"well early", clock(8, 50), ScorePerfect, attendance.StatusPerfect, "early by 10 min"},
		{"late within tolerance", clock(9, 7), ScoreGood, attendance.StatusGood, "late by 7 min, within tolerance"},
		{"tolerance boundary", clock(9, 10), ScoreGood, attendance.StatusGood, "late by 10 min, within tolerance"},
		{"late", clock(9, 15), ScoreLate, attendance.StatusLate, "late by 15 min"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ScorePunctuality(attendance.EventEntry, c.at, dayShift())
			assert.Equal(t, c.score, got.Score)
			assert.Equal(t, c.status, got.Status)
			assert.Equal(t, c.message, got.Message)
		})
	}
}

func TestScorePunctuality_ExitMirrored(t *testing.T) {
	cases := []struct {
		name    string
		at      time.Time
		score   int
		status  attendance.PunctualityStatus
		message string
	}{
		{"exactly on time", clock(17, 0), ScorePerfect, attendance.StatusPerfect, "on time"},
		{"stayed a bit longer", clock(17, 4), ScorePerfect, attendance.StatusPerfect, "on time"},
		{"stayed well past", clock(17, 20), ScorePerfect, attendance.StatusPerfect, "+20 min"},
		{"left early within tolerance", clock(16, 53), ScoreGood, attendance.StatusGood, "7 min early, within tolerance"},
		{"left too early", clock(16, 30), ScoreLate, attendance.StatusLate, "left 30 min early"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ScorePunctuality(attendance.EventExit, c.at, dayShift())
			assert.Equal(t, c.score, got.Score)
			assert.Equal(t, c.status, got.Status)
			assert.Equal(t, c.message, got.Message)
		})
	}
}

func TestScorePunctuality_BreakTypes(t *testing.T) {
	s := dayShift()

	// BREAK_END is an arrival: coming back late from break is penalized.
	back := ScorePunctuality(attendance.EventBreakEnd, clock(13, 20), s)
	assert.Equal(t, attendance.StatusLate, back.Status)

	// BREAK_START is a departure: leaving for break early is penalized.
	out := ScorePunctuality(attendance.EventBreakStart, clock(11, 30), s)
	assert.Equal(t, attendance.StatusLate, out.Status)
}

func TestScorePunctuality_NeutralFallbacks(t *testing.T) {
	cases := []struct {
		name  string
		event attendance.EventType
		at    time.Time
		shift *shift.Shift
	}{
		{"nil shift", attendance.EventEntry, clock(9, 0), nil},
		{"unparseable entry", attendance.EventEntry, clock(9, 0), &shift.Shift{EntryTime: "morning", ExitTime: "17:00"}},
		{"unparseable exit", attendance.EventExit, clock(17, 0), &shift.Shift{EntryTime: "09:00", ExitTime: "late"}},
		{"no break defined", attendance.EventBreakStart, clock(12, 0), &shift.Shift{EntryTime: "09:00", ExitTime: "17:00"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ScorePunctuality(c.event, c.at, c.shift)
			assert.Equal(t, 0, got.Score)
			assert.Equal(t, attendance.StatusNeutral, got.Status)
			assert.Empty(t, got.Message)
		})
	}
}

func TestScorePunctuality_OvernightShift(t *testing.T) {
	s := &shift.Shift{EntryTime: "22:00", ExitTime: "06:00"}

	// Exit target lands on the next virtual day: leaving at 06:00 is on
	// time, not eight hours late.
	onTime := ScorePunctuality(attendance.EventExit, clock(6, 0), s)
	assert.Equal(t, attendance.StatusPerfect, onTime.Status)

	// Leaving at 05:30 is half an hour early.
	early := ScorePunctuality(attendance.EventExit, clock(5, 30), s)
	assert.Equal(t, attendance.StatusLate, early.Status)
	assert.Equal(t, "left 30 min early", early.Message)

	// Arriving at 22:05 is five minutes late, within tolerance.
	entry := ScorePunctuality(attendance.EventEntry, clock(22, 5), s)
	assert.Equal(t, attendance.StatusGood, entry.Status)
}

func TestScorePunctuality_IsPure(t *testing.T) {
	s := dayShift()
	first := ScorePunctuality(attendance.EventEntry, clock(9, 7), s)
	second := ScorePunctuality(attendance.EventEntry, clock(9, 7), s)
	assert.Equal(t, first, second)
}
