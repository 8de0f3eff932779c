package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
)

func recordsWithLatest(latest attendance.EventType) []attendance.Record {
	return []attendance.Record{
		{Type: latest, Timestamp: time.Now()},
		{Type: attendance.EventEntry, Timestamp: time.Now().Add(-time.Hour)},
	}
}

func TestNextAction_Transitions(t *testing.T) {
	cases := []struct {
		name    string
		records []attendance.Record
		want    attendance.EventType
	}{
		{"empty day starts with entry", nil, attendance.EventEntry},
		{"after entry comes break start", recordsWithLatest(attendance.EventEntry), attendance.EventBreakStart},
		{"after break start comes break end", recordsWithLatest(attendance.EventBreakStart), attendance.EventBreakEnd},
		{"after break end comes exit", recordsWithLatest(attendance.EventBreakEnd), attendance.EventExit},
		{"after exit a new cycle begins", recordsWithLatest(attendance.EventExit), attendance.EventEntry},
		{"corrupt type falls back to entry", recordsWithLatest(attendance.EventType("LUNCH")), attendance.EventEntry},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, NextAction(c.records))
		})
	}
}

// Simulates a full synthetic day of recording, always appending whatever
// NextAction says. No two consecutive records may share a type.
func TestNextAction_NeverRepeatsAcrossFullDay(t *testing.T) {
	var day []attendance.Record

	for i := 0; i < 8; i++ {
		next := NextAction(day)
		if len(day) > 0 {
			assert.NotEqual(t, day[0].Type, next, "step %d repeated %s", i, next)
		}
		day = append([]attendance.Record{{Type: next, Timestamp: time.Now()}}, day...)
	}

	// Two complete cycles.
	want := []attendance.EventType{
		attendance.EventExit, attendance.EventBreakEnd, attendance.EventBreakStart, attendance.EventEntry,
		attendance.EventExit, attendance.EventBreakEnd, attendance.EventBreakStart, attendance.EventEntry,
	}
	got := make([]attendance.EventType, len(day))
	for i, r := range day {
		got[i] = r.Type
	}
	assert.Equal(t, want, got)
}
