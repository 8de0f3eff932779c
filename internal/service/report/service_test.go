package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/shift"
)

func rec(day int, clock string, eventType attendance.EventType, score int, status attendance.PunctualityStatus) attendance.Record {
	t, _ := time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("2025-03-%02d %s", day, clock), time.Local)
	return attendance.Record{
		Timestamp:         t,
		Type:              eventType,
		Score:             score,
		PunctualityStatus: status,
		Verified:          true,
	}
}

func TestBuildTimesheet_FullDay(t *testing.T) {
	records := []attendance.Record{
		rec(3, "09:00", attendance.EventEntry, 100, attendance.StatusPerfect),
		rec(3, "12:00", attendance.EventBreakStart, 100, attendance.StatusPerfect),
		rec(3, "13:00", attendance.EventBreakEnd, 100, attendance.StatusPerfect),
		rec(3, "17:00", attendance.EventExit, 100, attendance.StatusPerfect),
	}

	days, summary := buildTimesheet(records, nil)

	require.Len(t, days, 1)
	day := days[0]
	assert.Equal(t, "2025-03-03", day.Date)
	assert.Equal(t, "Monday", day.DayOfWeek)
	require.NotNil(t, day.Entry)
	assert.Equal(t, "09:00", *day.Entry)
	require.NotNil(t, day.Exit)
	assert.Equal(t, "17:00", *day.Exit)
	assert.InDelta(t, 7.0, day.WorkHours, 0.01)
	assert.Equal(t, 100, day.Score)
	assert.Equal(t, "PERFECT", day.Status)

	assert.Equal(t, 1, summary.DaysWorked)
	assert.Equal(t, 4, summary.VerifiedRecords)
	assert.InDelta(t, 100, summary.AverageScore, 0.01)
}

func TestBuildTimesheet_LateDayAndMissingExit(t *testing.T) {
	records := []attendance.Record{
		rec(4, "09:20", attendance.EventEntry, 10, attendance.StatusLate),
		rec(5, "09:00", attendance.EventEntry, 100, attendance.StatusPerfect),
		rec(5, "17:00", attendance.EventExit, 80, attendance.StatusGood),
	}

	days, summary := buildTimesheet(records, nil)

	require.Len(t, days, 2)
	assert.Equal(t, "LATE", days[0].Status)
	assert.Zero(t, days[0].WorkHours)
	assert.Equal(t, "GOOD", days[1].Status)
	assert.Equal(t, 90, days[1].Score)
	assert.Equal(t, 1, summary.LateDays)
	assert.Equal(t, 2, summary.DaysWorked)
}

func TestClosestShiftName_Wraparound(t *testing.T) {
	shifts := []shift.Shift{
		{Name: "Morning", EntryTime: "09:00", ExitTime: "17:00"},
		{Name: "Night", EntryTime: "23:00", ExitTime: "07:00"},
	}

	// 00:30 is 90 minutes past the Night entry through midnight, but
	// 510 minutes from the Morning entry.
	entry := time.Date(2025, 3, 3, 0, 30, 0, 0, time.Local)
	assert.Equal(t, "Night", closestShiftName(entry, shifts))

	entry = time.Date(2025, 3, 3, 9, 10, 0, 0, time.Local)
	assert.Equal(t, "Morning", closestShiftName(entry, shifts))

	assert.Empty(t, closestShiftName(entry, nil))
}

func TestBuildTimesheet_OvernightWorkHours(t *testing.T) {
	entry := time.Date(2025, 3, 3, 22, 0, 0, 0, time.Local)
	exit := time.Date(2025, 3, 3, 6, 0, 0, 0, time.Local)

	hours := workHours(&entry, &exit, nil, nil)
	assert.InDelta(t, 8.0, hours, 0.01)
}
