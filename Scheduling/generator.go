package Scheduling

import (
	"time"

	"ErpClinico/Constants"
	"ErpClinico/Models"
)

// NormalizeWeekdays converts a weekday selection into a set of ISO weekdays
// (1=Monday .. 7=Sunday). A 0 coming from the dashboard means Sunday.
func NormalizeWeekdays(weekdays []int) map[int]bool {
	set := make(map[int]bool)
	for _, day := range weekdays {
		if day == 0 {
			day = 7
		}
		if day >= 1 && day <= 7 {
			set[day] = true
		}
	}
	return set
}

func isoWeekday(t time.Time) int {
	day := int(t.Weekday())
	if day == 0 {
		return 7
	}
	return day
}

// GenerateSessions walks forward day by day from startDate (inclusive) and
// emits one session per matching weekday with contiguous sequence numbers
// 1..count and the fixed start time. The walk stops after 365 days even if
// the count was not reached; callers must compare len(result) to count.
func GenerateSessions(startDate time.Time, startTime string, count uint, weekdays map[int]bool, location string) []Models.Session {
	sessions := make([]Models.Session, 0, count)
	if count == 0 {
		return sessions
	}

	day := startDate
	for elapsed := 0; elapsed <= Constants.MaxGenerationDays; elapsed++ {
		if weekdays[isoWeekday(day)] {
			sessions = append(sessions, Models.Session{
				SequenceNumber: uint(len(sessions) + 1),
				Date:           day.Format("2006-01-02"),
				StartTime:      startTime,
				LocationType:   location,
				State:          Models.SessionScheduled,
			})
			if uint(len(sessions)) == count {
				break
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return sessions
}
