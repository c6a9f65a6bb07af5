package Scheduling

import (
	"testing"
	"time"

	"ErpClinico/Models"
)

func TestNormalizeWeekdaysZeroIsSunday(t *testing.T) {
	set := NormalizeWeekdays([]int{0, 1, 3})
	if !set[7] {
		t.Errorf("expected 0 to normalize to 7")
	}
	if !set[1] || !set[3] {
		t.Errorf("expected 1 and 3 in set, got %v", set)
	}
	if len(set) != 3 {
		t.Errorf("expected 3 entries, got %d", len(set))
	}
}

func TestNormalizeWeekdaysDropsInvalid(t *testing.T) {
	set := NormalizeWeekdays([]int{8, -1, 15})
	if len(set) != 0 {
		t.Errorf("expected empty set, got %v", set)
	}
}

func TestGenerateSessionsMonWedFri(t *testing.T) {
	// 2025-06-02 is a Monday.
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	weekdays := NormalizeWeekdays([]int{1, 3, 5})

	sessions := GenerateSessions(start, "08:00", 10, weekdays, Models.LocationIntramural)

	if len(sessions) != 10 {
		t.Fatalf("expected 10 sessions, got %d", len(sessions))
	}
	for i, session := range sessions {
		if session.SequenceNumber != uint(i+1) {
			t.Errorf("session %d: expected sequence %d, got %d", i, i+1, session.SequenceNumber)
		}
		if session.StartTime != "08:00" {
			t.Errorf("session %d: expected start time 08:00, got %s", i, session.StartTime)
		}
		if session.State != Models.SessionScheduled {
			t.Errorf("session %d: expected state programada, got %s", i, session.State)
		}
		day, err := time.Parse("2006-01-02", session.Date)
		if err != nil {
			t.Fatalf("session %d: bad date %s: %v", i, session.Date, err)
		}
		if day.Before(start) {
			t.Errorf("session %d: date %s precedes start date", i, session.Date)
		}
		if !weekdays[isoWeekday(day)] {
			t.Errorf("session %d: date %s falls on weekday %d, not in set", i, session.Date, isoWeekday(day))
		}
	}

	// Mon/Wed/Fri at 3 per week: 10 sessions span just under 4 weeks.
	last, _ := time.Parse("2006-01-02", sessions[9].Date)
	if span := last.Sub(start); span >= 28*24*time.Hour {
		t.Errorf("expected span under 4 weeks, got %v", span)
	}
	if last.Format("2006-01-02") != "2025-06-23" {
		t.Errorf("expected last session on 2025-06-23, got %s", last.Format("2006-01-02"))
	}
}

func TestGenerateSessionsIncludesStartDate(t *testing.T) {
	// 2025-06-02 is a Monday; Monday is in the set, so it is session 1.
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sessions := GenerateSessions(start, "10:00", 1, NormalizeWeekdays([]int{1}), Models.LocationHome)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Date != "2025-06-02" {
		t.Errorf("expected start date itself, got %s", sessions[0].Date)
	}
}

func TestGenerateSessionsStrictlyIncreasingDates(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sessions := GenerateSessions(start, "09:00", 20, NormalizeWeekdays([]int{2, 4}), Models.LocationIntramural)
	if len(sessions) != 20 {
		t.Fatalf("expected 20 sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].Date <= sessions[i-1].Date {
			t.Errorf("dates not strictly increasing at %d: %s then %s", i, sessions[i-1].Date, sessions[i].Date)
		}
	}
}

func TestGenerateSessionsEmptyWeekdaySetStopsAtBound(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sessions := GenerateSessions(start, "08:00", 5, map[int]bool{}, Models.LocationIntramural)
	if len(sessions) != 0 {
		t.Errorf("expected no sessions for empty weekday set, got %d", len(sessions))
	}
}

func TestGenerateSessionsZeroCount(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sessions := GenerateSessions(start, "08:00", 0, NormalizeWeekdays([]int{1}), Models.LocationIntramural)
	if len(sessions) != 0 {
		t.Errorf("expected no sessions for zero count, got %d", len(sessions))
	}
}

func TestGenerateSessionsOneWeekdayPerYearBound(t *testing.T) {
	// A single weekday yields at most 53 sessions inside the 365-day bound;
	// asking for more must come back short instead of looping forever.
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sessions := GenerateSessions(start, "08:00", 60, NormalizeWeekdays([]int{1}), Models.LocationIntramural)
	if len(sessions) >= 60 {
		t.Fatalf("expected fewer than 60 sessions, got %d", len(sessions))
	}
	if len(sessions) < 52 {
		t.Errorf("expected at least 52 Mondays within a year, got %d", len(sessions))
	}
}
