package Payroll

import (
	"reflect"
	"testing"

	"ErpClinico/Models"
)

func TestSessionHours(t *testing.T) {
	if got := SessionHours("08:00", "09:30"); got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}
	if got := SessionHours("08:00", ""); got != DefaultSessionHours {
		t.Errorf("missing end: expected default, got %v", got)
	}
	if got := SessionHours("", "09:00"); got != DefaultSessionHours {
		t.Errorf("missing start: expected default, got %v", got)
	}
	if got := SessionHours("bogus", "09:00"); got != DefaultSessionHours {
		t.Errorf("bad start: expected default, got %v", got)
	}
	if got := SessionHours("10:00", "09:00"); got != DefaultSessionHours {
		t.Errorf("negative span: expected default, got %v", got)
	}
	if got := SessionHours("09:00", "09:00"); got != DefaultSessionHours {
		t.Errorf("zero span: expected default, got %v", got)
	}
}

func flatRateFixture() (map[uint]Models.MedicalOrder, map[uint]Models.Therapist) {
	orders := map[uint]Models.MedicalOrder{
		1: {TherapistID: 10},
	}
	therapists := map[uint]Models.Therapist{
		10: {Name: "Laura Gomez"},
	}
	return orders, therapists
}

func TestComputeFlatRate(t *testing.T) {
	orders, therapists := flatRateFixture()
	rates := map[uint]Models.TherapistRate{
		10: {SessionValue: 50000},
	}
	sessions := []Models.Session{
		{MedicalOrderID: 1, State: Models.SessionCompleted, LocationType: Models.LocationIntramural},
		{MedicalOrderID: 1, State: Models.SessionCompleted, LocationType: Models.LocationIntramural},
		{MedicalOrderID: 1, State: Models.SessionHomePlan, LocationType: Models.LocationIntramural},
	}

	details, warnings := Compute(5, sessions, orders, rates, therapists)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(details) != 1 {
		t.Fatalf("expected one detail row, got %d", len(details))
	}

	detail := details[0]
	if detail.PayrollPeriodID != 5 {
		t.Errorf("expected period 5, got %d", detail.PayrollPeriodID)
	}
	if detail.TherapistName != "Laura Gomez" {
		t.Errorf("expected therapist name, got %q", detail.TherapistName)
	}
	if detail.SessionsIntramural != 3 {
		t.Errorf("expected 3 intramural sessions, got %d", detail.SessionsIntramural)
	}
	if detail.SubtotalIntramural != 150000 {
		t.Errorf("expected subtotal 150000, got %v", detail.SubtotalIntramural)
	}
	if detail.TotalGross != 150000 {
		t.Errorf("expected total 150000, got %v", detail.TotalGross)
	}
}

func TestComputeHourlyRate(t *testing.T) {
	orders, therapists := flatRateFixture()
	rates := map[uint]Models.TherapistRate{
		10: {IsHourly: true, HourValue: 40000},
	}
	sessions := []Models.Session{
		{MedicalOrderID: 1, StartTime: "08:00", EndTime: "10:00", LocationType: Models.LocationIntramural},
		{MedicalOrderID: 1, StartTime: "14:00", EndTime: "15:30", LocationType: Models.LocationIntramural},
	}

	details, _ := Compute(1, sessions, orders, rates, therapists)
	if len(details) != 1 {
		t.Fatalf("expected one detail row, got %d", len(details))
	}
	detail := details[0]
	if detail.HoursIntramural != 3.5 {
		t.Errorf("expected 3.5 hours, got %v", detail.HoursIntramural)
	}
	if detail.SubtotalIntramural != 140000 {
		t.Errorf("expected subtotal 140000, got %v", detail.SubtotalIntramural)
	}
}

func TestComputeHomeRateFallback(t *testing.T) {
	orders, therapists := flatRateFixture()
	sessions := []Models.Session{
		{MedicalOrderID: 1, LocationType: Models.LocationHome},
	}

	// No home value configured: the intramural value applies.
	rates := map[uint]Models.TherapistRate{
		10: {SessionValue: 50000},
	}
	details, _ := Compute(1, sessions, orders, rates, therapists)
	if details[0].SubtotalHome != 50000 {
		t.Errorf("fallback: expected 50000, got %v", details[0].SubtotalHome)
	}

	// With a home value, it wins.
	rates[10] = Models.TherapistRate{SessionValue: 50000, SessionValueHome: 70000}
	details, _ = Compute(1, sessions, orders, rates, therapists)
	if details[0].SubtotalHome != 70000 {
		t.Errorf("home value: expected 70000, got %v", details[0].SubtotalHome)
	}
	if details[0].SessionsHome != 1 || details[0].SessionsIntramural != 0 {
		t.Errorf("expected the session counted as home only, got %+v", details[0])
	}
}

func TestComputeMissingRateYieldsZeroRowAndWarning(t *testing.T) {
	orders, therapists := flatRateFixture()
	sessions := []Models.Session{
		{MedicalOrderID: 1, LocationType: Models.LocationIntramural},
	}

	details, warnings := Compute(1, sessions, orders, map[uint]Models.TherapistRate{}, therapists)
	if len(details) != 1 {
		t.Fatalf("expected one detail row, got %d", len(details))
	}
	if details[0].SessionsIntramural != 1 {
		t.Errorf("expected the session still counted, got %d", details[0].SessionsIntramural)
	}
	if details[0].TotalGross != 0 {
		t.Errorf("expected zero total without a rate, got %v", details[0].TotalGross)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestComputeSkipsSessionsWithUnknownOrder(t *testing.T) {
	orders, therapists := flatRateFixture()
	sessions := []Models.Session{
		{MedicalOrderID: 99, LocationType: Models.LocationIntramural},
	}
	details, warnings := Compute(1, sessions, orders, map[uint]Models.TherapistRate{}, therapists)
	if len(details) != 0 || len(warnings) != 0 {
		t.Errorf("expected empty result, got %v / %v", details, warnings)
	}
}

func TestComputeDeterministicOrderAndIdempotence(t *testing.T) {
	orders := map[uint]Models.MedicalOrder{
		1: {TherapistID: 30},
		2: {TherapistID: 10},
		3: {TherapistID: 20},
	}
	therapists := map[uint]Models.Therapist{
		10: {Name: "A"}, 20: {Name: "B"}, 30: {Name: "C"},
	}
	rates := map[uint]Models.TherapistRate{
		10: {SessionValue: 1}, 20: {SessionValue: 2}, 30: {SessionValue: 3},
	}
	sessions := []Models.Session{
		{MedicalOrderID: 1, LocationType: Models.LocationIntramural},
		{MedicalOrderID: 2, LocationType: Models.LocationIntramural},
		{MedicalOrderID: 3, LocationType: Models.LocationIntramural},
	}

	first, _ := Compute(1, sessions, orders, rates, therapists)
	if len(first) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(first))
	}
	for i := 1; i < len(first); i++ {
		if first[i].TherapistID <= first[i-1].TherapistID {
			t.Errorf("rows not sorted by therapist id: %d after %d", first[i].TherapistID, first[i-1].TherapistID)
		}
	}

	second, _ := Compute(1, sessions, orders, rates, therapists)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output across runs")
	}
}
