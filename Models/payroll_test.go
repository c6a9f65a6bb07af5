package Models

import "testing"

func TestPayrollPeriodBounds(t *testing.T) {
	period := PayrollPeriod{Month: 2, Year: 2025}
	start, end := period.Bounds()
	if start != "2025-02-01" {
		t.Errorf("expected start 2025-02-01, got %s", start)
	}
	if end != "2025-02-28" {
		t.Errorf("expected end 2025-02-28, got %s", end)
	}
}

func TestPayrollPeriodBoundsLeapYear(t *testing.T) {
	period := PayrollPeriod{Month: 2, Year: 2024}
	_, end := period.Bounds()
	if end != "2024-02-29" {
		t.Errorf("expected end 2024-02-29, got %s", end)
	}
}

func TestPayrollPeriodBoundsDecember(t *testing.T) {
	period := PayrollPeriod{Month: 12, Year: 2025}
	start, end := period.Bounds()
	if start != "2025-12-01" || end != "2025-12-31" {
		t.Errorf("expected december bounds, got %s..%s", start, end)
	}
}

func TestPayrollPeriodLabel(t *testing.T) {
	period := PayrollPeriod{Month: 3, Year: 2025}
	if got := period.Label(); got != "2025-03" {
		t.Errorf("expected 2025-03, got %s", got)
	}
}
