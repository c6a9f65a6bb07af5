package Models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	PeriodOpen   = "abierto"
	PeriodClosed = "cerrado"
	PeriodPaid   = "pagado"
)

var (
	ErrPeriodNotOpen   = errors.New("payroll period is no longer open")
	ErrPeriodNotClosed = errors.New("payroll period must be closed before it can be paid")
)

// PayrollPeriod is a (month, year) window. Its state only moves forward:
// abierto -> cerrado -> pagado.
type PayrollPeriod struct {
	gorm.Model
	Month int    `json:"month" gorm:"uniqueIndex:idx_period_month_year"`
	Year  int    `json:"year" gorm:"uniqueIndex:idx_period_month_year"`
	State string `json:"state"`
}

// Bounds returns the period's date range as inclusive wall-clock date
// strings, matching the format sessions store their Date in.
func (p *PayrollPeriod) Bounds() (string, string) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func (p *PayrollPeriod) Label() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// PayrollDetail rows are derived data, fully replaced each time the
// aggregator runs while the period is abierto.
type PayrollDetail struct {
	gorm.Model
	PayrollPeriodID    uint    `json:"payroll_period_id"`
	TherapistID        uint    `json:"therapist_id"`
	TherapistName      string  `json:"therapist_name"`
	SessionsIntramural uint    `json:"sesiones_intramural"`
	SessionsHome       uint    `json:"sesiones_domiciliaria"`
	HoursIntramural    float64 `json:"horas_intramural"`
	HoursHome          float64 `json:"horas_domiciliaria"`
	SubtotalIntramural float64 `json:"subtotal_intramural"`
	SubtotalHome       float64 `json:"subtotal_domiciliaria"`
	TotalGross         float64 `json:"total_bruto"`
}
