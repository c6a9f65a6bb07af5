package Models

import (
	"time"

	"ErpClinico/Constants"

	"gorm.io/gorm"
)

// Evolution is the clinical note attached 1:1 to a completed or plan_casero
// session. It is never deleted; after the edit window it can only be read.
type Evolution struct {
	gorm.Model
	SessionID    uint       `json:"session_id" gorm:"unique"`
	TherapistID  uint       `json:"therapist_id"`
	Content      string     `json:"content"`
	Objectives   string     `json:"objectives"`
	Observations string     `json:"observations"`
	IsClosure    bool       `json:"es_cierre"`
	Locked       bool       `json:"bloqueado"`
	LockedAt     *time.Time `json:"locked_at" gorm:"default:null"`
}

// Editable enforces the 24-hour window from creation. The stored Locked flag
// and the live clock check both block edits, so a missed sweep or a skewed
// clock cannot reopen a note.
func (e *Evolution) Editable(now time.Time) bool {
	if e.Locked {
		return false
	}
	return now.Sub(e.CreatedAt) < Constants.EvolutionEditWindowHours*time.Hour
}

// RemainingHours is display data for the dashboard countdown.
func (e *Evolution) RemainingHours(now time.Time) float64 {
	elapsed := now.Sub(e.CreatedAt).Hours()
	remaining := Constants.EvolutionEditWindowHours - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// InitialEvaluation is the intake record of a medical order. Only the
// originally assigned therapist creates it and no update path exists.
type InitialEvaluation struct {
	gorm.Model
	MedicalOrderID uint   `json:"medical_order_id" gorm:"unique"`
	TherapistID    uint   `json:"therapist_id"`
	Anamnesis      string `json:"anamnesis"`
	Assessment     string `json:"assessment"`
	TreatmentGoals string `json:"treatment_goals"`
}
