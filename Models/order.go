package Models

import (
	"errors"

	"gorm.io/gorm"
)

const (
	OrderActive = "activa"
	OrderClosed = "cerrada"
)

var (
	ErrOrderNotActive      = errors.New("order is already closed")
	ErrOrderUnresolved     = errors.New("order still has scheduled sessions or cancellations pending reschedule")
	ErrNotInitialTherapist = errors.New("only the originally assigned therapist can create the initial evaluation")
)

const (
	LocationIntramural = "intramural"
	LocationHome       = "domiciliaria"
)

// MedicalOrder is a prescribed package of sessions for one patient,
// specialty and therapist. CompletedSessions never exceeds TotalSessions.
// InitialTherapistID keeps the therapist the order was created with;
// transfers move TherapistID but never this field.
type MedicalOrder struct {
	gorm.Model
	PatientID          uint      `json:"patient_id"`
	TherapistID        uint      `json:"therapist_id"`
	InitialTherapistID uint      `json:"initial_therapist_id"`
	Specialty          string    `json:"specialty"`
	OrderCode          string    `json:"order_code"`
	Diagnosis          string    `json:"diagnosis"`
	TotalSessions      uint      `json:"total_sesiones"`
	CompletedSessions  uint      `json:"sesiones_completadas"`
	LocationType       string    `json:"location_type"`
	State              string    `json:"state"`
	Sessions           []Session `json:"sessions"`
}

// CanClose guards the administrative close. An active order with unresolved
// sessions only closes when force is set; a closed order never closes twice.
func (o *MedicalOrder) CanClose(sessions []Session, force bool) error {
	if o.State != OrderActive {
		return ErrOrderNotActive
	}
	if !force && !OrderResolved(sessions) {
		return ErrOrderUnresolved
	}
	return nil
}

// CanCreateInitialEvaluation checks the caller against the therapist the
// order was originally assigned to. Orders created before the field existed
// fall back to the current assignment.
func (o *MedicalOrder) CanCreateInitialEvaluation(therapistID uint) error {
	owner := o.InitialTherapistID
	if owner == 0 {
		owner = o.TherapistID
	}
	if therapistID == 0 || therapistID != owner {
		return ErrNotInitialTherapist
	}
	return nil
}

// Resolved reports whether every session of the order has left the
// scheduled pipeline: nothing is programada and no cancellation is still
// waiting for a reschedule.
func OrderResolved(sessions []Session) bool {
	for _, session := range sessions {
		if session.State == SessionScheduled {
			return false
		}
		if session.State == SessionCancelled && session.RescheduledTo == nil {
			return false
		}
	}
	return true
}
