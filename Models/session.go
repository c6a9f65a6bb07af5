package Models

import (
	"errors"

	"gorm.io/gorm"
)

const (
	SessionScheduled   = "programada"
	SessionCompleted   = "completada"
	SessionCancelled   = "cancelada"
	SessionRescheduled = "reprogramada"
	SessionHomePlan    = "plan_casero"
)

var (
	ErrNotAssignedTherapist = errors.New("only the therapist assigned to the order can update this session")
	ErrInvalidTransition    = errors.New("session is not in a state that allows this transition")
	ErrEvolutionRequired    = errors.New("an evolution must be recorded before closing the session")
	ErrClosureRequired      = errors.New("the last session of an order requires a closure evolution")
	ErrEvaluationRequired   = errors.New("the first session of an order requires an initial evaluation")
	ErrCancelReasonRequired = errors.New("a cancellation reason is required")
	ErrHomePlanBoundary     = errors.New("first and last sessions cannot be marked as plan casero")
	ErrHomePlanPredecessor  = errors.New("the previous session must be completed before marking plan casero")
	ErrAlreadyRescheduled   = errors.New("session already has a reschedule successor")
	ErrNotCancelled         = errors.New("only cancelled sessions can be rescheduled")
)

// Session is one scheduled occurrence within a medical order. Date and times
// are wall-clock strings, no timezone conversion.
type Session struct {
	gorm.Model
	MedicalOrderID  uint   `json:"medical_order_id"`
	SequenceNumber  uint   `json:"sequence_number"`
	Date            string `json:"date"`       // 2006-01-02
	StartTime       string `json:"start_time"` // 15:04
	EndTime         string `json:"end_time"`
	LocationType    string `json:"location_type"`
	State           string `json:"state"`
	CancelReason    string `json:"cancel_reason"`
	ReminderSent    bool   `json:"reminder_sent"`
	RescheduledFrom *uint  `json:"reprogramada_de" gorm:"default:null"`
	RescheduledTo   *uint  `json:"reprogramada_a" gorm:"default:null"`
}

// TransitionContext carries everything the guards need that does not live on
// the session row itself. Handlers build it from the order, the caller's
// therapist profile and the sibling sessions.
type TransitionContext struct {
	ActorTherapistID     uint
	OrderTherapistID     uint
	HasEvolution         bool
	EvolutionIsClosure   bool
	HasInitialEvaluation bool
	CancelReason         string
	IsFirst              bool
	IsLast               bool
	PredecessorState     string
}

// CanTransition checks every guard for moving the session out of programada.
// It is a pure precondition check: callers must run it before writing and the
// database row is re-read inside the transaction that applies the change.
func (s *Session) CanTransition(target string, ctx TransitionContext) error {
	if s.State != SessionScheduled {
		return ErrInvalidTransition
	}
	if ctx.ActorTherapistID == 0 || ctx.ActorTherapistID != ctx.OrderTherapistID {
		// Admins are barred here on purpose: clinical closure belongs to
		// the treating therapist only.
		return ErrNotAssignedTherapist
	}

	switch target {
	case SessionCompleted:
		if !ctx.HasEvolution {
			return ErrEvolutionRequired
		}
		if ctx.IsFirst && !ctx.HasInitialEvaluation {
			return ErrEvaluationRequired
		}
		if ctx.IsLast && !ctx.EvolutionIsClosure {
			return ErrClosureRequired
		}
		return nil
	case SessionHomePlan:
		if ctx.IsFirst || ctx.IsLast {
			return ErrHomePlanBoundary
		}
		if ctx.PredecessorState != SessionCompleted && ctx.PredecessorState != SessionHomePlan {
			return ErrHomePlanPredecessor
		}
		if !ctx.HasEvolution {
			return ErrEvolutionRequired
		}
		return nil
	case SessionCancelled:
		if ctx.CancelReason == "" {
			return ErrCancelReasonRequired
		}
		return nil
	default:
		// reprogramada is never a direct transition, it is produced by
		// the reschedule flow on a cancelled session.
		return ErrInvalidTransition
	}
}

// CanReschedule guards the admin reschedule flow: only a cancelled session
// that has never been linked to a successor qualifies.
func (s *Session) CanReschedule() error {
	if s.State != SessionCancelled {
		return ErrNotCancelled
	}
	if s.RescheduledTo != nil {
		return ErrAlreadyRescheduled
	}
	return nil
}
