package Models

import "testing"

func assignedCtx() TransitionContext {
	return TransitionContext{
		ActorTherapistID: 4,
		OrderTherapistID: 4,
	}
}

func TestCanTransitionRejectsNonScheduled(t *testing.T) {
	for _, state := range []string{SessionCompleted, SessionCancelled, SessionRescheduled, SessionHomePlan} {
		session := Session{State: state}
		ctx := assignedCtx()
		ctx.HasEvolution = true
		if err := session.CanTransition(SessionCompleted, ctx); err != ErrInvalidTransition {
			t.Errorf("state %s: expected ErrInvalidTransition, got %v", state, err)
		}
	}
}

func TestCanTransitionRejectsOtherTherapist(t *testing.T) {
	session := Session{State: SessionScheduled}
	ctx := TransitionContext{ActorTherapistID: 9, OrderTherapistID: 4, HasEvolution: true}
	if err := session.CanTransition(SessionCompleted, ctx); err != ErrNotAssignedTherapist {
		t.Errorf("expected ErrNotAssignedTherapist, got %v", err)
	}
}

func TestCanTransitionRejectsNonTherapistActor(t *testing.T) {
	// An admin without a therapist profile resolves to actor id 0 and must
	// not be able to close sessions, even on an order with therapist id 0
	// garbage data.
	session := Session{State: SessionScheduled}
	ctx := TransitionContext{ActorTherapistID: 0, OrderTherapistID: 0, HasEvolution: true}
	if err := session.CanTransition(SessionCompleted, ctx); err != ErrNotAssignedTherapist {
		t.Errorf("expected ErrNotAssignedTherapist, got %v", err)
	}
}

func TestCanTransitionCompleteRequiresEvolution(t *testing.T) {
	session := Session{State: SessionScheduled}
	ctx := assignedCtx()
	if err := session.CanTransition(SessionCompleted, ctx); err != ErrEvolutionRequired {
		t.Errorf("expected ErrEvolutionRequired, got %v", err)
	}
	ctx.HasEvolution = true
	if err := session.CanTransition(SessionCompleted, ctx); err != nil {
		t.Errorf("expected nil with evolution, got %v", err)
	}
}

func TestCanTransitionFirstSessionRequiresEvaluation(t *testing.T) {
	session := Session{State: SessionScheduled, SequenceNumber: 1}
	ctx := assignedCtx()
	ctx.HasEvolution = true
	ctx.IsFirst = true
	if err := session.CanTransition(SessionCompleted, ctx); err != ErrEvaluationRequired {
		t.Errorf("expected ErrEvaluationRequired, got %v", err)
	}
	ctx.HasInitialEvaluation = true
	if err := session.CanTransition(SessionCompleted, ctx); err != nil {
		t.Errorf("expected nil with evaluation, got %v", err)
	}
}

func TestCanTransitionLastSessionRequiresClosure(t *testing.T) {
	session := Session{State: SessionScheduled, SequenceNumber: 10}
	ctx := assignedCtx()
	ctx.HasEvolution = true
	ctx.IsLast = true
	if err := session.CanTransition(SessionCompleted, ctx); err != ErrClosureRequired {
		t.Errorf("expected ErrClosureRequired, got %v", err)
	}
	ctx.EvolutionIsClosure = true
	if err := session.CanTransition(SessionCompleted, ctx); err != nil {
		t.Errorf("expected nil with closure evolution, got %v", err)
	}
}

func TestCanTransitionHomePlanBoundaries(t *testing.T) {
	session := Session{State: SessionScheduled}

	ctx := assignedCtx()
	ctx.HasEvolution = true
	ctx.PredecessorState = SessionCompleted

	ctx.IsFirst = true
	if err := session.CanTransition(SessionHomePlan, ctx); err != ErrHomePlanBoundary {
		t.Errorf("first session: expected ErrHomePlanBoundary, got %v", err)
	}

	ctx.IsFirst = false
	ctx.IsLast = true
	if err := session.CanTransition(SessionHomePlan, ctx); err != ErrHomePlanBoundary {
		t.Errorf("last session: expected ErrHomePlanBoundary, got %v", err)
	}

	ctx.IsLast = false
	if err := session.CanTransition(SessionHomePlan, ctx); err != nil {
		t.Errorf("middle session: expected nil, got %v", err)
	}
}

func TestCanTransitionHomePlanPredecessor(t *testing.T) {
	session := Session{State: SessionScheduled}
	ctx := assignedCtx()
	ctx.HasEvolution = true

	for _, state := range []string{SessionScheduled, SessionCancelled, ""} {
		ctx.PredecessorState = state
		if err := session.CanTransition(SessionHomePlan, ctx); err != ErrHomePlanPredecessor {
			t.Errorf("predecessor %q: expected ErrHomePlanPredecessor, got %v", state, err)
		}
	}
	for _, state := range []string{SessionCompleted, SessionHomePlan} {
		ctx.PredecessorState = state
		if err := session.CanTransition(SessionHomePlan, ctx); err != nil {
			t.Errorf("predecessor %q: expected nil, got %v", state, err)
		}
	}
}

func TestCanTransitionHomePlanRequiresEvolution(t *testing.T) {
	session := Session{State: SessionScheduled}
	ctx := assignedCtx()
	ctx.PredecessorState = SessionCompleted
	if err := session.CanTransition(SessionHomePlan, ctx); err != ErrEvolutionRequired {
		t.Errorf("expected ErrEvolutionRequired, got %v", err)
	}
}

func TestCanTransitionCancelRequiresReason(t *testing.T) {
	session := Session{State: SessionScheduled}
	ctx := assignedCtx()
	if err := session.CanTransition(SessionCancelled, ctx); err != ErrCancelReasonRequired {
		t.Errorf("expected ErrCancelReasonRequired, got %v", err)
	}
	ctx.CancelReason = "paciente enfermo"
	if err := session.CanTransition(SessionCancelled, ctx); err != nil {
		t.Errorf("expected nil with reason, got %v", err)
	}
}

func TestCanTransitionRejectsDirectReschedule(t *testing.T) {
	session := Session{State: SessionScheduled}
	ctx := assignedCtx()
	ctx.HasEvolution = true
	if err := session.CanTransition(SessionRescheduled, ctx); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCanReschedule(t *testing.T) {
	session := Session{State: SessionScheduled}
	if err := session.CanReschedule(); err != ErrNotCancelled {
		t.Errorf("scheduled: expected ErrNotCancelled, got %v", err)
	}

	session.State = SessionCancelled
	if err := session.CanReschedule(); err != nil {
		t.Errorf("cancelled: expected nil, got %v", err)
	}

	successor := uint(42)
	session.RescheduledTo = &successor
	if err := session.CanReschedule(); err != ErrAlreadyRescheduled {
		t.Errorf("linked: expected ErrAlreadyRescheduled, got %v", err)
	}
}
