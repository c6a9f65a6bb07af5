package Models

import "testing"

func TestOrderResolvedAllCompleted(t *testing.T) {
	sessions := []Session{
		{State: SessionCompleted},
		{State: SessionHomePlan},
		{State: SessionCompleted},
	}
	if !OrderResolved(sessions) {
		t.Errorf("expected resolved")
	}
}

func TestOrderResolvedPendingScheduled(t *testing.T) {
	sessions := []Session{
		{State: SessionCompleted},
		{State: SessionScheduled},
	}
	if OrderResolved(sessions) {
		t.Errorf("expected unresolved while a session is programada")
	}
}

func TestOrderResolvedCancelledWithoutReschedule(t *testing.T) {
	sessions := []Session{
		{State: SessionCompleted},
		{State: SessionCancelled},
	}
	if OrderResolved(sessions) {
		t.Errorf("expected unresolved while a cancellation awaits reschedule")
	}
}

func TestOrderResolvedCancelledWithReschedule(t *testing.T) {
	successor := uint(7)
	sessions := []Session{
		{State: SessionCompleted},
		{State: SessionRescheduled},
		{State: SessionCancelled, RescheduledTo: &successor},
	}
	if !OrderResolved(sessions) {
		t.Errorf("expected resolved once the cancellation is linked")
	}
}

func TestOrderResolvedEmpty(t *testing.T) {
	if !OrderResolved(nil) {
		t.Errorf("expected an order with no sessions to count as resolved")
	}
}

func TestCanCloseResolvedOrder(t *testing.T) {
	order := MedicalOrder{State: OrderActive}
	sessions := []Session{{State: SessionCompleted}, {State: SessionHomePlan}}
	if err := order.CanClose(sessions, false); err != nil {
		t.Errorf("expected nil for resolved active order, got %v", err)
	}
}

func TestCanCloseUnresolvedOrderNeedsForce(t *testing.T) {
	order := MedicalOrder{State: OrderActive}
	sessions := []Session{{State: SessionCompleted}, {State: SessionScheduled}}
	if err := order.CanClose(sessions, false); err != ErrOrderUnresolved {
		t.Errorf("expected ErrOrderUnresolved, got %v", err)
	}
	if err := order.CanClose(sessions, true); err != nil {
		t.Errorf("expected nil with force, got %v", err)
	}
}

func TestCanCloseRejectsClosedOrder(t *testing.T) {
	order := MedicalOrder{State: OrderClosed}
	if err := order.CanClose(nil, true); err != ErrOrderNotActive {
		t.Errorf("expected ErrOrderNotActive, got %v", err)
	}
}

func TestCanCreateInitialEvaluation(t *testing.T) {
	order := MedicalOrder{TherapistID: 4, InitialTherapistID: 4}
	if err := order.CanCreateInitialEvaluation(4); err != nil {
		t.Errorf("original therapist: expected nil, got %v", err)
	}
	if err := order.CanCreateInitialEvaluation(0); err != ErrNotInitialTherapist {
		t.Errorf("no therapist profile: expected ErrNotInitialTherapist, got %v", err)
	}
}

func TestCanCreateInitialEvaluationAfterTransfer(t *testing.T) {
	// A transfer moves TherapistID but the intake still belongs to the
	// therapist the order started with.
	order := MedicalOrder{TherapistID: 9, InitialTherapistID: 4}
	if err := order.CanCreateInitialEvaluation(9); err != ErrNotInitialTherapist {
		t.Errorf("new therapist: expected ErrNotInitialTherapist, got %v", err)
	}
	if err := order.CanCreateInitialEvaluation(4); err != nil {
		t.Errorf("original therapist: expected nil, got %v", err)
	}
}

func TestCanCreateInitialEvaluationLegacyOrder(t *testing.T) {
	// Rows created before the original assignment was recorded fall back to
	// the current therapist.
	order := MedicalOrder{TherapistID: 4}
	if err := order.CanCreateInitialEvaluation(4); err != nil {
		t.Errorf("expected fallback to current therapist, got %v", err)
	}
}
