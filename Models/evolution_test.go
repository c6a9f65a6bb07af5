package Models

import (
	"testing"
	"time"

	"gorm.io/gorm"
)

func evolutionCreatedAt(createdAt time.Time) Evolution {
	return Evolution{Model: gorm.Model{CreatedAt: createdAt}}
}

func TestEvolutionEditableInsideWindow(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	evolution := evolutionCreatedAt(now.Add(-23 * time.Hour))
	if !evolution.Editable(now) {
		t.Errorf("expected editable at 23h")
	}
}

func TestEvolutionNotEditableAtExactlyWindow(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	evolution := evolutionCreatedAt(now.Add(-24 * time.Hour))
	if evolution.Editable(now) {
		t.Errorf("expected not editable at exactly 24h")
	}
}

func TestEvolutionNotEditableAfterWindow(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	evolution := evolutionCreatedAt(now.Add(-48 * time.Hour))
	if evolution.Editable(now) {
		t.Errorf("expected not editable at 48h")
	}
}

func TestEvolutionLockedFlagBlocksEdit(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	evolution := evolutionCreatedAt(now.Add(-1 * time.Hour))
	evolution.Locked = true
	if evolution.Editable(now) {
		t.Errorf("expected locked evolution not editable even inside window")
	}
}

func TestEvolutionRemainingHours(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	evolution := evolutionCreatedAt(now.Add(-6 * time.Hour))
	if got := evolution.RemainingHours(now); got != 18 {
		t.Errorf("expected 18 remaining hours, got %v", got)
	}

	evolution = evolutionCreatedAt(now.Add(-30 * time.Hour))
	if got := evolution.RemainingHours(now); got != 0 {
		t.Errorf("expected clamp at 0, got %v", got)
	}
}
