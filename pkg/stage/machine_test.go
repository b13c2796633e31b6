package stage

import (
	"testing"

	"shadowwork-be/pkg/signal"
)

func TestAdvanceShadow(t *testing.T) {
	m := NewMachine(2, 2, nil)

	tests := []struct {
		name       string
		sig        signal.Result
		start      State
		wantStage  Stage
		wantStreak int
	}{
		{
			name:       "defensive stays in shadow under cap",
			sig:        signal.Result{Defensive: true},
			start:      State{Stage: Shadow},
			wantStage:  Shadow,
			wantStreak: 1,
		},
		{
			name:       "acknowledgement moves to truth and resets streak",
			sig:        signal.Result{Acknowledged: true},
			start:      State{Stage: Shadow, ShadowStreak: 1},
			wantStage:  Truth,
			wantStreak: 0,
		},
		{
			name:       "defensive wins over simultaneous acknowledgement under cap",
			sig:        signal.Result{Defensive: true, Acknowledged: true},
			start:      State{Stage: Shadow},
			wantStage:  Shadow,
			wantStreak: 1,
		},
		{
			name:       "neutral turn stays in shadow",
			sig:        signal.Result{},
			start:      State{Stage: Shadow},
			wantStage:  Shadow,
			wantStreak: 1,
		},
		{
			name:       "streak past cap forces truth even while defensive",
			sig:        signal.Result{Defensive: true},
			start:      State{Stage: Shadow, ShadowStreak: 2},
			wantStage:  Truth,
			wantStreak: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, outcome := m.Advance(tt.start, tt.sig)
			if next.Stage != tt.wantStage {
				t.Errorf("stage = %s, want %s", next.Stage, tt.wantStage)
			}
			if next.ShadowStreak != tt.wantStreak {
				t.Errorf("shadow streak = %d, want %d", next.ShadowStreak, tt.wantStreak)
			}
			if outcome.Stage != tt.wantStage {
				t.Errorf("outcome stage = %s, want %s", outcome.Stage, tt.wantStage)
			}
		})
	}
}

// A session that only ever produces defensive turns must still reach
// truth: the machine may not stall in shadow forever.
func TestAdvanceAntiStall(t *testing.T) {
	m := NewMachine(2, 2, nil)
	st := NewState()

	for turn := 1; turn <= 3; turn++ {
		var outcome Outcome
		st, outcome = m.Advance(st, signal.Result{Defensive: true})
		if turn < 3 && outcome.Stage != Shadow {
			t.Fatalf("turn %d: stage = %s, want shadow", turn, outcome.Stage)
		}
		if turn == 3 {
			if outcome.Stage != Truth {
				t.Fatalf("turn 3: stage = %s, want forced truth", outcome.Stage)
			}
			if !outcome.Transitioned {
				t.Fatal("turn 3: forced transition not reported")
			}
		}
	}
}

func TestAdvanceTruth(t *testing.T) {
	m := NewMachine(2, 2, nil)

	// First readiness signal accumulates but does not transition.
	st := State{Stage: Truth}
	st, outcome := m.Advance(st, signal.Result{Ready: true})
	if outcome.Stage != Truth || outcome.Transitioned {
		t.Fatalf("first ready turn: outcome = %+v, want truth without transition", outcome)
	}
	if st.Readiness != 1 {
		t.Fatalf("readiness = %d, want 1", st.Readiness)
	}

	// A non-ready turn in between does not reset accumulated readiness.
	st, outcome = m.Advance(st, signal.Result{})
	if outcome.Stage != Truth || st.Readiness != 1 {
		t.Fatalf("neutral turn: outcome = %+v readiness = %d", outcome, st.Readiness)
	}

	// Second readiness signal reaches the threshold.
	st, outcome = m.Advance(st, signal.Result{Ready: true})
	if outcome.Stage != Integration || !outcome.Transitioned {
		t.Fatalf("second ready turn: outcome = %+v, want integration transition", outcome)
	}
	if st.Stage != Integration {
		t.Fatalf("stage = %s, want integration", st.Stage)
	}
}

func TestAdvanceIntegrationTerminal(t *testing.T) {
	m := NewMachine(2, 2, nil)
	st := State{Stage: Integration}

	for _, sig := range []signal.Result{
		{},
		{Defensive: true},
		{Acknowledged: true},
		{Ready: true},
	} {
		next, outcome := m.Advance(st, sig)
		if next.Stage != Integration || outcome.Stage != Integration {
			t.Fatalf("integration not terminal for %+v: next=%+v outcome=%+v", sig, next, outcome)
		}
	}
}

func TestAdvanceCrisis(t *testing.T) {
	m := NewMachine(2, 2, nil)

	for _, start := range []State{
		{Stage: Shadow, ShadowStreak: 1, Defensiveness: 2},
		{Stage: Truth, Readiness: 1},
		{Stage: Integration},
	} {
		next, outcome := m.Advance(start, signal.Result{Crisis: true, Defensive: true, Ready: true})
		if !outcome.Crisis {
			t.Fatalf("crisis not reported from %s", start.Stage)
		}
		if next != start {
			t.Fatalf("crisis turn mutated state: %+v -> %+v", start, next)
		}
		if outcome.Stage != start.Stage {
			t.Fatalf("crisis outcome stage = %s, want %s", outcome.Stage, start.Stage)
		}
	}
}

// Advance must produce a valid stage for any input, including states
// loaded from corrupted storage.
func TestAdvanceTotality(t *testing.T) {
	m := NewMachine(2, 2, nil)

	next, outcome := m.Advance(State{Stage: Stage("bogus")}, signal.Result{})
	if !next.Stage.Valid() {
		t.Fatalf("next stage invalid: %s", next.Stage)
	}
	if outcome.Stage != Shadow {
		t.Fatalf("unknown stage should reset to shadow, got %s", outcome.Stage)
	}
}

func TestAdvanceCounters(t *testing.T) {
	m := NewMachine(2, 2, nil)

	st := State{Stage: Shadow}
	st, _ = m.Advance(st, signal.Result{Defensive: true, Acknowledged: true})
	if st.Defensiveness != 1 || st.Acknowledgement != 1 {
		t.Fatalf("counters = %+v, want both incremented", st)
	}

	// Crisis turns are excluded from counter accounting.
	before := st
	st, _ = m.Advance(st, signal.Result{Crisis: true, Defensive: true})
	if st != before {
		t.Fatalf("crisis turn changed counters: %+v -> %+v", before, st)
	}
}

func TestNewMachineDefaults(t *testing.T) {
	m := NewMachine(0, -1, nil)
	if m.MaxShadowTurns != DefaultMaxShadowTurns {
		t.Errorf("MaxShadowTurns = %d, want %d", m.MaxShadowTurns, DefaultMaxShadowTurns)
	}
	if m.ReadinessThreshold != DefaultReadinessThreshold {
		t.Errorf("ReadinessThreshold = %d, want %d", m.ReadinessThreshold, DefaultReadinessThreshold)
	}
}
