package stage

import (
	"log"

	"shadowwork-be/pkg/signal"
)

// State is the machine's view of one session: the current stage plus the
// cumulative signal counters. The orchestrator maps this to and from the
// persisted session record.
type State struct {
	Stage           Stage
	Defensiveness   int
	Acknowledgement int
	Readiness       int
	ShadowStreak    int
}

// NewState returns the default state for a session's first turn.
func NewState() State {
	return State{Stage: Shadow}
}

// Outcome describes what one turn did to the session.
type Outcome struct {
	Stage        Stage // stage the reply should be generated for
	Crisis       bool  // safety path requested; state was left untouched
	Transitioned bool  // stage changed this turn
}

// Machine computes stage transitions. It is total: any (State, Result)
// pair produces a valid next state, and a session cannot stall in shadow
// past MaxShadowTurns consecutive turns.
type Machine struct {
	MaxShadowTurns     int
	ReadinessThreshold int

	logger *log.Logger
}

const (
	DefaultMaxShadowTurns     = 2
	DefaultReadinessThreshold = 2
)

// NewMachine creates a machine. Non-positive limits fall back to the
// defaults.
func NewMachine(maxShadowTurns, readinessThreshold int, logger *log.Logger) *Machine {
	if maxShadowTurns <= 0 {
		maxShadowTurns = DefaultMaxShadowTurns
	}
	if readinessThreshold <= 0 {
		readinessThreshold = DefaultReadinessThreshold
	}
	return &Machine{
		MaxShadowTurns:     maxShadowTurns,
		ReadinessThreshold: readinessThreshold,
		logger:             logger,
	}
}

// Advance applies one turn's signals and returns the updated state.
//
// Precedence:
//  1. crisis short-circuits: the state is returned unchanged (the turn is
//     excluded from streak and counter accounting) and the caller must take
//     the safety path.
//  2. shadow: defensiveness keeps the user in shadow while the streak is
//     within MaxShadowTurns; acknowledgement moves to truth; exceeding the
//     streak cap forces truth regardless of signals.
//  3. truth: moves to integration once accumulated readiness reaches
//     ReadinessThreshold.
//  4. integration is terminal; a new topic starts a new session.
func (m *Machine) Advance(st State, sig signal.Result) (State, Outcome) {
	if sig.Crisis {
		m.logf("[STAGE] Crisis override, stage held at %s", st.Stage)
		return st, Outcome{Stage: st.Stage, Crisis: true}
	}

	next := st
	if sig.Defensive {
		next.Defensiveness++
	}
	if sig.Acknowledged {
		next.Acknowledgement++
	}

	switch st.Stage {
	case Shadow:
		next.ShadowStreak++
		switch {
		case sig.Defensive && next.ShadowStreak <= m.MaxShadowTurns:
			// Defensiveness wins over simultaneous acknowledgement
			// while under the cap.
			return next, Outcome{Stage: Shadow}
		case sig.Acknowledged:
			next.Stage = Truth
			next.ShadowStreak = 0
			m.logf("[STAGE] shadow -> truth (acknowledged)")
			return next, Outcome{Stage: Truth, Transitioned: true}
		case next.ShadowStreak > m.MaxShadowTurns:
			// Anti-stall rule: forward progress is guaranteed no
			// matter what the user keeps saying.
			next.Stage = Truth
			next.ShadowStreak = 0
			m.logf("[STAGE] shadow -> truth (forced after %d turns)", m.MaxShadowTurns)
			return next, Outcome{Stage: Truth, Transitioned: true}
		default:
			return next, Outcome{Stage: Shadow}
		}

	case Truth:
		if sig.Ready {
			next.Readiness++
		}
		if next.Readiness >= m.ReadinessThreshold {
			next.Stage = Integration
			m.logf("[STAGE] truth -> integration (readiness %d)", next.Readiness)
			return next, Outcome{Stage: Integration, Transitioned: true}
		}
		return next, Outcome{Stage: Truth}

	case Integration:
		return next, Outcome{Stage: Integration}

	default:
		// Unreachable stages load as a fresh shadow session rather
		// than failing the turn.
		m.logf("[STAGE] unknown stage %q, resetting to shadow", st.Stage)
		next = NewState()
		return next, Outcome{Stage: Shadow, Transitioned: true}
	}
}

func (m *Machine) logf(format string, args ...interface{}) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}
