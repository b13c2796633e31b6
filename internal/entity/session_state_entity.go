package entity

import (
	"time"

	"github.com/google/uuid"

	"shadowwork-be/pkg/stage"
)

// SessionState is the per-(user, session) record the dialogue core
// mutates once per turn. Counters only grow within a session; the stage
// only moves shadow -> truth -> integration. Retention and deletion are
// an external policy concern, never this subsystem's.
type SessionState struct {
	UserId          uuid.UUID
	SessionId       uuid.UUID
	Stage           stage.Stage
	Defensiveness   int
	Acknowledgement int
	Readiness       int
	ShadowStreak    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewSessionState is the default-construction rule for a session's first
// turn: shadow stage, zero counters.
func NewSessionState(userId, sessionId uuid.UUID, now time.Time) *SessionState {
	return &SessionState{
		UserId:    userId,
		SessionId: sessionId,
		Stage:     stage.Shadow,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MachineState maps the entity onto the stage machine's working state.
func (s *SessionState) MachineState() stage.State {
	return stage.State{
		Stage:           s.Stage,
		Defensiveness:   s.Defensiveness,
		Acknowledgement: s.Acknowledgement,
		Readiness:       s.Readiness,
		ShadowStreak:    s.ShadowStreak,
	}
}

// ApplyMachineState writes the machine's result back onto the entity.
func (s *SessionState) ApplyMachineState(st stage.State, now time.Time) {
	s.Stage = st.Stage
	s.Defensiveness = st.Defensiveness
	s.Acknowledgement = st.Acknowledgement
	s.Readiness = st.Readiness
	s.ShadowStreak = st.ShadowStreak
	s.UpdatedAt = now
}
