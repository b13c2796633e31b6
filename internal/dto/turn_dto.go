package dto

import (
	"github.com/google/uuid"
)

type TurnRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Text      string    `json:"text" validate:"required"`
	Symptom   string    `json:"symptom,omitempty"`
	Language  string    `json:"language,omitempty"`
}

// MatchedContextDTO identifies the content chunk that grounded the reply.
type MatchedContextDTO struct {
	Id         string  `json:"id"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

type TurnResponse struct {
	Stage          string             `json:"stage"`
	Reply          string             `json:"reply"`
	Crisis         bool               `json:"crisis,omitempty"`
	MatchedContext *MatchedContextDTO `json:"matched_context,omitempty"`
	Warning        string             `json:"warning,omitempty"`
}

type RetrieveRequest struct {
	Text     string `json:"text" validate:"required"`
	Stage    string `json:"stage,omitempty"`
	Symptom  string `json:"symptom,omitempty"`
	Language string `json:"language,omitempty"`
	TopK     int    `json:"top_k,omitempty" validate:"omitempty,min=1,max=20"`
}

type RetrieveMatchDTO struct {
	Id         string  `json:"id"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
	Text       string  `json:"text"`
}

type RetrieveResponse struct {
	Matches []RetrieveMatchDTO `json:"matches"`
}

type SessionStateResponse struct {
	SessionId       uuid.UUID `json:"session_id"`
	Stage           string    `json:"stage"`
	Defensiveness   int       `json:"defensiveness"`
	Acknowledgement int       `json:"acknowledgement"`
	Readiness       int       `json:"readiness"`
	ShadowStreak    int       `json:"shadow_streak"`
}
