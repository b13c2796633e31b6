package service

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"shadowwork-be/internal/constant"
	"shadowwork-be/internal/dto"
	"shadowwork-be/internal/entity"
	"shadowwork-be/internal/repository/contract"
	"shadowwork-be/internal/repository/memory"
	"shadowwork-be/pkg/llm"
	"shadowwork-be/pkg/prompt"
	"shadowwork-be/pkg/retrieval"
	"shadowwork-be/pkg/signal"
	"shadowwork-be/pkg/stage"
)

// ITurnService is the per-turn orchestrator: it owns the order in which
// detection, stage transition, retrieval, generation and persistence
// happen for one user message.
type ITurnService interface {
	SendTurn(ctx context.Context, userId uuid.UUID, req *dto.TurnRequest) (*dto.TurnResponse, error)
	Retrieve(ctx context.Context, req *dto.RetrieveRequest) (*dto.RetrieveResponse, error)
	GetSessionState(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
}

type turnService struct {
	sessionStore      contract.SessionStateRepository
	detector          *signal.Detector
	machine           *stage.Machine
	engine            *retrieval.Engine
	promptBuilder     *prompt.Builder
	llmProvider       llm.Provider
	turnGuard         *memory.TurnGuard
	defaultLanguage   string
	generationTimeout time.Duration
	turnLogger        *log.Logger
}

func NewTurnService(
	sessionStore contract.SessionStateRepository,
	detector *signal.Detector,
	machine *stage.Machine,
	engine *retrieval.Engine,
	promptBuilder *prompt.Builder,
	llmProvider llm.Provider,
	defaultLanguage string,
	generationTimeout time.Duration,
) ITurnService {
	if defaultLanguage == "" {
		defaultLanguage = constant.DefaultLanguage
	}
	if generationTimeout <= 0 {
		generationTimeout = 30 * time.Second
	}
	return &turnService{
		sessionStore:      sessionStore,
		detector:          detector,
		machine:           machine,
		engine:            engine,
		promptBuilder:     promptBuilder,
		llmProvider:       llmProvider,
		turnGuard:         memory.NewTurnGuard(),
		defaultLanguage:   defaultLanguage,
		generationTimeout: generationTimeout,
		turnLogger:        initTurnLogger(),
	}
}

func initTurnLogger() *log.Logger {
	logPath := filepath.Join("logs", "turn.log")
	_ = os.MkdirAll(filepath.Dir(logPath), 0755)
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[TURN] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// SendTurn runs one full turn. Turns for the same session are serialized;
// every path out of this method returns a usable reply.
func (ts *turnService) SendTurn(ctx context.Context, userId uuid.UUID, req *dto.TurnRequest) (*dto.TurnResponse, error) {
	language := req.Language
	if language == "" {
		language = ts.defaultLanguage
	}

	unlock := ts.turnGuard.Lock(req.SessionId)
	defer unlock()

	state, err := ts.sessionStore.Load(ctx, userId, req.SessionId)
	if err != nil {
		// A failed load degrades to a fresh session rather than failing
		// the turn; the save at the end restores durability.
		ts.turnLogger.Printf("[WARN] session=%s state load failed, starting fresh: %v", req.SessionId, err)
		state = nil
	}
	if state == nil {
		state = entity.NewSessionState(userId, req.SessionId, time.Now())
	}

	sig := ts.detector.Detect(req.Text, language)
	next, outcome := ts.machine.Advance(state.MachineState(), sig)

	// The crisis path depends on nothing: fixed reply, state untouched,
	// nothing persisted.
	if outcome.Crisis {
		ts.turnLogger.Printf("[CRISIS] session=%s stage=%s", req.SessionId, outcome.Stage)
		return &dto.TurnResponse{
			Stage:  outcome.Stage.String(),
			Crisis: true,
			Reply:  constant.SafetyMessage(language),
		}, nil
	}

	reply, matched := ts.generateReply(ctx, req, outcome.Stage, language)

	res := &dto.TurnResponse{
		Stage:          outcome.Stage.String(),
		Reply:          reply,
		MatchedContext: matched,
	}

	// A cancelled request must not leave a half-applied turn behind.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	state.ApplyMachineState(next, time.Now())
	if err := ts.sessionStore.Save(ctx, state); err != nil {
		// The user already has their reply; losing one state write costs
		// at most a repeated stage, so surface it as a warning.
		ts.turnLogger.Printf("[WARN] session=%s state save failed: %v", req.SessionId, err)
		res.Warning = "session state could not be saved; this turn may not count toward your progress"
	}

	return res, nil
}

// generateReply retrieves supporting content for the stage and asks the
// model for the reply. Retrieval misses and generation failures both
// degrade to canned messages, never to an error.
func (ts *turnService) generateReply(ctx context.Context, req *dto.TurnRequest, s stage.Stage, language string) (string, *dto.MatchedContextDTO) {
	query := retrieval.Query{
		Text:     req.Text,
		Stage:    &s,
		Language: language,
	}
	if req.Symptom != "" {
		query.Symptom = &req.Symptom
	}

	matches := ts.engine.Retrieve(ctx, query, retrieval.DefaultTopK)
	if len(matches) == 0 {
		ts.turnLogger.Printf("[TURN] session=%s no retrieval match (stage=%s lang=%s)", req.SessionId, s, language)
		return constant.NoMatchMessage(language), nil
	}

	best := matches[0]
	contextText := best.Chunk.Text.ForStage(s)
	matched := &dto.MatchedContextDTO{
		Id:         best.Chunk.ID,
		Title:      best.Chunk.Title,
		Similarity: best.Score,
	}

	p := ts.promptBuilder.Build(language, s, contextText, req.Text)

	genCtx, cancel := context.WithTimeout(ctx, ts.generationTimeout)
	defer cancel()

	reply, err := ts.llmProvider.Generate(genCtx, p)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			// Let SendTurn's cancellation check decide what to do.
			return "", matched
		}
		ts.turnLogger.Printf("[ERROR] session=%s generation failed: %v", req.SessionId, err)
		return constant.TechnicalDifficultyMessage(language), matched
	}

	ts.turnLogger.Printf("[TURN] session=%s stage=%s chunk=%s score=%.4f", req.SessionId, s, best.Chunk.ID, best.Score)
	return reply, matched
}

// Retrieve exposes the ranking directly, for content authors tuning tags
// and for debugging why a turn matched what it did.
func (ts *turnService) Retrieve(ctx context.Context, req *dto.RetrieveRequest) (*dto.RetrieveResponse, error) {
	language := req.Language
	if language == "" {
		language = ts.defaultLanguage
	}

	query := retrieval.Query{
		Text:     req.Text,
		Language: language,
	}

	resolvedStage := stage.Truth
	if req.Stage != "" {
		s, err := stage.Parse(req.Stage)
		if err != nil {
			return nil, err
		}
		query.Stage = &s
		resolvedStage = s
	}
	if req.Symptom != "" {
		query.Symptom = &req.Symptom
	}

	matches := ts.engine.Retrieve(ctx, query, req.TopK)

	res := &dto.RetrieveResponse{Matches: make([]dto.RetrieveMatchDTO, len(matches))}
	for i, m := range matches {
		res.Matches[i] = dto.RetrieveMatchDTO{
			Id:         m.Chunk.ID,
			Title:      m.Chunk.Title,
			Similarity: m.Score,
			Text:       m.Chunk.Text.ForStage(resolvedStage),
		}
	}
	return res, nil
}

func (ts *turnService) GetSessionState(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	state, err := ts.sessionStore.Load(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, nil
	}
	return &dto.SessionStateResponse{
		SessionId:       state.SessionId,
		Stage:           state.Stage.String(),
		Defensiveness:   state.Defensiveness,
		Acknowledgement: state.Acknowledgement,
		Readiness:       state.Readiness,
		ShadowStreak:    state.ShadowStreak,
	}, nil
}
