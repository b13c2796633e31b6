package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shadowwork-be/internal/bootstrap"
	"shadowwork-be/internal/config"
	"shadowwork-be/internal/dto"
	"shadowwork-be/internal/server"
	"shadowwork-be/pkg/database"
)

// Full HTTP round trip through the fiber app with stub providers: a
// defensive turn, an acknowledgement, and two readiness turns walk one
// session from shadow to integration.
func TestTurnFlow(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("DB_CONNECTION_STRING not set; skipping integration test")
	}
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "default_secret")
	}

	// Keep the flow offline and session state out of the shared database.
	os.Setenv("EMBEDDING_PROVIDER", "stub")
	os.Setenv("LLM_PROVIDER", "stub")
	os.Setenv("SESSION_STORE", "memory")

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	require.NoError(t, err, "Failed to connect to DB")

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	userId := uuid.New()
	token := signTestToken(t, userId)
	sessionId := uuid.New()

	sendTurn := func(text string) *dto.TurnResponse {
		body, err := json.Marshal(dto.TurnRequest{
			SessionId: sessionId,
			Text:      text,
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/chat/v1/turn", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		var envelope struct {
			Success bool             `json:"success"`
			Data    dto.TurnResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		require.True(t, envelope.Success)
		return &envelope.Data
	}

	res := sendTurn("it's fine, nothing is wrong")
	assert.Equal(t, "shadow", res.Stage)

	res = sendTurn("I admit I keep running from this")
	assert.Equal(t, "truth", res.Stage)

	res = sendTurn("I am ready to look at it")
	assert.Equal(t, "truth", res.Stage)

	res = sendTurn("starting today I will sit with it")
	assert.Equal(t, "integration", res.Stage)
}

func TestTurnRejectsMissingToken(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("DB_CONNECTION_STRING not set; skipping integration test")
	}

	os.Setenv("EMBEDDING_PROVIDER", "stub")
	os.Setenv("LLM_PROVIDER", "stub")
	os.Setenv("SESSION_STORE", "memory")

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	require.NoError(t, err)

	container := bootstrap.NewContainer(db, cfg)
	app := server.New(cfg, container).GetApp()

	req := httptest.NewRequest("POST", "/api/chat/v1/turn", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func signTestToken(t *testing.T, userId uuid.UUID) string {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	require.NoError(t, err, fmt.Sprintf("Failed to sign token for %s", userId))
	return signed
}
