package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Validator Tests ---

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
		errMsg   string
	}{
		{"valid simple", "alice", false, ""},
		{"valid with digits", "alice99", false, ""},
		{"valid with separators", "a_l-i.ce", false, ""},
		{"empty", "", true, "username is required"},
		{"too short", "ab", true, "invalid username format"},
		{"too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true, "invalid username format"},
		{"spaces", "al ice", true, "invalid username format"},
		{"symbols", "alice!", true, "invalid username format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateGameID(t *testing.T) {
	tests := []struct {
		name    string
		gameID  string
		wantErr bool
	}{
		{"valid", "g1", false},
		{"valid with dash", "space-blaster", false},
		{"single char", "g", false},
		{"empty", "", true},
		{"uppercase", "Game1", true},
		{"leading dash", "-game", true},
		{"spaces", "my game", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGameID(tt.gameID)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("longenough"))
	require.NoError(t, ValidatePassword("12345678"))
	require.Error(t, ValidatePassword("short"))
	require.Error(t, ValidatePassword(""))
}

func TestValidatePositiveAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		wantErr bool
	}{
		{"positive", 100, false},
		{"one", 1, false},
		{"large amount", 999_999_999, false},
		{"zero", 0, true},
		{"negative", -100, true},
		{"min int64", -9223372036854775808, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositiveAmount(tt.amount)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "amount must be positive")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateItemName(t *testing.T) {
	require.NoError(t, ValidateItemName("sword"))
	require.Error(t, ValidateItemName(""))

	long := make([]byte, 129)
	for i := range long {
		long[i] = 'x'
	}
	require.Error(t, ValidateItemName(string(long)))
}

// --- AppError Tests ---

func TestAppError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := ErrNotFound("player", "abc-123")
		assert.Equal(t, "NOT_FOUND: player abc-123 not found", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := ErrInternal("database error", cause)
		assert.Contains(t, err.Error(), "INTERNAL_ERROR")
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ErrInternal("wrapped", cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestErrorFactories(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"ErrNotFound", ErrNotFound("player", "123"), "NOT_FOUND", 404},
		{"ErrConflict", ErrConflict("already exists"), "CONFLICT", 409},
		{"ErrInvalidArgument", ErrInvalidArgument("bad input"), "INVALID_ARGUMENT", 400},
		{"ErrUnauthorized", ErrUnauthorized("no token"), "UNAUTHORIZED", 401},
		{"ErrForbidden", ErrForbidden("not allowed"), "FORBIDDEN", 403},
		{"ErrInsufficientFunds", ErrInsufficientFunds(), "INSUFFICIENT_FUNDS", 400},
		{"ErrInternal", ErrInternal("oops", nil), "INTERNAL_ERROR", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

// --- Event Factory Tests ---

func TestNewPlayerRegisteredEvent(t *testing.T) {
	p := &Player{ID: uuid.New(), GameID: "g1", Username: "alice"}
	event := NewPlayerRegisteredEvent(p)

	assert.NotEqual(t, uuid.Nil, event.EventID)
	assert.Equal(t, AggregatePlayer, event.AggregateType)
	assert.Equal(t, p.ID.String(), event.AggregateID)
	assert.Equal(t, EventPlayerRegistered, event.EventType)
	assert.False(t, event.OccurredAt.IsZero())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, "g1", payload["game_id"])
	assert.Equal(t, "alice", payload["username"])
}

func TestNewCreditsChangedEvent(t *testing.T) {
	playerID := uuid.New()
	event := NewCreditsChangedEvent(playerID, -50, 150, "spend")

	assert.Equal(t, AggregateLedger, event.AggregateType)
	assert.Equal(t, EventCreditsChanged, event.EventType)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, float64(-50), payload["delta"])
	assert.Equal(t, float64(150), payload["new_balance"])
	assert.Equal(t, "spend", payload["reason"])
}

func TestNewPlayerBannedEvent(t *testing.T) {
	playerID := uuid.New()

	t.Run("banned", func(t *testing.T) {
		event := NewPlayerBannedEvent(playerID, true)
		assert.Equal(t, EventPlayerBanned, event.EventType)
	})

	t.Run("unbanned", func(t *testing.T) {
		event := NewPlayerBannedEvent(playerID, false)
		assert.Equal(t, EventPlayerUnbanned, event.EventType)
	})
}

func TestNewCosmeticPurchasedEvent(t *testing.T) {
	playerID := uuid.New()
	cosmeticID := uuid.New()
	event := NewCosmeticPurchasedEvent(playerID, cosmeticID, 300, 700)

	assert.Equal(t, EventCosmeticPurchased, event.EventType)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, cosmeticID.String(), payload["cosmetic_id"])
	assert.Equal(t, float64(300), payload["price"])
	assert.Equal(t, float64(700), payload["new_balance"])
}
