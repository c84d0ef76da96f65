package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Player represents a players row. Username is unique within a game,
// session token is the single live bearer credential (nil means logged out).
type Player struct {
	ID           uuid.UUID `json:"id"`
	GameID       string    `json:"game_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	SessionToken *string   `json:"-"`
	Balance      int64     `json:"balance"`
	Banned       bool      `json:"banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// InventoryEntry is a quantity-based stack of one item owned by a player.
// At most one row exists per (player, item name).
type InventoryEntry struct {
	PlayerID  uuid.UUID       `json:"player_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int64           `json:"quantity"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Cosmetic is a purchasable catalog definition, scoped to one game.
type Cosmetic struct {
	ID        uuid.UUID `json:"id"`
	GameID    string    `json:"game_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     int64     `json:"price"`
	Rarity    string    `json:"rarity"`
	CreatedAt time.Time `json:"created_at"`
}

// CosmeticOwnership asserts that a player owns a cosmetic. Equipped is an
// independent per-row flag; the model does not enforce one-per-category.
type CosmeticOwnership struct {
	PlayerID   uuid.UUID `json:"player_id"`
	CosmeticID uuid.UUID `json:"cosmetic_id"`
	Equipped   bool      `json:"equipped"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// OwnedCosmetic is the ownership row joined with its catalog definition.
type OwnedCosmetic struct {
	Cosmetic
	Equipped   bool      `json:"equipped"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// Friendship statuses.
const (
	FriendPending  = "pending"
	FriendAccepted = "accepted"
)

// Friendship is one directed edge of the social graph. An accepted
// friendship is two directed edges, both in the accepted state.
type Friendship struct {
	PlayerID  uuid.UUID `json:"player_id"`
	FriendID  uuid.UUID `json:"friend_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Friend is a resolved entry for ListFriends responses.
type Friend struct {
	PlayerID uuid.UUID `json:"player_id"`
	Username string    `json:"username"`
	Status   string    `json:"status"`
}

// SaveEntry is a free-form per-(player, key) JSON blob. The core stores and
// returns it unmodified and never interprets its shape, except for the
// leaderboard projector which reads numeric-valued entries.
type SaveEntry struct {
	PlayerID  uuid.UUID       `json:"player_id"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ConfigEntry is a per-(game, key) configuration value.
type ConfigEntry struct {
	GameID    string          `json:"game_id"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LeaderboardEntry is one ranked row of a leaderboard projection.
type LeaderboardEntry struct {
	Rank     int       `json:"rank"`
	PlayerID uuid.UUID `json:"player_id"`
	Username string    `json:"username"`
	Value    float64   `json:"value"`
}
