package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/playvault/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// CreditRow is an unranked leaderboard row read straight off players.
type CreditRow struct {
	PlayerID uuid.UUID
	Username string
	Balance  int64
}

// StatRow is a raw save-data value for one player, before numeric parsing.
type StatRow struct {
	PlayerID  uuid.UUID
	Username  string
	Raw       json.RawMessage
	CreatedAt int64 // unix nanos, used for deterministic tie-breaking
}

// PlayerRepository provides access to the players table.
type PlayerRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error)

	// FindByToken resolves the player holding a live session token.
	FindByToken(ctx context.Context, db DBTX, token string) (*domain.Player, error)

	// FindByGameAndUsername resolves a username within one tenant.
	FindByGameAndUsername(ctx context.Context, db DBTX, gameID, username string) (*domain.Player, error)

	Create(ctx context.Context, db DBTX, player *domain.Player) error

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) and returns the player.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Player, error)

	// AddBalance atomically applies a delta using server-side arithmetic.
	// Returns nil if the player does not exist.
	AddBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) (*domain.Player, error)

	// SetBalance overwrites the balance with an absolute amount.
	SetBalance(ctx context.Context, db DBTX, id uuid.UUID, amount int64) (*domain.Player, error)

	// SetSessionToken rotates the bearer token, invalidating the prior one.
	SetSessionToken(ctx context.Context, db DBTX, id uuid.UUID, token string) error

	// UpdateCredentials replaces password hash and session token in one statement.
	UpdateCredentials(ctx context.Context, db DBTX, id uuid.UUID, passwordHash, token string) error

	// SetBanned flips the ban flag for a batch of ids; unknown ids are skipped.
	// Returns the ids actually updated.
	SetBanned(ctx context.Context, db DBTX, ids []uuid.UUID, banned bool) ([]uuid.UUID, error)

	Delete(ctx context.Context, db DBTX, id uuid.UUID) error

	// ListByGame returns all players of a tenant, newest first.
	ListByGame(ctx context.Context, db DBTX, gameID string, limit int) ([]domain.Player, error)

	// TopByCredits returns non-banned players ordered by balance descending,
	// ties broken by creation time then id.
	TopByCredits(ctx context.Context, db DBTX, gameID string, limit int) ([]CreditRow, error)
}

// InventoryRepository provides access to inventory_entries.
type InventoryRepository interface {
	// AddOrIncrement upserts a stack: the first call creates the row with
	// the given metadata, later calls only increment quantity.
	AddOrIncrement(ctx context.Context, db DBTX, playerID uuid.UUID, itemName string, qty int64, metadata json.RawMessage) (*domain.InventoryEntry, error)

	// GetForUpdate locks the stack row within a transaction.
	GetForUpdate(ctx context.Context, tx pgx.Tx, playerID uuid.UUID, itemName string) (*domain.InventoryEntry, error)

	// SetQuantity overwrites the stored quantity.
	SetQuantity(ctx context.Context, tx pgx.Tx, playerID uuid.UUID, itemName string, qty int64) error

	// Delete removes the stack row entirely.
	Delete(ctx context.Context, db DBTX, playerID uuid.UUID, itemName string) error

	List(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.InventoryEntry, error)

	DeleteAllForPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) error
}

// CosmeticRepository provides access to the cosmetics catalog and ownership rows.
type CosmeticRepository interface {
	CreateDefinition(ctx context.Context, db DBTX, c *domain.Cosmetic) error
	UpdateDefinition(ctx context.Context, db DBTX, c *domain.Cosmetic) error
	DeleteDefinition(ctx context.Context, db DBTX, id uuid.UUID) error
	FindDefinition(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Cosmetic, error)
	ListDefinitions(ctx context.Context, db DBTX, gameID string) ([]domain.Cosmetic, error)

	FindOwnership(ctx context.Context, db DBTX, playerID, cosmeticID uuid.UUID) (*domain.CosmeticOwnership, error)

	// InsertOwnership is insert-if-absent; returns false when the player
	// already owned the cosmetic.
	InsertOwnership(ctx context.Context, db DBTX, playerID, cosmeticID uuid.UUID) (bool, error)

	// SetEquipped flips the equip flag; returns false when no ownership row exists.
	SetEquipped(ctx context.Context, db DBTX, playerID, cosmeticID uuid.UUID, equipped bool) (bool, error)

	ListOwned(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.OwnedCosmetic, error)

	DeleteAllForPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) error
}

// FriendshipRepository provides access to the directed friendships relation.
type FriendshipRepository interface {
	// InsertPending is insert-if-absent; an existing edge of either status is left alone.
	InsertPending(ctx context.Context, db DBTX, playerID, friendID uuid.UUID) error

	// AcceptReverse promotes the friend→player edge to accepted.
	// Returns false when no such edge exists.
	AcceptReverse(ctx context.Context, db DBTX, playerID, friendID uuid.UUID) (bool, error)

	// UpsertAccepted inserts the player→friend edge as accepted, or promotes it.
	UpsertAccepted(ctx context.Context, db DBTX, playerID, friendID uuid.UUID) error

	// ListAccepted returns friends with both directed edges in the accepted state.
	ListAccepted(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.Friend, error)

	// ListIncoming returns usernames with a pending edge toward the player.
	ListIncoming(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.Friend, error)

	DeleteAllForPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) error
}

// SaveRepository provides access to the free-form save_entries store.
type SaveRepository interface {
	Upsert(ctx context.Context, db DBTX, playerID uuid.UUID, key string, value json.RawMessage) error
	Get(ctx context.Context, db DBTX, playerID uuid.UUID, key string) (*domain.SaveEntry, error)
	List(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.SaveEntry, error)
	Delete(ctx context.Context, db DBTX, playerID uuid.UUID, key string) error
	DeleteAllForPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) error

	// StatValues returns the raw values stored under key for all non-banned
	// players of the tenant.
	StatValues(ctx context.Context, db DBTX, gameID, key string) ([]StatRow, error)
}

// ConfigRepository provides access to the per-game config store.
type ConfigRepository interface {
	Upsert(ctx context.Context, db DBTX, gameID, key string, value json.RawMessage) error
	Get(ctx context.Context, db DBTX, gameID, key string) (*domain.ConfigEntry, error)
	List(ctx context.Context, db DBTX, gameID string) ([]domain.ConfigEntry, error)
	Delete(ctx context.Context, db DBTX, gameID, key string) error
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the mutation).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns pending events for the outbox poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error)

	// MarkPublished removes delivered events.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
