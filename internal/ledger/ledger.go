package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/repository"
)

// Engine provides the credits-ledger primitives: LockPlayerForUpdate takes a
// row-level pessimistic lock, Credit and Debit apply server-side balance
// arithmetic and record an outbox event. Every balance mutation in the system
// goes through these so the non-negative balance invariant has exactly one
// enforcement point.
type Engine struct {
	players repository.PlayerRepository
	outbox  repository.OutboxRepository
}

// NewEngine creates a ledger engine with the given repositories.
func NewEngine(players repository.PlayerRepository, outbox repository.OutboxRepository) *Engine {
	return &Engine{players: players, outbox: outbox}
}

// LockPlayerForUpdate acquires a row-level lock and returns the player.
// Must be called within a transaction.
func (e *Engine) LockPlayerForUpdate(ctx context.Context, tx pgx.Tx, playerID uuid.UUID) (*domain.Player, error) {
	player, err := e.players.LockForUpdate(ctx, tx, playerID)
	if err != nil {
		return nil, fmt.Errorf("lock player: %w", err)
	}
	if player == nil {
		return nil, domain.ErrNotFound("player", playerID.String())
	}
	return player, nil
}

// Credit adds amount to the player's balance and records an outbox event.
// The player row must already be locked by the caller's transaction.
func (e *Engine) Credit(ctx context.Context, tx pgx.Tx, playerID uuid.UUID, amount int64, reason string) (*domain.Player, error) {
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	return e.apply(ctx, tx, playerID, amount, reason)
}

// Debit subtracts amount from the player's balance. The caller must hold the
// row lock; the sufficiency check and the debit are indivisible under it.
func (e *Engine) Debit(ctx context.Context, tx pgx.Tx, player *domain.Player, amount int64, reason string) (*domain.Player, error) {
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	if player.Balance < amount {
		return nil, domain.ErrInsufficientFunds()
	}
	return e.apply(ctx, tx, player.ID, -amount, reason)
}

func (e *Engine) apply(ctx context.Context, tx pgx.Tx, playerID uuid.UUID, delta int64, reason string) (*domain.Player, error) {
	updated, err := e.players.AddBalance(ctx, tx, playerID, delta)
	if err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound("player", playerID.String())
	}

	event := domain.NewCreditsChangedEvent(playerID, delta, updated.Balance, reason)
	if err := e.outbox.Insert(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}

	return updated, nil
}
