package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/ledger"
	"github.com/playvault/platform/internal/repository"
)

// EconomyService owns all credit-balance mutations. Each operation is one
// transaction; same-player races are serialized by the row lock taken before
// the sufficiency check.
type EconomyService struct {
	pool    *pgxpool.Pool
	players repository.PlayerRepository
	outbox  repository.OutboxRepository
	engine  *ledger.Engine

	// allowPlayerGrants gates the player-callable Add path, which has no
	// source-of-funds check (see DESIGN.md).
	allowPlayerGrants bool
}

// NewEconomyService creates a new EconomyService.
func NewEconomyService(pool *pgxpool.Pool, players repository.PlayerRepository, outbox repository.OutboxRepository, engine *ledger.Engine, allowPlayerGrants bool) *EconomyService {
	return &EconomyService{
		pool:              pool,
		players:           players,
		outbox:            outbox,
		engine:            engine,
		allowPlayerGrants: allowPlayerGrants,
	}
}

// Spend debits amount from the player. The check and the debit run under one
// row lock, so a concurrent Spend can never drive the balance negative.
func (s *EconomyService) Spend(ctx context.Context, playerID uuid.UUID, amount int64) (int64, error) {
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return 0, domain.ErrInvalidArgument(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	player, err := s.engine.LockPlayerForUpdate(ctx, tx, playerID)
	if err != nil {
		return 0, asAppError(err, "lock player")
	}

	updated, err := s.engine.Debit(ctx, tx, player, amount, "spend")
	if err != nil {
		return 0, asAppError(err, "debit")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, domain.ErrInternal("commit tx", err)
	}
	return updated.Balance, nil
}

// Add credits amount to the player. Disabled deployments reject the call
// outright with Forbidden.
func (s *EconomyService) Add(ctx context.Context, playerID uuid.UUID, amount int64) (int64, error) {
	if !s.allowPlayerGrants {
		return 0, domain.ErrForbidden("player credit grants are disabled")
	}
	return s.grant(ctx, playerID, amount, "add")
}

// AdminGive credits amount on behalf of the owner capability.
func (s *EconomyService) AdminGive(ctx context.Context, playerID uuid.UUID, amount int64) (int64, error) {
	return s.grant(ctx, playerID, amount, "admin_give")
}

// AdminSet overwrites the balance with an absolute amount ≥ 0.
func (s *EconomyService) AdminSet(ctx context.Context, playerID uuid.UUID, amount int64) (int64, error) {
	if amount < 0 {
		return 0, domain.ErrInvalidArgument("amount must not be negative")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	player, err := s.engine.LockPlayerForUpdate(ctx, tx, playerID)
	if err != nil {
		return 0, asAppError(err, "lock player")
	}

	updated, err := s.players.SetBalance(ctx, tx, playerID, amount)
	if err != nil {
		return 0, domain.ErrInternal("set balance", err)
	}

	event := domain.NewCreditsChangedEvent(playerID, amount-player.Balance, updated.Balance, "admin_set")
	if err := s.outbox.Insert(ctx, tx, event); err != nil {
		return 0, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, domain.ErrInternal("commit tx", err)
	}
	return updated.Balance, nil
}

func (s *EconomyService) grant(ctx context.Context, playerID uuid.UUID, amount int64, reason string) (int64, error) {
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return 0, domain.ErrInvalidArgument(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.engine.LockPlayerForUpdate(ctx, tx, playerID); err != nil {
		return 0, asAppError(err, "lock player")
	}

	updated, err := s.engine.Credit(ctx, tx, playerID, amount, reason)
	if err != nil {
		return 0, asAppError(err, "credit")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, domain.ErrInternal("commit tx", err)
	}
	return updated.Balance, nil
}

// asAppError passes through domain errors and wraps everything else.
func asAppError(err error, msg string) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return domain.ErrInternal(msg, err)
}
