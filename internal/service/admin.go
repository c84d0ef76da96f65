package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/repository"
)

// AdminService implements the owner-capability bulk operations. Every bulk
// call runs as one transaction: either every target is mutated or none is.
type AdminService struct {
	pool        *pgxpool.Pool
	players     repository.PlayerRepository
	inventory   repository.InventoryRepository
	cosmetics   repository.CosmeticRepository
	friendships repository.FriendshipRepository
	saves       repository.SaveRepository
	outbox      repository.OutboxRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	pool *pgxpool.Pool,
	players repository.PlayerRepository,
	inventory repository.InventoryRepository,
	cosmetics repository.CosmeticRepository,
	friendships repository.FriendshipRepository,
	saves repository.SaveRepository,
	outbox repository.OutboxRepository,
) *AdminService {
	return &AdminService{
		pool:        pool,
		players:     players,
		inventory:   inventory,
		cosmetics:   cosmetics,
		friendships: friendships,
		saves:       saves,
		outbox:      outbox,
	}
}

// BulkSetBanned flips the ban flag for all ids in one transaction. Unknown
// ids are skipped, not errors; the returned slice holds the ids actually
// updated.
func (s *AdminService) BulkSetBanned(ctx context.Context, ids []uuid.UUID, banned bool) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidArgument("player_ids must not be empty")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	updated, err := s.players.SetBanned(ctx, tx, ids, banned)
	if err != nil {
		return nil, domain.ErrInternal("set banned", err)
	}
	for _, id := range updated {
		if err := s.outbox.Insert(ctx, tx, domain.NewPlayerBannedEvent(id, banned)); err != nil {
			return nil, domain.ErrInternal("insert outbox event", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return updated, nil
}

// BulkAddCredits grants the same amount to every id in one transaction.
// Unknown ids are skipped. A failure on any row rolls back the whole batch.
func (s *AdminService) BulkAddCredits(ctx context.Context, ids []uuid.UUID, amount int64) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidArgument("player_ids must not be empty")
	}
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	var updated []uuid.UUID
	for _, id := range ids {
		player, err := s.players.AddBalance(ctx, tx, id, amount)
		if err != nil {
			return nil, domain.ErrInternal("add balance", err)
		}
		if player == nil {
			continue
		}
		event := domain.NewCreditsChangedEvent(id, amount, player.Balance, "admin_bulk_give")
		if err := s.outbox.Insert(ctx, tx, event); err != nil {
			return nil, domain.ErrInternal("insert outbox event", err)
		}
		updated = append(updated, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return updated, nil
}

// BulkDelete removes the players and all their owned rows in one transaction.
func (s *AdminService) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return domain.ErrInvalidArgument("player_ids must not be empty")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	for _, id := range ids {
		if err := s.deleteCascade(ctx, tx, id); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	return nil
}

// DeletePlayer removes one player and all their owned rows. Idempotent:
// deleting an absent player succeeds.
func (s *AdminService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.deleteCascade(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	return nil
}

// deleteCascade removes all rows owned by the player, dependents first.
// Friendship edges in both directions go too, so no dangling references
// survive.
func (s *AdminService) deleteCascade(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	if err := s.saves.DeleteAllForPlayer(ctx, tx, id); err != nil {
		return domain.ErrInternal("delete saves", err)
	}
	if err := s.cosmetics.DeleteAllForPlayer(ctx, tx, id); err != nil {
		return domain.ErrInternal("delete cosmetic ownership", err)
	}
	if err := s.inventory.DeleteAllForPlayer(ctx, tx, id); err != nil {
		return domain.ErrInternal("delete inventory", err)
	}
	if err := s.friendships.DeleteAllForPlayer(ctx, tx, id); err != nil {
		return domain.ErrInternal("delete friendships", err)
	}
	if err := s.players.Delete(ctx, tx, id); err != nil {
		return domain.ErrInternal("delete player", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewPlayerDeletedEvent(id)); err != nil {
		return domain.ErrInternal("insert outbox event", err)
	}
	return nil
}

// GetPlayer returns the full player row for admin inspection.
func (s *AdminService) GetPlayer(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	player, err := s.players.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find player", err)
	}
	if player == nil {
		return nil, domain.ErrNotFound("player", id.String())
	}
	return player, nil
}

// ListPlayers returns a tenant's players, newest first.
func (s *AdminService) ListPlayers(ctx context.Context, gameID string, limit int) ([]domain.Player, error) {
	if err := domain.ValidateGameID(gameID); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	players, err := s.players.ListByGame(ctx, s.pool, gameID, limit)
	if err != nil {
		return nil, domain.ErrInternal("list players", err)
	}
	return players, nil
}
