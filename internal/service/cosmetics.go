package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/ledger"
	"github.com/playvault/platform/internal/repository"
)

// CosmeticsService manages the catalog and the per-player ownership relation.
type CosmeticsService struct {
	pool      *pgxpool.Pool
	cosmetics repository.CosmeticRepository
	players   repository.PlayerRepository
	outbox    repository.OutboxRepository
	engine    *ledger.Engine
}

// NewCosmeticsService creates a new CosmeticsService.
func NewCosmeticsService(pool *pgxpool.Pool, cosmetics repository.CosmeticRepository, players repository.PlayerRepository, outbox repository.OutboxRepository, engine *ledger.Engine) *CosmeticsService {
	return &CosmeticsService{
		pool:      pool,
		cosmetics: cosmetics,
		players:   players,
		outbox:    outbox,
		engine:    engine,
	}
}

// Buy debits the price and grants ownership in one transaction. A crash or a
// concurrent purchase can never leave credits debited without the grant, or
// the grant without the debit.
func (s *CosmeticsService) Buy(ctx context.Context, playerID, cosmeticID uuid.UUID) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	// Lock first so concurrent purchases for the same player serialize.
	player, err := s.engine.LockPlayerForUpdate(ctx, tx, playerID)
	if err != nil {
		return 0, asAppError(err, "lock player")
	}

	cosmetic, err := s.cosmetics.FindDefinition(ctx, tx, cosmeticID)
	if err != nil {
		return 0, domain.ErrInternal("find cosmetic", err)
	}
	if cosmetic == nil || cosmetic.GameID != player.GameID {
		return 0, domain.ErrNotFound("cosmetic", cosmeticID.String())
	}

	owned, err := s.cosmetics.FindOwnership(ctx, tx, playerID, cosmeticID)
	if err != nil {
		return 0, domain.ErrInternal("find ownership", err)
	}
	if owned != nil {
		return 0, domain.ErrConflict("cosmetic already owned")
	}

	if player.Balance < cosmetic.Price {
		return 0, domain.ErrInsufficientFunds()
	}

	updated := player
	if cosmetic.Price > 0 {
		updated, err = s.engine.Debit(ctx, tx, player, cosmetic.Price, "cosmetic_purchase")
		if err != nil {
			return 0, asAppError(err, "debit")
		}
	}

	inserted, err := s.cosmetics.InsertOwnership(ctx, tx, playerID, cosmeticID)
	if err != nil {
		return 0, domain.ErrInternal("insert ownership", err)
	}
	if !inserted {
		// Lost a race against an admin grant; roll the debit back with the tx.
		return 0, domain.ErrConflict("cosmetic already owned")
	}

	event := domain.NewCosmeticPurchasedEvent(playerID, cosmeticID, cosmetic.Price, updated.Balance)
	if err := s.outbox.Insert(ctx, tx, event); err != nil {
		return 0, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, domain.ErrInternal("commit tx", err)
	}
	return updated.Balance, nil
}

// Equip flips the equip flag on an owned cosmetic. Equip state is purely
// additive; nothing enforces one-per-category.
func (s *CosmeticsService) Equip(ctx context.Context, playerID, cosmeticID uuid.UUID, equipped bool) error {
	ok, err := s.cosmetics.SetEquipped(ctx, s.pool, playerID, cosmeticID, equipped)
	if err != nil {
		return domain.ErrInternal("set equipped", err)
	}
	if !ok {
		return domain.ErrForbidden("cosmetic not owned")
	}
	return nil
}

// Grant gives a cosmetic to a player without charging. Granting an
// already-owned cosmetic is a silent no-op.
func (s *CosmeticsService) Grant(ctx context.Context, playerID, cosmeticID uuid.UUID) error {
	cosmetic, err := s.cosmetics.FindDefinition(ctx, s.pool, cosmeticID)
	if err != nil {
		return domain.ErrInternal("find cosmetic", err)
	}
	if cosmetic == nil {
		return domain.ErrNotFound("cosmetic", cosmeticID.String())
	}

	player, err := s.players.FindByID(ctx, s.pool, playerID)
	if err != nil {
		return domain.ErrInternal("find player", err)
	}
	if player == nil {
		return domain.ErrNotFound("player", playerID.String())
	}

	if _, err := s.cosmetics.InsertOwnership(ctx, s.pool, playerID, cosmeticID); err != nil {
		return domain.ErrInternal("insert ownership", err)
	}
	return nil
}

// ListOwned returns the player's cosmetics joined with their definitions.
func (s *CosmeticsService) ListOwned(ctx context.Context, playerID uuid.UUID) ([]domain.OwnedCosmetic, error) {
	owned, err := s.cosmetics.ListOwned(ctx, s.pool, playerID)
	if err != nil {
		return nil, domain.ErrInternal("list owned cosmetics", err)
	}
	return owned, nil
}

// ListCatalog returns the tenant's purchasable cosmetic definitions.
func (s *CosmeticsService) ListCatalog(ctx context.Context, gameID string) ([]domain.Cosmetic, error) {
	defs, err := s.cosmetics.ListDefinitions(ctx, s.pool, gameID)
	if err != nil {
		return nil, domain.ErrInternal("list cosmetics", err)
	}
	return defs, nil
}

// DefinitionInput holds catalog create/update fields.
type DefinitionInput struct {
	GameID   string `json:"game_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Rarity   string `json:"rarity"`
}

func (in DefinitionInput) validate() error {
	if in.Name == "" {
		return domain.ErrInvalidArgument("name is required")
	}
	if in.Price < 0 {
		return domain.ErrInvalidArgument("price must not be negative")
	}
	return nil
}

// CreateDefinition adds a catalog entry (admin).
func (s *CosmeticsService) CreateDefinition(ctx context.Context, in DefinitionInput) (*domain.Cosmetic, error) {
	if err := domain.ValidateGameID(in.GameID); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	cosmetic := &domain.Cosmetic{
		ID:       uuid.New(),
		GameID:   in.GameID,
		Name:     in.Name,
		Category: in.Category,
		Price:    in.Price,
		Rarity:   in.Rarity,
	}
	if err := s.cosmetics.CreateDefinition(ctx, s.pool, cosmetic); err != nil {
		return nil, domain.ErrInternal("create cosmetic", err)
	}
	return cosmetic, nil
}

// UpdateDefinition edits a catalog entry (admin).
func (s *CosmeticsService) UpdateDefinition(ctx context.Context, id uuid.UUID, in DefinitionInput) (*domain.Cosmetic, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.cosmetics.FindDefinition(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find cosmetic", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound("cosmetic", id.String())
	}

	existing.Name = in.Name
	existing.Category = in.Category
	existing.Price = in.Price
	existing.Rarity = in.Rarity
	if err := s.cosmetics.UpdateDefinition(ctx, s.pool, existing); err != nil {
		return nil, asAppError(err, "update cosmetic")
	}
	return existing, nil
}

// DeleteDefinition removes a catalog entry and all ownership rows referencing
// it, in one transaction.
func (s *CosmeticsService) DeleteDefinition(ctx context.Context, id uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cosmetic_ownership WHERE cosmetic_id = $1`, id); err != nil {
		return domain.ErrInternal("delete ownership rows", err)
	}
	if err := s.cosmetics.DeleteDefinition(ctx, tx, id); err != nil {
		return asAppError(err, "delete cosmetic")
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	return nil
}
