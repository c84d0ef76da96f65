package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/repository"
)

// InventoryService manages quantity-based item stacks.
type InventoryService struct {
	pool      *pgxpool.Pool
	inventory repository.InventoryRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(pool *pgxpool.Pool, inventory repository.InventoryRepository) *InventoryService {
	return &InventoryService{pool: pool, inventory: inventory}
}

// AddItem upserts a stack: the first call creates it with the given metadata,
// later calls only increment the quantity.
func (s *InventoryService) AddItem(ctx context.Context, playerID uuid.UUID, itemName string, qty int64, metadata json.RawMessage) (*domain.InventoryEntry, error) {
	if err := domain.ValidateItemName(itemName); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	if err := domain.ValidatePositiveAmount(qty); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	if metadata != nil && !json.Valid(metadata) {
		return nil, domain.ErrInvalidArgument("metadata must be valid JSON")
	}

	entry, err := s.inventory.AddOrIncrement(ctx, s.pool, playerID, itemName, qty, metadata)
	if err != nil {
		return nil, domain.ErrInternal("add item", err)
	}
	return entry, nil
}

// RemoveItem decrements a stack. Removing at least the stored quantity
// deletes the row entirely; no zero-quantity rows persist. Returns the
// remaining quantity (zero when the stack was cleared).
func (s *InventoryService) RemoveItem(ctx context.Context, playerID uuid.UUID, itemName string, qty int64) (int64, error) {
	if err := domain.ValidateItemName(itemName); err != nil {
		return 0, domain.ErrInvalidArgument(err.Error())
	}
	if err := domain.ValidatePositiveAmount(qty); err != nil {
		return 0, domain.ErrInvalidArgument(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	entry, err := s.inventory.GetForUpdate(ctx, tx, playerID, itemName)
	if err != nil {
		return 0, domain.ErrInternal("lock item", err)
	}
	if entry == nil {
		return 0, domain.ErrNotFound("item", itemName)
	}

	remaining := entry.Quantity - qty
	if remaining <= 0 {
		remaining = 0
		if err := s.inventory.Delete(ctx, tx, playerID, itemName); err != nil {
			return 0, domain.ErrInternal("delete item", err)
		}
	} else {
		if err := s.inventory.SetQuantity(ctx, tx, playerID, itemName, remaining); err != nil {
			return 0, domain.ErrInternal("decrement item", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, domain.ErrInternal("commit tx", err)
	}
	return remaining, nil
}

// List returns all stacks owned by the player.
func (s *InventoryService) List(ctx context.Context, playerID uuid.UUID) ([]domain.InventoryEntry, error) {
	entries, err := s.inventory.List(ctx, s.pool, playerID)
	if err != nil {
		return nil, domain.ErrInternal("list inventory", err)
	}
	return entries, nil
}
