package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/playvault/platform/internal/domain"
)

type inventoryRepo struct{}

// NewInventoryRepository returns a pgx-backed InventoryRepository.
func NewInventoryRepository() InventoryRepository {
	return &inventoryRepo{}
}

// AddOrIncrement relies on ON CONFLICT to keep at most one row per
// (player, item). Metadata is only written on first insert; the conflict
// branch leaves it untouched.
func (r *inventoryRepo) AddOrIncrement(ctx context.Context, db DBTX, playerID uuid.UUID, itemName string, qty int64, metadata json.RawMessage) (*domain.InventoryEntry, error) {
	if metadata == nil {
		metadata = json.RawMessage(`{}`)
	}
	row := db.QueryRow(ctx, `
		INSERT INTO inventory_entries (player_id, item_name, quantity, metadata)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (player_id, item_name)
		DO UPDATE SET quantity = inventory_entries.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING player_id, item_name, quantity, metadata, created_at, updated_at`,
		playerID, itemName, qty, metadata)

	var e domain.InventoryEntry
	err := row.Scan(&e.PlayerID, &e.ItemName, &e.Quantity, &e.Metadata, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert inventory entry: %w", err)
	}
	return &e, nil
}

func (r *inventoryRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, playerID uuid.UUID, itemName string) (*domain.InventoryEntry, error) {
	row := tx.QueryRow(ctx, `
		SELECT player_id, item_name, quantity, metadata, created_at, updated_at
		FROM inventory_entries
		WHERE player_id = $1 AND item_name = $2
		FOR UPDATE`, playerID, itemName)

	var e domain.InventoryEntry
	err := row.Scan(&e.PlayerID, &e.ItemName, &e.Quantity, &e.Metadata, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock inventory entry: %w", err)
	}
	return &e, nil
}

func (r *inventoryRepo) SetQuantity(ctx context.Context, tx pgx.Tx, playerID uuid.UUID, itemName string, qty int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE inventory_entries SET quantity = $1, updated_at = now()
		WHERE player_id = $2 AND item_name = $3`,
		qty, playerID, itemName)
	if err != nil {
		return fmt.Errorf("set inventory quantity: %w", err)
	}
	return nil
}

func (r *inventoryRepo) Delete(ctx context.Context, db DBTX, playerID uuid.UUID, itemName string) error {
	_, err := db.Exec(ctx,
		`DELETE FROM inventory_entries WHERE player_id = $1 AND item_name = $2`,
		playerID, itemName)
	if err != nil {
		return fmt.Errorf("delete inventory entry: %w", err)
	}
	return nil
}

func (r *inventoryRepo) List(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.InventoryEntry, error) {
	rows, err := db.Query(ctx, `
		SELECT player_id, item_name, quantity, metadata, created_at, updated_at
		FROM inventory_entries
		WHERE player_id = $1
		ORDER BY item_name`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.PlayerID, &e.ItemName, &e.Quantity, &e.Metadata, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *inventoryRepo) DeleteAllForPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM inventory_entries WHERE player_id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("delete player inventory: %w", err)
	}
	return nil
}
