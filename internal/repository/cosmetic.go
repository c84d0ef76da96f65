package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/playvault/platform/internal/domain"
)

type cosmeticRepo struct{}

// NewCosmeticRepository returns a pgx-backed CosmeticRepository.
func NewCosmeticRepository() CosmeticRepository {
	return &cosmeticRepo{}
}

func (r *cosmeticRepo) CreateDefinition(ctx context.Context, db DBTX, c *domain.Cosmetic) error {
	_, err := db.Exec(ctx, `
		INSERT INTO cosmetics (id, game_id, name, category, price, rarity)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.GameID, c.Name, c.Category, c.Price, c.Rarity)
	if err != nil {
		return fmt.Errorf("insert cosmetic: %w", err)
	}
	return nil
}

func (r *cosmeticRepo) UpdateDefinition(ctx context.Context, db DBTX, c *domain.Cosmetic) error {
	tag, err := db.Exec(ctx, `
		UPDATE cosmetics SET name = $1, category = $2, price = $3, rarity = $4
		WHERE id = $5`,
		c.Name, c.Category, c.Price, c.Rarity, c.ID)
	if err != nil {
		return fmt.Errorf("update cosmetic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("cosmetic", c.ID.String())
	}
	return nil
}

func (r *cosmeticRepo) DeleteDefinition(ctx context.Context, db DBTX, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM cosmetics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cosmetic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("cosmetic", id.String())
	}
	return nil
}

func (r *cosmeticRepo) FindDefinition(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Cosmetic, error) {
	row := db.QueryRow(ctx, `
		SELECT id, game_id, name, category, price, rarity, created_at
		FROM cosmetics WHERE id = $1`, id)

	var c domain.Cosmetic
	err := row.Scan(&c.ID, &c.GameID, &c.Name, &c.Category, &c.Price, &c.Rarity, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan cosmetic: %w", err)
	}
	return &c, nil
}

func (r *cosmeticRepo) ListDefinitions(ctx context.Context, db DBTX, gameID string) ([]domain.Cosmetic, error) {
	rows, err := db.Query(ctx, `
		SELECT id, game_id, name, category, price, rarity, created_at
		FROM cosmetics
		WHERE game_id = $1
		ORDER BY category, name`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list cosmetics: %w", err)
	}
	defer rows.Close()

	var out []domain.Cosmetic
	for rows.Next() {
		var c domain.Cosmetic
		if err := rows.Scan(&c.ID, &c.GameID, &c.Name, &c.Category, &c.Price, &c.Rarity, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cosmetic: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *cosmeticRepo) FindOwnership(ctx context.Context, db DBTX, playerID, cosmeticID uuid.UUID) (*domain.CosmeticOwnership, error) {
	row := db.QueryRow(ctx, `
		SELECT player_id, cosmetic_id, equipped, acquired_at
		FROM cosmetic_ownership
		WHERE player_id = $1 AND cosmetic_id = $2`, playerID, cosmeticID)

	var o domain.CosmeticOwnership
	err := row.Scan(&o.PlayerID, &o.CosmeticID, &o.Equipped, &o.AcquiredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan ownership: %w", err)
	}
	return &o, nil
}

func (r *cosmeticRepo) InsertOwnership(ctx context.Context, db DBTX, playerID, cosmeticID uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx, `
		INSERT INTO cosmetic_ownership (player_id, cosmetic_id)
		VALUES ($1, $2)
		ON CONFLICT (player_id, cosmetic_id) DO NOTHING`,
		playerID, cosmeticID)
	if err != nil {
		return false, fmt.Errorf("insert ownership: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *cosmeticRepo) SetEquipped(ctx context.Context, db DBTX, playerID, cosmeticID uuid.UUID, equipped bool) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE cosmetic_ownership SET equipped = $1
		WHERE player_id = $2 AND cosmetic_id = $3`,
		equipped, playerID, cosmeticID)
	if err != nil {
		return false, fmt.Errorf("set equipped: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *cosmeticRepo) ListOwned(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.OwnedCosmetic, error) {
	rows, err := db.Query(ctx, `
		SELECT c.id, c.game_id, c.name, c.category, c.price, c.rarity, c.created_at,
		       o.equipped, o.acquired_at
		FROM cosmetic_ownership o
		JOIN cosmetics c ON c.id = o.cosmetic_id
		WHERE o.player_id = $1
		ORDER BY o.acquired_at`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list owned cosmetics: %w", err)
	}
	defer rows.Close()

	var out []domain.OwnedCosmetic
	for rows.Next() {
		var oc domain.OwnedCosmetic
		err := rows.Scan(&oc.ID, &oc.GameID, &oc.Name, &oc.Category, &oc.Price, &oc.Rarity,
			&oc.CreatedAt, &oc.Equipped, &oc.AcquiredAt)
		if err != nil {
			return nil, fmt.Errorf("scan owned cosmetic: %w", err)
		}
		out = append(out, oc)
	}
	return out, rows.Err()
}

func (r *cosmeticRepo) DeleteAllForPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM cosmetic_ownership WHERE player_id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("delete player cosmetics: %w", err)
	}
	return nil
}
