package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/playvault/platform/internal/domain"
)

type configRepo struct{}

// NewConfigRepository returns a pgx-backed ConfigRepository.
func NewConfigRepository() ConfigRepository {
	return &configRepo{}
}

func (r *configRepo) Upsert(ctx context.Context, db DBTX, gameID, key string, value json.RawMessage) error {
	_, err := db.Exec(ctx, `
		INSERT INTO game_config (game_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		gameID, key, value)
	if err != nil {
		return fmt.Errorf("upsert config entry: %w", err)
	}
	return nil
}

func (r *configRepo) Get(ctx context.Context, db DBTX, gameID, key string) (*domain.ConfigEntry, error) {
	row := db.QueryRow(ctx, `
		SELECT game_id, key, value, updated_at
		FROM game_config WHERE game_id = $1 AND key = $2`, gameID, key)

	var e domain.ConfigEntry
	err := row.Scan(&e.GameID, &e.Key, &e.Value, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan config entry: %w", err)
	}
	return &e, nil
}

func (r *configRepo) List(ctx context.Context, db DBTX, gameID string) ([]domain.ConfigEntry, error) {
	rows, err := db.Query(ctx, `
		SELECT game_id, key, value, updated_at
		FROM game_config WHERE game_id = $1
		ORDER BY key`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list config entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.ConfigEntry
	for rows.Next() {
		var e domain.ConfigEntry
		if err := rows.Scan(&e.GameID, &e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan config entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *configRepo) Delete(ctx context.Context, db DBTX, gameID, key string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM game_config WHERE game_id = $1 AND key = $2`, gameID, key)
	if err != nil {
		return fmt.Errorf("delete config entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("config entry", key)
	}
	return nil
}
