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

type saveRepo struct{}

// NewSaveRepository returns a pgx-backed SaveRepository.
func NewSaveRepository() SaveRepository {
	return &saveRepo{}
}

func (r *saveRepo) Upsert(ctx context.Context, db DBTX, playerID uuid.UUID, key string, value json.RawMessage) error {
	_, err := db.Exec(ctx, `
		INSERT INTO save_entries (player_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		playerID, key, value)
	if err != nil {
		return fmt.Errorf("upsert save entry: %w", err)
	}
	return nil
}

func (r *saveRepo) Get(ctx context.Context, db DBTX, playerID uuid.UUID, key string) (*domain.SaveEntry, error) {
	row := db.QueryRow(ctx, `
		SELECT player_id, key, value, updated_at
		FROM save_entries WHERE player_id = $1 AND key = $2`, playerID, key)

	var e domain.SaveEntry
	err := row.Scan(&e.PlayerID, &e.Key, &e.Value, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan save entry: %w", err)
	}
	return &e, nil
}

func (r *saveRepo) List(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.SaveEntry, error) {
	rows, err := db.Query(ctx, `
		SELECT player_id, key, value, updated_at
		FROM save_entries WHERE player_id = $1
		ORDER BY key`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list save entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.SaveEntry
	for rows.Next() {
		var e domain.SaveEntry
		if err := rows.Scan(&e.PlayerID, &e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan save entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *saveRepo) Delete(ctx context.Context, db DBTX, playerID uuid.UUID, key string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM save_entries WHERE player_id = $1 AND key = $2`, playerID, key)
	if err != nil {
		return fmt.Errorf("delete save entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("save entry", key)
	}
	return nil
}

func (r *saveRepo) DeleteAllForPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM save_entries WHERE player_id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("delete player save data: %w", err)
	}
	return nil
}

func (r *saveRepo) StatValues(ctx context.Context, db DBTX, gameID, key string) ([]StatRow, error) {
	rows, err := db.Query(ctx, `
		SELECT p.id, p.username, s.value,
		       (EXTRACT(EPOCH FROM p.created_at) * 1e9)::bigint
		FROM save_entries s
		JOIN players p ON p.id = s.player_id
		WHERE p.game_id = $1 AND NOT p.banned AND s.key = $2`, gameID, key)
	if err != nil {
		return nil, fmt.Errorf("stat values: %w", err)
	}
	defer rows.Close()

	var out []StatRow
	for rows.Next() {
		var s StatRow
		if err := rows.Scan(&s.PlayerID, &s.Username, &s.Raw, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stat row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
