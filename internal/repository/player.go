package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/playvault/platform/internal/domain"
)

const playerColumns = `id, game_id, username, password_hash, session_token, balance, banned, created_at, updated_at`

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error) {
	row := db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

func (r *playerRepo) FindByToken(ctx context.Context, db DBTX, token string) (*domain.Player, error) {
	row := db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE session_token = $1`, token)
	return scanPlayer(row)
}

func (r *playerRepo) FindByGameAndUsername(ctx context.Context, db DBTX, gameID, username string) (*domain.Player, error) {
	row := db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE game_id = $1 AND username = $2`,
		gameID, username)
	return scanPlayer(row)
}

func (r *playerRepo) Create(ctx context.Context, db DBTX, player *domain.Player) error {
	_, err := db.Exec(ctx, `
		INSERT INTO players (id, game_id, username, password_hash, session_token, balance, banned)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		player.ID, player.GameID, player.Username, player.PasswordHash,
		player.SessionToken, player.Balance, player.Banned)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *playerRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Player, error) {
	row := tx.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1 FOR UPDATE`, id)
	return scanPlayer(row)
}

// AddBalance applies the delta with server-side arithmetic so the check and
// the debit stay indivisible under the caller's row lock.
func (r *playerRepo) AddBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) (*domain.Player, error) {
	row := tx.QueryRow(ctx, `
		UPDATE players SET balance = balance + $1, updated_at = now()
		WHERE id = $2
		RETURNING `+playerColumns, delta, id)
	return scanPlayer(row)
}

func (r *playerRepo) SetBalance(ctx context.Context, db DBTX, id uuid.UUID, amount int64) (*domain.Player, error) {
	row := db.QueryRow(ctx, `
		UPDATE players SET balance = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+playerColumns, amount, id)
	return scanPlayer(row)
}

func (r *playerRepo) SetSessionToken(ctx context.Context, db DBTX, id uuid.UUID, token string) error {
	tag, err := db.Exec(ctx,
		`UPDATE players SET session_token = $1, updated_at = now() WHERE id = $2`,
		token, id)
	if err != nil {
		return fmt.Errorf("set session token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("player", id.String())
	}
	return nil
}

func (r *playerRepo) UpdateCredentials(ctx context.Context, db DBTX, id uuid.UUID, passwordHash, token string) error {
	tag, err := db.Exec(ctx, `
		UPDATE players SET password_hash = $1, session_token = $2, updated_at = now()
		WHERE id = $3`,
		passwordHash, token, id)
	if err != nil {
		return fmt.Errorf("update credentials: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("player", id.String())
	}
	return nil
}

func (r *playerRepo) SetBanned(ctx context.Context, db DBTX, ids []uuid.UUID, banned bool) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, `
		UPDATE players SET banned = $1, updated_at = now()
		WHERE id = ANY($2)
		RETURNING id`, banned, ids)
	if err != nil {
		return nil, fmt.Errorf("set banned: %w", err)
	}
	defer rows.Close()

	var updated []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan banned id: %w", err)
		}
		updated = append(updated, id)
	}
	return updated, rows.Err()
}

func (r *playerRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (r *playerRepo) ListByGame(ctx context.Context, db DBTX, gameID string, limit int) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `
		SELECT `+playerColumns+` FROM players
		WHERE game_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayerValues(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (r *playerRepo) TopByCredits(ctx context.Context, db DBTX, gameID string, limit int) ([]CreditRow, error) {
	rows, err := db.Query(ctx, `
		SELECT id, username, balance FROM players
		WHERE game_id = $1 AND NOT banned
		ORDER BY balance DESC, created_at ASC, id ASC
		LIMIT $2`, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("top by credits: %w", err)
	}
	defer rows.Close()

	var out []CreditRow
	for rows.Next() {
		var c CreditRow
		if err := rows.Scan(&c.PlayerID, &c.Username, &c.Balance); err != nil {
			return nil, fmt.Errorf("scan credit row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	p, err := scanPlayerValues(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func scanPlayerValues(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.GameID, &p.Username, &p.PasswordHash, &p.SessionToken,
		&p.Balance, &p.Banned, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &p, nil
}
