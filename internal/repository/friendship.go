package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/playvault/platform/internal/domain"
)

type friendshipRepo struct{}

// NewFriendshipRepository returns a pgx-backed FriendshipRepository.
func NewFriendshipRepository() FriendshipRepository {
	return &friendshipRepo{}
}

func (r *friendshipRepo) InsertPending(ctx context.Context, db DBTX, playerID, friendID uuid.UUID) error {
	_, err := db.Exec(ctx, `
		INSERT INTO friendships (player_id, friend_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, friend_id) DO NOTHING`,
		playerID, friendID, domain.FriendPending)
	if err != nil {
		return fmt.Errorf("insert friend request: %w", err)
	}
	return nil
}

func (r *friendshipRepo) AcceptReverse(ctx context.Context, db DBTX, playerID, friendID uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE friendships SET status = $1
		WHERE player_id = $2 AND friend_id = $3`,
		domain.FriendAccepted, friendID, playerID)
	if err != nil {
		return false, fmt.Errorf("accept friend request: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *friendshipRepo) UpsertAccepted(ctx context.Context, db DBTX, playerID, friendID uuid.UUID) error {
	_, err := db.Exec(ctx, `
		INSERT INTO friendships (player_id, friend_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, friend_id) DO UPDATE SET status = EXCLUDED.status`,
		playerID, friendID, domain.FriendAccepted)
	if err != nil {
		return fmt.Errorf("upsert accepted friendship: %w", err)
	}
	return nil
}

// ListAccepted requires both directed edges so a half-established friendship
// stays invisible.
func (r *friendshipRepo) ListAccepted(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.Friend, error) {
	rows, err := db.Query(ctx, `
		SELECT f.friend_id, p.username
		FROM friendships f
		JOIN friendships rev ON rev.player_id = f.friend_id AND rev.friend_id = f.player_id
		JOIN players p ON p.id = f.friend_id
		WHERE f.player_id = $1 AND f.status = $2 AND rev.status = $2
		ORDER BY p.username`, playerID, domain.FriendAccepted)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	var friends []domain.Friend
	for rows.Next() {
		f := domain.Friend{Status: domain.FriendAccepted}
		if err := rows.Scan(&f.PlayerID, &f.Username); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

func (r *friendshipRepo) ListIncoming(ctx context.Context, db DBTX, playerID uuid.UUID) ([]domain.Friend, error) {
	rows, err := db.Query(ctx, `
		SELECT f.player_id, p.username
		FROM friendships f
		JOIN players p ON p.id = f.player_id
		WHERE f.friend_id = $1 AND f.status = $2
		ORDER BY f.created_at`, playerID, domain.FriendPending)
	if err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.Friend
	for rows.Next() {
		f := domain.Friend{Status: domain.FriendPending}
		if err := rows.Scan(&f.PlayerID, &f.Username); err != nil {
			return nil, fmt.Errorf("scan friend request: %w", err)
		}
		requests = append(requests, f)
	}
	return requests, rows.Err()
}

func (r *friendshipRepo) DeleteAllForPlayer(ctx context.Context, db DBTX, playerID uuid.UUID) error {
	_, err := db.Exec(ctx,
		`DELETE FROM friendships WHERE player_id = $1 OR friend_id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("delete player friendships: %w", err)
	}
	return nil
}
