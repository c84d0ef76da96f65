package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/repository"
)

// SocialService manages the directed friendship graph. A friendship is
// mutual only once both directed edges are accepted.
type SocialService struct {
	pool        *pgxpool.Pool
	players     repository.PlayerRepository
	friendships repository.FriendshipRepository
}

// NewSocialService creates a new SocialService.
func NewSocialService(pool *pgxpool.Pool, players repository.PlayerRepository, friendships repository.FriendshipRepository) *SocialService {
	return &SocialService{pool: pool, players: players, friendships: friendships}
}

// RequestFriend creates a pending edge toward the named player in the same
// tenant. Re-requesting an existing edge is a no-op.
func (s *SocialService) RequestFriend(ctx context.Context, player *domain.Player, friendUsername string) error {
	if err := domain.ValidateUsername(friendUsername); err != nil {
		return domain.ErrInvalidArgument(err.Error())
	}

	friend, err := s.players.FindByGameAndUsername(ctx, s.pool, player.GameID, friendUsername)
	if err != nil {
		return domain.ErrInternal("find friend", err)
	}
	if friend == nil {
		return domain.ErrNotFound("player", friendUsername)
	}
	if friend.ID == player.ID {
		return domain.ErrInvalidArgument("cannot befriend yourself")
	}

	if err := s.friendships.InsertPending(ctx, s.pool, player.ID, friend.ID); err != nil {
		return domain.ErrInternal("insert friend request", err)
	}
	return nil
}

// AcceptFriend promotes the incoming edge and writes the reverse edge as
// accepted. Only the recipient's acceptance is recorded; the requester is
// never asked again.
func (s *SocialService) AcceptFriend(ctx context.Context, player *domain.Player, friendUsername string) error {
	friend, err := s.players.FindByGameAndUsername(ctx, s.pool, player.GameID, friendUsername)
	if err != nil {
		return domain.ErrInternal("find friend", err)
	}
	if friend == nil {
		return domain.ErrNotFound("player", friendUsername)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	accepted, err := s.friendships.AcceptReverse(ctx, tx, player.ID, friend.ID)
	if err != nil {
		return domain.ErrInternal("accept friend request", err)
	}
	if !accepted {
		return domain.ErrNotFound("friend request", friendUsername)
	}
	if err := s.friendships.UpsertAccepted(ctx, tx, player.ID, friend.ID); err != nil {
		return domain.ErrInternal("upsert accepted edge", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	return nil
}

// ListFriends returns mutually accepted friends.
func (s *SocialService) ListFriends(ctx context.Context, playerID uuid.UUID) ([]domain.Friend, error) {
	friends, err := s.friendships.ListAccepted(ctx, s.pool, playerID)
	if err != nil {
		return nil, domain.ErrInternal("list friends", err)
	}
	return friends, nil
}

// ListRequests returns pending incoming requests.
func (s *SocialService) ListRequests(ctx context.Context, playerID uuid.UUID) ([]domain.Friend, error) {
	requests, err := s.friendships.ListIncoming(ctx, s.pool, playerID)
	if err != nil {
		return nil, domain.ErrInternal("list friend requests", err)
	}
	return requests, nil
}
