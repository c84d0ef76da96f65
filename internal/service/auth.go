package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playvault/platform/internal/auth"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and credential resets.
type AuthService struct {
	pool    *pgxpool.Pool
	players repository.PlayerRepository
	outbox  repository.OutboxRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(pool *pgxpool.Pool, players repository.PlayerRepository, outbox repository.OutboxRepository) *AuthService {
	return &AuthService{pool: pool, players: players, outbox: outbox}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	GameID   string `json:"game_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginInput holds the login request fields.
type LoginInput struct {
	GameID   string `json:"game_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	PlayerID uuid.UUID `json:"player_id"`
	Token    string    `json:"token"`
	Balance  int64     `json:"balance"`
}

// Register creates a new player with a zero balance and a fresh session.
// (game, username) collisions fail with Conflict and mutate nothing.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateGameID(input.GameID); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}

	existing, err := s.players.FindByGameAndUsername(ctx, s.pool, input.GameID, input.Username)
	if err != nil {
		return nil, domain.ErrInternal("find player", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	player := &domain.Player{
		ID:           uuid.New(),
		GameID:       input.GameID,
		Username:     input.Username,
		PasswordHash: string(hash),
		SessionToken: &token,
	}
	if err := s.players.Create(ctx, tx, player); err != nil {
		// Two concurrent registrations can both pass the lookup; the unique
		// index decides the winner.
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict("username already taken")
		}
		return nil, domain.ErrInternal("create player", err)
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewPlayerRegisteredEvent(player)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	return &AuthResult{PlayerID: player.ID, Token: token, Balance: 0}, nil
}

// Login verifies credentials and rotates the session token, invalidating any
// prior session for the player.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	player, err := s.players.FindByGameAndUsername(ctx, s.pool, input.GameID, input.Username)
	if err != nil {
		return nil, domain.ErrInternal("find player", err)
	}
	if player == nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	if player.Banned {
		return nil, domain.ErrForbidden("account is banned")
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}
	if err := s.players.SetSessionToken(ctx, s.pool, player.ID, token); err != nil {
		return nil, domain.ErrInternal("rotate token", err)
	}

	return &AuthResult{PlayerID: player.ID, Token: token, Balance: player.Balance}, nil
}

// AdminResetPassword rehashes the credential and rotates the session token in
// one statement, so a stale token cannot race the reset.
func (s *AuthService) AdminResetPassword(ctx context.Context, playerID uuid.UUID, newPassword string) (string, error) {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return "", domain.ErrInvalidArgument(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.ErrInternal("hash password", err)
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return "", domain.ErrInternal("generate token", err)
	}

	if err := s.players.UpdateCredentials(ctx, s.pool, playerID, string(hash), token); err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return "", appErr
		}
		return "", domain.ErrInternal("update credentials", err)
	}

	return token, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
