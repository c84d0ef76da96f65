package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/repository"
)

// SaveService stores free-form per-player JSON blobs keyed by name. The
// server never interprets the shape of a value.
type SaveService struct {
	pool  *pgxpool.Pool
	saves repository.SaveRepository
}

// NewSaveService creates a new SaveService.
func NewSaveService(pool *pgxpool.Pool, saves repository.SaveRepository) *SaveService {
	return &SaveService{pool: pool, saves: saves}
}

// Put upserts a save entry. Last write wins.
func (s *SaveService) Put(ctx context.Context, playerID uuid.UUID, key string, value json.RawMessage) error {
	if err := domain.ValidateSaveKey(key); err != nil {
		return domain.ErrInvalidArgument(err.Error())
	}
	if !json.Valid(value) {
		return domain.ErrInvalidArgument("value must be valid JSON")
	}

	if err := s.saves.Upsert(ctx, s.pool, playerID, key, value); err != nil {
		return domain.ErrInternal("upsert save entry", err)
	}
	return nil
}

// Get returns one save entry.
func (s *SaveService) Get(ctx context.Context, playerID uuid.UUID, key string) (*domain.SaveEntry, error) {
	entry, err := s.saves.Get(ctx, s.pool, playerID, key)
	if err != nil {
		return nil, domain.ErrInternal("get save entry", err)
	}
	if entry == nil {
		return nil, domain.ErrNotFound("save entry", key)
	}
	return entry, nil
}

// List returns all of the player's save entries.
func (s *SaveService) List(ctx context.Context, playerID uuid.UUID) ([]domain.SaveEntry, error) {
	entries, err := s.saves.List(ctx, s.pool, playerID)
	if err != nil {
		return nil, domain.ErrInternal("list save entries", err)
	}
	return entries, nil
}

// Delete removes one save entry. Deleting an absent key succeeds.
func (s *SaveService) Delete(ctx context.Context, playerID uuid.UUID, key string) error {
	if err := s.saves.Delete(ctx, s.pool, playerID, key); err != nil {
		return domain.ErrInternal("delete save entry", err)
	}
	return nil
}

// GameConfigService stores per-tenant configuration values readable by any
// authenticated player of that game and writable only by admins.
type GameConfigService struct {
	pool   *pgxpool.Pool
	config repository.ConfigRepository
}

// NewGameConfigService creates a new GameConfigService.
func NewGameConfigService(pool *pgxpool.Pool, config repository.ConfigRepository) *GameConfigService {
	return &GameConfigService{pool: pool, config: config}
}

// Put upserts a config value (admin).
func (s *GameConfigService) Put(ctx context.Context, gameID, key string, value json.RawMessage) error {
	if err := domain.ValidateGameID(gameID); err != nil {
		return domain.ErrInvalidArgument(err.Error())
	}
	if err := domain.ValidateSaveKey(key); err != nil {
		return domain.ErrInvalidArgument(err.Error())
	}
	if !json.Valid(value) {
		return domain.ErrInvalidArgument("value must be valid JSON")
	}

	if err := s.config.Upsert(ctx, s.pool, gameID, key, value); err != nil {
		return domain.ErrInternal("upsert config entry", err)
	}
	return nil
}

// Get returns one config value.
func (s *GameConfigService) Get(ctx context.Context, gameID, key string) (*domain.ConfigEntry, error) {
	entry, err := s.config.Get(ctx, s.pool, gameID, key)
	if err != nil {
		return nil, domain.ErrInternal("get config entry", err)
	}
	if entry == nil {
		return nil, domain.ErrNotFound("config entry", key)
	}
	return entry, nil
}

// List returns all config values for the tenant.
func (s *GameConfigService) List(ctx context.Context, gameID string) ([]domain.ConfigEntry, error) {
	entries, err := s.config.List(ctx, s.pool, gameID)
	if err != nil {
		return nil, domain.ErrInternal("list config entries", err)
	}
	return entries, nil
}

// Delete removes a config value (admin). Deleting an absent key succeeds.
func (s *GameConfigService) Delete(ctx context.Context, gameID, key string) error {
	if err := s.config.Delete(ctx, s.pool, gameID, key); err != nil {
		return domain.ErrInternal("delete config entry", err)
	}
	return nil
}
