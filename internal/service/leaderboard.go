package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/repository"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
	leaderboardCacheTTL     = 30 * time.Second
)

// LeaderboardService projects ranked views over credits and save-data stats.
// Projections are read-only and derived entirely from stored state. A Redis
// client may be nil, in which case every read goes to Postgres.
type LeaderboardService struct {
	pool    *pgxpool.Pool
	players repository.PlayerRepository
	saves   repository.SaveRepository
	cache   *redis.Client
	log     *slog.Logger
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(pool *pgxpool.Pool, players repository.PlayerRepository, saves repository.SaveRepository, cache *redis.Client, log *slog.Logger) *LeaderboardService {
	return &LeaderboardService{pool: pool, players: players, saves: saves, cache: cache, log: log}
}

// TopByCredits ranks non-banned players of the tenant by balance.
func (s *LeaderboardService) TopByCredits(ctx context.Context, gameID string, limit int) ([]domain.LeaderboardEntry, error) {
	if err := domain.ValidateGameID(gameID); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("lb:%s:credits:%d", gameID, limit)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	rows, err := s.players.TopByCredits(ctx, s.pool, gameID, limit)
	if err != nil {
		return nil, domain.ErrInternal("query credit leaderboard", err)
	}

	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{
			Rank:     i + 1,
			PlayerID: row.PlayerID,
			Username: row.Username,
			Value:    float64(row.Balance),
		}
	}

	s.toCache(ctx, cacheKey, entries)
	return entries, nil
}

// TopByStat ranks non-banned players by a numeric save-data value stored
// under key. Entries whose value is not a number (or a numeric string) are
// excluded rather than erroring the whole projection.
func (s *LeaderboardService) TopByStat(ctx context.Context, gameID, key string, limit int) ([]domain.LeaderboardEntry, error) {
	if err := domain.ValidateGameID(gameID); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	if err := domain.ValidateSaveKey(key); err != nil {
		return nil, domain.ErrInvalidArgument(err.Error())
	}
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("lb:%s:stat:%s:%d", gameID, key, limit)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	rows, err := s.saves.StatValues(ctx, s.pool, gameID, key)
	if err != nil {
		return nil, domain.ErrInternal("query stat leaderboard", err)
	}

	entries := rankStatRows(rows, limit)
	s.toCache(ctx, cacheKey, entries)
	return entries, nil
}

// rankStatRows parses, sorts and ranks raw stat rows. Ordering is value
// descending, then account age ascending, then id, so repeated projections
// over identical state produce identical output.
func rankStatRows(rows []repository.StatRow, limit int) []domain.LeaderboardEntry {
	type scored struct {
		row   repository.StatRow
		value float64
	}

	scoredRows := make([]scored, 0, len(rows))
	for _, row := range rows {
		value, ok := parseStatValue(row.Raw)
		if !ok {
			continue
		}
		scoredRows = append(scoredRows, scored{row: row, value: value})
	}

	sort.Slice(scoredRows, func(i, j int) bool {
		a, b := scoredRows[i], scoredRows[j]
		if a.value != b.value {
			return a.value > b.value
		}
		if a.row.CreatedAt != b.row.CreatedAt {
			return a.row.CreatedAt < b.row.CreatedAt
		}
		return a.row.PlayerID.String() < b.row.PlayerID.String()
	})

	if len(scoredRows) > limit {
		scoredRows = scoredRows[:limit]
	}

	entries := make([]domain.LeaderboardEntry, len(scoredRows))
	for i, sr := range scoredRows {
		entries[i] = domain.LeaderboardEntry{
			Rank:     i + 1,
			PlayerID: sr.row.PlayerID,
			Username: sr.row.Username,
			Value:    sr.value,
		}
	}
	return entries
}

// parseStatValue extracts a float from a raw JSON value. Accepts JSON
// numbers and numeric strings; everything else is skipped.
func parseStatValue(raw json.RawMessage) (float64, bool) {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if num, err := strconv.ParseFloat(str, 64); err == nil {
			return num, true
		}
	}
	return 0, false
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		return maxLeaderboardLimit
	}
	return limit
}

func (s *LeaderboardService) fromCache(ctx context.Context, key string) ([]domain.LeaderboardEntry, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("leaderboard cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (s *LeaderboardService) toCache(ctx context.Context, key string, entries []domain.LeaderboardEntry) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, leaderboardCacheTTL).Err(); err != nil {
		s.log.Warn("leaderboard cache write failed", "key", key, "error", err)
	}
}
