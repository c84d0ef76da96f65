package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/playvault/platform/internal/domain"
	"github.com/playvault/platform/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statRow(username string, raw string, createdAt int64) repository.StatRow {
	return repository.StatRow{
		PlayerID:  uuid.New(),
		Username:  username,
		Raw:       json.RawMessage(raw),
		CreatedAt: createdAt,
	}
}

func TestParseStatValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"json number", `42`, 42, true},
		{"json float", `13.5`, 13.5, true},
		{"negative number", `-7`, -7, true},
		{"numeric string", `"1200"`, 1200, true},
		{"float string", `"3.14"`, 3.14, true},
		{"non-numeric string", `"abc"`, 0, false},
		{"object", `{"score":5}`, 0, false},
		{"array", `[1,2]`, 0, false},
		{"bool", `true`, 0, false},
		{"null", `null`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseStatValue(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRankStatRows(t *testing.T) {
	t.Run("orders by value descending", func(t *testing.T) {
		rows := []repository.StatRow{
			statRow("low", `10`, 1),
			statRow("high", `100`, 2),
			statRow("mid", `50`, 3),
		}

		entries := rankStatRows(rows, 10)
		require.Len(t, entries, 3)
		assert.Equal(t, "high", entries[0].Username)
		assert.Equal(t, "mid", entries[1].Username)
		assert.Equal(t, "low", entries[2].Username)
		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, 2, entries[1].Rank)
		assert.Equal(t, 3, entries[2].Rank)
	})

	t.Run("ties break by account age", func(t *testing.T) {
		rows := []repository.StatRow{
			statRow("newer", `50`, 200),
			statRow("older", `50`, 100),
		}

		entries := rankStatRows(rows, 10)
		require.Len(t, entries, 2)
		assert.Equal(t, "older", entries[0].Username)
		assert.Equal(t, "newer", entries[1].Username)
	})

	t.Run("skips non-numeric values", func(t *testing.T) {
		rows := []repository.StatRow{
			statRow("valid", `7`, 1),
			statRow("junk", `{"nested":true}`, 2),
			statRow("text", `"not a number"`, 3),
		}

		entries := rankStatRows(rows, 10)
		require.Len(t, entries, 1)
		assert.Equal(t, "valid", entries[0].Username)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		rows := []repository.StatRow{
			statRow("a", `3`, 1),
			statRow("b", `2`, 2),
			statRow("c", `1`, 3),
		}

		entries := rankStatRows(rows, 2)
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].Username)
		assert.Equal(t, "b", entries[1].Username)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		entries := rankStatRows(nil, 10)
		assert.Empty(t, entries)
	})
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultLeaderboardLimit, clampLimit(0))
	assert.Equal(t, defaultLeaderboardLimit, clampLimit(-5))
	assert.Equal(t, 25, clampLimit(25))
	assert.Equal(t, maxLeaderboardLimit, clampLimit(10_000))
}

func TestLeaderboardCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := &LeaderboardService{
		cache: client,
		log:   slog.Default(),
	}

	ctx := context.Background()
	entries := []domain.LeaderboardEntry{
		{Rank: 1, PlayerID: uuid.New(), Username: "top", Value: 500},
		{Rank: 2, PlayerID: uuid.New(), Username: "second", Value: 250},
	}

	_, ok := svc.fromCache(ctx, "lb:test:credits:10")
	assert.False(t, ok)

	svc.toCache(ctx, "lb:test:credits:10", entries)

	got, ok := svc.fromCache(ctx, "lb:test:credits:10")
	require.True(t, ok)
	assert.Equal(t, entries, got)

	mr.FastForward(leaderboardCacheTTL + time.Second)
	_, ok = svc.fromCache(ctx, "lb:test:credits:10")
	assert.False(t, ok)
}

func TestLeaderboardCacheNilClient(t *testing.T) {
	svc := &LeaderboardService{log: slog.Default()}

	_, ok := svc.fromCache(context.Background(), "lb:test:credits:10")
	assert.False(t, ok)

	// Must not panic without a client.
	svc.toCache(context.Background(), "lb:test:credits:10", nil)
}
