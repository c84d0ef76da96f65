//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/playvault/platform/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_BulkBanAndUnban(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, first := env.RegisterPlayer("puzzle-quest", "ban-a", "securepass123")
	_, second := env.RegisterPlayer("puzzle-quest", "ban-b", "securepass123")

	resp := env.AdminPOST("/admin/players/bulk/ban", map[string]interface{}{
		"player_ids": []uuid.UUID{first, second},
	})
	var result struct {
		Updated []uuid.UUID `json:"updated"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.Len(t, result.Updated, 2)

	unban := env.AdminPOST("/admin/players/bulk/unban", map[string]interface{}{
		"player_ids": []uuid.UUID{first},
	})
	var unbanned struct {
		Updated []uuid.UUID `json:"updated"`
	}
	testutil.DecodeJSON(t, unban, &unbanned)
	require.Len(t, unbanned.Updated, 1)

	token := env.LoginPlayer("puzzle-quest", "ban-a", "securepass123")
	assert.NotEmpty(t, token)
}

func TestAdmin_BulkBanSkipsUnknownIDs(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, known := env.RegisterPlayer("puzzle-quest", "ban-known", "securepass123")

	resp := env.AdminPOST("/admin/players/bulk/ban", map[string]interface{}{
		"player_ids": []uuid.UUID{known, uuid.New(), uuid.New()},
	})
	var result struct {
		Updated []uuid.UUID `json:"updated"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.Len(t, result.Updated, 1)
	assert.Equal(t, known, result.Updated[0])
}

func TestAdmin_BulkBanEmptyList(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.AdminPOST("/admin/players/bulk/ban", map[string]interface{}{
		"player_ids": []uuid.UUID{},
	})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	resp.Body.Close()
}

func TestAdmin_DeletePlayerCascades(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "doomed", "securepass123")
	friendToken, _ := env.RegisterPlayer("puzzle-quest", "survivor", "securepass123")

	// Give the player rows in every owned table.
	env.POST("/wallet/add", map[string]int64{"amount": 100}, token).Body.Close()
	env.POST("/inventory/add", map[string]interface{}{"item_name": "relic", "quantity": 1}, token).Body.Close()
	env.AuthPUT("/saves/slot", map[string]int{"v": 1}, token).Body.Close()
	env.POST("/friends/request", map[string]string{"username": "survivor"}, token).Body.Close()
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "doomed-hat", 0)
	env.POST("/cosmetics/"+cosmeticID.String()+"/buy", nil, token).Body.Close()

	resp := env.AdminDELETE("/admin/players/" + playerID.String())
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	// Player row and all dependents are gone.
	ctx := context.Background()
	for _, q := range []string{
		"SELECT COUNT(*) FROM players WHERE id = $1",
		"SELECT COUNT(*) FROM inventory_entries WHERE player_id = $1",
		"SELECT COUNT(*) FROM save_entries WHERE player_id = $1",
		"SELECT COUNT(*) FROM cosmetic_ownership WHERE player_id = $1",
		"SELECT COUNT(*) FROM friendships WHERE player_id = $1 OR friend_id = $1",
	} {
		var count int
		require.NoError(t, env.Pool.QueryRow(ctx, q, playerID).Scan(&count))
		assert.Zero(t, count, q)
	}

	// The session dies with the account.
	me := env.AuthGET("/players/me", token)
	defer me.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, me.StatusCode)

	// The surviving player sees no dangling request.
	reqs := env.AuthGET("/friends/requests", friendToken)
	var incoming []friendRow
	testutil.DecodeJSON(t, reqs, &incoming)
	assert.Empty(t, incoming)
}

func TestAdmin_DeleteUnknownPlayerIsIdempotent(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.AdminDELETE("/admin/players/" + uuid.New().String())
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestAdmin_BulkDelete(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, first := env.RegisterPlayer("puzzle-quest", "bd-a", "securepass123")
	_, second := env.RegisterPlayer("puzzle-quest", "bd-b", "securepass123")

	resp := env.AdminPOST("/admin/players/bulk/delete", map[string]interface{}{
		"player_ids": []uuid.UUID{first, second},
	})
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	var count int
	require.NoError(t, env.Pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM players WHERE id = ANY($1)", []uuid.UUID{first, second}).Scan(&count))
	assert.Zero(t, count)
}

func TestAdmin_ListPlayers(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.RegisterPlayer("puzzle-quest", "list-a", "securepass123")
	env.RegisterPlayer("puzzle-quest", "list-b", "securepass123")
	env.RegisterPlayer("tower-defense", "list-other", "securepass123")

	resp := env.AdminGET("/admin/players/?game_id=puzzle-quest")
	var players []struct {
		Username string `json:"username"`
	}
	testutil.DecodeJSON(t, resp, &players)
	assert.Len(t, players, 2)
}

func TestAdmin_GetPlayerDetail(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, playerID := env.RegisterPlayer("puzzle-quest", "detail", "securepass123")

	resp := env.AdminGET("/admin/players/" + playerID.String())
	var player struct {
		ID       uuid.UUID `json:"id"`
		Username string    `json:"username"`
	}
	testutil.DecodeJSON(t, resp, &player)
	assert.Equal(t, playerID, player.ID)
	assert.Equal(t, "detail", player.Username)
}

func TestAdmin_CosmeticCatalogCRUD(t *testing.T) {
	env := testutil.NewTestEnv(t)
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "crud-hat", 25)

	update := env.AdminPUT("/admin/cosmetics/"+cosmeticID.String(), map[string]interface{}{
		"name": "crud-hat-v2", "category": "hat", "price": 40, "rarity": "rare",
	})
	var updated struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
	}
	testutil.DecodeJSON(t, update, &updated)
	assert.Equal(t, "crud-hat-v2", updated.Name)
	assert.Equal(t, int64(40), updated.Price)

	del := env.AdminDELETE("/admin/cosmetics/" + cosmeticID.String())
	testutil.AssertStatus(t, del, http.StatusOK)
	del.Body.Close()

	list := env.AdminGET("/admin/cosmetics/?game_id=puzzle-quest")
	var defs []interface{}
	testutil.DecodeJSON(t, list, &defs)
	assert.Empty(t, defs)
}

func TestAdmin_DeleteCosmeticRemovesOwnership(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "losesit", "securepass123")
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "retired-hat", 0)

	env.POST("/cosmetics/"+cosmeticID.String()+"/buy", nil, token).Body.Close()

	del := env.AdminDELETE("/admin/cosmetics/" + cosmeticID.String())
	testutil.AssertStatus(t, del, http.StatusOK)
	del.Body.Close()

	owned := env.AuthGET("/cosmetics/owned", token)
	var items []interface{}
	testutil.DecodeJSON(t, owned, &items)
	assert.Empty(t, items)
}

func TestAdmin_WrongSecretRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)

	req, err := http.NewRequest("GET", env.Server.URL+"/admin/players/?game_id=puzzle-quest", nil)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Secret", "wrong-secret")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
