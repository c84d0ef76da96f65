//go:build integration

package integration

import (
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/playvault/platform/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCosmetic(t *testing.T, env *testutil.TestEnv, gameID, name string, price int64) uuid.UUID {
	t.Helper()
	resp := env.AdminPOST("/admin/cosmetics/", map[string]interface{}{
		"game_id": gameID, "name": name, "category": "hat", "price": price, "rarity": "common",
	})
	var result struct {
		ID uuid.UUID `json:"id"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEqual(t, uuid.Nil, result.ID)
	return result.ID
}

func TestCosmetics_BuyDebitsAndGrants(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "buyer", "securepass123")
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "wizard-hat", 100)

	env.POST("/wallet/add", map[string]int64{"amount": 250}, token).Body.Close()

	resp := env.POST("/cosmetics/"+cosmeticID.String()+"/buy", nil, token)
	var result struct {
		Balance int64 `json:"balance"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, int64(150), result.Balance)
	testutil.AssertBalance(t, env, playerID, 150)

	owned := env.AuthGET("/cosmetics/owned", token)
	var items []struct {
		ID uuid.UUID `json:"id"`
	}
	testutil.DecodeJSON(t, owned, &items)
	require.Len(t, items, 1)
	assert.Equal(t, cosmeticID, items[0].ID)
}

func TestCosmetics_BuyInsufficientFunds(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "poorbuyer", "securepass123")
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "gold-crown", 1000)

	env.POST("/wallet/add", map[string]int64{"amount": 10}, token).Body.Close()

	resp := env.POST("/cosmetics/"+cosmeticID.String()+"/buy", nil, token)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "INSUFFICIENT_FUNDS")

	// Neither the debit nor the grant happened.
	testutil.AssertBalance(t, env, playerID, 10)
	owned := env.AuthGET("/cosmetics/owned", token)
	var items []interface{}
	testutil.DecodeJSON(t, owned, &items)
	assert.Empty(t, items)
}

func TestCosmetics_BuyTwiceConflicts(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "rebuyer", "securepass123")
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "cape", 50)

	env.POST("/wallet/add", map[string]int64{"amount": 200}, token).Body.Close()

	env.POST("/cosmetics/"+cosmeticID.String()+"/buy", nil, token).Body.Close()

	resp := env.POST("/cosmetics/"+cosmeticID.String()+"/buy", nil, token)
	testutil.AssertStatus(t, resp, http.StatusConflict)
	resp.Body.Close()

	// Only the first purchase debited.
	testutil.AssertBalance(t, env, playerID, 150)
}

func TestCosmetics_ConcurrentBuyDebitsOnce(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "racebuyer", "securepass123")
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "mask", 100)

	env.POST("/wallet/add", map[string]int64{"amount": 500}, token).Body.Close()

	const workers = 5
	var wg sync.WaitGroup
	statuses := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := env.POST("/cosmetics/"+cosmeticID.String()+"/buy", nil, token)
			defer resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	wins := 0
	for status := range statuses {
		if status == http.StatusOK {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
	testutil.AssertBalance(t, env, playerID, 400)
}

func TestCosmetics_BuyWrongTenant(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "crosstenant", "securepass123")
	otherGameCosmetic := createCosmetic(t, env, "tower-defense", "turret-skin", 10)

	env.POST("/wallet/add", map[string]int64{"amount": 100}, token).Body.Close()

	// Another game's catalog entries don't exist from this tenant's view.
	resp := env.POST("/cosmetics/"+otherGameCosmetic.String()+"/buy", nil, token)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestCosmetics_BuyFreeCosmetic(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "freeloader", "securepass123")
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "starter-badge", 0)

	resp := env.POST("/cosmetics/"+cosmeticID.String()+"/buy", nil, token)
	var result struct {
		Balance int64 `json:"balance"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, int64(0), result.Balance)
	testutil.AssertBalance(t, env, playerID, 0)
}

func TestCosmetics_EquipOwned(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "equipper", "securepass123")
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "boots", 0)

	env.POST("/cosmetics/"+cosmeticID.String()+"/buy", nil, token).Body.Close()

	resp := env.POST("/cosmetics/"+cosmeticID.String()+"/equip", map[string]bool{"equipped": true}, token)
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	owned := env.AuthGET("/cosmetics/owned", token)
	var items []struct {
		Equipped bool `json:"equipped"`
	}
	testutil.DecodeJSON(t, owned, &items)
	require.Len(t, items, 1)
	assert.True(t, items[0].Equipped)
}

func TestCosmetics_EquipUnowned(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "pretender", "securepass123")
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "halo", 10)

	resp := env.POST("/cosmetics/"+cosmeticID.String()+"/equip", map[string]bool{"equipped": true}, token)
	testutil.AssertStatus(t, resp, http.StatusForbidden)
	resp.Body.Close()
}

func TestCosmetics_AdminGrantIsFree(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "grantee", "securepass123")
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "vip-aura", 9999)

	resp := env.AdminPOST("/admin/cosmetics/"+cosmeticID.String()+"/grant", map[string]interface{}{
		"player_id": playerID,
	})
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	testutil.AssertBalance(t, env, playerID, 0)

	owned := env.AuthGET("/cosmetics/owned", token)
	var items []interface{}
	testutil.DecodeJSON(t, owned, &items)
	assert.Len(t, items, 1)
}

func TestCosmetics_AdminGrantAlreadyOwnedIsNoop(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "regrantee", "securepass123")
	cosmeticID := createCosmetic(t, env, "puzzle-quest", "medal", 0)

	env.POST("/cosmetics/"+cosmeticID.String()+"/buy", nil, token).Body.Close()

	resp := env.AdminPOST("/admin/cosmetics/"+cosmeticID.String()+"/grant", map[string]interface{}{
		"player_id": playerID,
	})
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestCosmetics_CatalogScopedToTenant(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "browser", "securepass123")
	createCosmetic(t, env, "puzzle-quest", "visible-hat", 10)
	createCosmetic(t, env, "tower-defense", "hidden-hat", 10)

	resp := env.AuthGET("/cosmetics/", token)
	var items []struct {
		Name string `json:"name"`
	}
	testutil.DecodeJSON(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "visible-hat", items[0].Name)
}
