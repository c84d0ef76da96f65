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

func TestWallet_AddAndBalance(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "earner", "securepass123")

	resp := env.POST("/wallet/add", map[string]int64{"amount": 500}, token)
	var result struct {
		Balance int64 `json:"balance"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, int64(500), result.Balance)

	testutil.AssertBalance(t, env, playerID, 500)
}

func TestWallet_SpendSuccess(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "spender", "securepass123")

	env.POST("/wallet/add", map[string]int64{"amount": 300}, token).Body.Close()

	resp := env.POST("/wallet/spend", map[string]int64{"amount": 120}, token)
	var result struct {
		Balance int64 `json:"balance"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, int64(180), result.Balance)

	testutil.AssertBalance(t, env, playerID, 180)
}

func TestWallet_SpendInsufficientFunds(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "broke", "securepass123")

	env.POST("/wallet/add", map[string]int64{"amount": 50}, token).Body.Close()

	resp := env.POST("/wallet/spend", map[string]int64{"amount": 51}, token)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "INSUFFICIENT_FUNDS")

	// A failed spend mutates nothing.
	testutil.AssertBalance(t, env, playerID, 50)
}

func TestWallet_SpendRejectsNonPositive(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "zerospend", "securepass123")

	for _, amount := range []int64{0, -10} {
		resp := env.POST("/wallet/spend", map[string]int64{"amount": amount}, token)
		testutil.AssertStatus(t, resp, http.StatusBadRequest)
		resp.Body.Close()
	}
}

func TestWallet_ConcurrentSpendsNeverOverdraw(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "racer", "securepass123")

	env.POST("/wallet/add", map[string]int64{"amount": 100}, token).Body.Close()

	// 10 concurrent spends of 30 against a balance of 100: at most 3 can win.
	const workers = 10
	var wg sync.WaitGroup
	succeeded := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := env.POST("/wallet/spend", map[string]int64{"amount": 30}, token)
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				succeeded <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(succeeded)

	wins := 0
	for range succeeded {
		wins++
	}
	assert.Equal(t, 3, wins)
	testutil.AssertBalance(t, env, playerID, 10)
}

func TestWallet_SpendWritesOutboxEvent(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "audited", "securepass123")

	before := testutil.CountOutboxEvents(t, env, playerID)

	env.POST("/wallet/add", map[string]int64{"amount": 100}, token).Body.Close()
	env.POST("/wallet/spend", map[string]int64{"amount": 40}, token).Body.Close()

	after := testutil.CountOutboxEvents(t, env, playerID)
	assert.Equal(t, before+2, after)
}

func TestAdmin_GiveCredits(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, playerID := env.RegisterPlayer("puzzle-quest", "gifted", "securepass123")

	resp := env.AdminPOST("/admin/players/"+playerID.String()+"/credits/give", map[string]int64{"amount": 1000})
	var result struct {
		Balance int64 `json:"balance"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, int64(1000), result.Balance)
}

func TestAdmin_SetCredits(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, playerID := env.RegisterPlayer("puzzle-quest", "setme", "securepass123")

	env.POST("/wallet/add", map[string]int64{"amount": 777}, token).Body.Close()

	resp := env.AdminPOST("/admin/players/"+playerID.String()+"/credits/set", map[string]int64{"amount": 42})
	var result struct {
		Balance int64 `json:"balance"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, int64(42), result.Balance)
	testutil.AssertBalance(t, env, playerID, 42)
}

func TestAdmin_SetCreditsRejectsNegative(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, playerID := env.RegisterPlayer("puzzle-quest", "negset", "securepass123")

	resp := env.AdminPOST("/admin/players/"+playerID.String()+"/credits/set", map[string]int64{"amount": -1})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	resp.Body.Close()
}

func TestAdmin_GiveCreditsUnknownPlayer(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.AdminPOST("/admin/players/"+uuid.New().String()+"/credits/give", map[string]int64{"amount": 10})
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestAdmin_BulkGiveCredits(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, first := env.RegisterPlayer("puzzle-quest", "bulk1", "securepass123")
	_, second := env.RegisterPlayer("puzzle-quest", "bulk2", "securepass123")
	ghost := uuid.New()

	resp := env.AdminPOST("/admin/players/bulk/credits", map[string]interface{}{
		"player_ids": []uuid.UUID{first, second, ghost},
		"amount":     250,
	})
	var result struct {
		Updated []uuid.UUID `json:"updated"`
	}
	testutil.DecodeJSON(t, resp, &result)

	// Unknown ids are skipped, not errors.
	require.Len(t, result.Updated, 2)
	testutil.AssertBalance(t, env, first, 250)
	testutil.AssertBalance(t, env, second, 250)
}
