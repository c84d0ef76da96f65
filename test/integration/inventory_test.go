//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/playvault/platform/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventoryRow struct {
	ItemName string          `json:"item_name"`
	Quantity int64           `json:"quantity"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

func TestInventory_AddCreatesStack(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "collector", "securepass123")

	resp := env.POST("/inventory/add", map[string]interface{}{
		"item_name": "health_potion", "quantity": 3,
		"metadata": map[string]string{"color": "red"},
	}, token)
	var entry inventoryRow
	testutil.DecodeJSON(t, resp, &entry)
	assert.Equal(t, "health_potion", entry.ItemName)
	assert.Equal(t, int64(3), entry.Quantity)
}

func TestInventory_AddIncrementsExistingStack(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "stacker", "securepass123")

	env.POST("/inventory/add", map[string]interface{}{
		"item_name": "arrow", "quantity": 10,
	}, token).Body.Close()

	resp := env.POST("/inventory/add", map[string]interface{}{
		"item_name": "arrow", "quantity": 5,
	}, token)
	var entry inventoryRow
	testutil.DecodeJSON(t, resp, &entry)

	// One row per item, never duplicates.
	assert.Equal(t, int64(15), entry.Quantity)

	list := env.AuthGET("/inventory/", token)
	var entries []inventoryRow
	testutil.DecodeJSON(t, list, &entries)
	require.Len(t, entries, 1)
}

func TestInventory_IncrementKeepsOriginalMetadata(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "metakeeper", "securepass123")

	env.POST("/inventory/add", map[string]interface{}{
		"item_name": "sword", "quantity": 1,
		"metadata": map[string]string{"enchant": "fire"},
	}, token).Body.Close()

	resp := env.POST("/inventory/add", map[string]interface{}{
		"item_name": "sword", "quantity": 1,
		"metadata": map[string]string{"enchant": "ice"},
	}, token)
	var entry inventoryRow
	testutil.DecodeJSON(t, resp, &entry)

	var meta map[string]string
	require.NoError(t, json.Unmarshal(entry.Metadata, &meta))
	assert.Equal(t, "fire", meta["enchant"])
}

func TestInventory_RemovePartial(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "partial", "securepass123")

	env.POST("/inventory/add", map[string]interface{}{
		"item_name": "gem", "quantity": 10,
	}, token).Body.Close()

	resp := env.POST("/inventory/remove", map[string]interface{}{
		"item_name": "gem", "quantity": 4,
	}, token)
	var result struct {
		Quantity int64 `json:"quantity"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, int64(6), result.Quantity)
}

func TestInventory_RemoveFloorsAtZeroAndDeletesRow(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "floorer", "securepass123")

	env.POST("/inventory/add", map[string]interface{}{
		"item_name": "coin", "quantity": 5,
	}, token).Body.Close()

	// Removing more than stored clears the stack instead of erroring.
	resp := env.POST("/inventory/remove", map[string]interface{}{
		"item_name": "coin", "quantity": 99,
	}, token)
	var result struct {
		Quantity int64 `json:"quantity"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, int64(0), result.Quantity)

	list := env.AuthGET("/inventory/", token)
	var entries []inventoryRow
	testutil.DecodeJSON(t, list, &entries)
	assert.Empty(t, entries)
}

func TestInventory_RemoveUnknownItem(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "nostock", "securepass123")

	resp := env.POST("/inventory/remove", map[string]interface{}{
		"item_name": "unicorn", "quantity": 1,
	}, token)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestInventory_AddRejectsNonPositiveQuantity(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token, _ := env.RegisterPlayer("puzzle-quest", "zeroqty", "securepass123")

	resp := env.POST("/inventory/add", map[string]interface{}{
		"item_name": "rock", "quantity": 0,
	}, token)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	resp.Body.Close()
}
