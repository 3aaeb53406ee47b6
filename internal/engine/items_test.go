package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

func TestBuyItem(t *testing.T) {
	e := New()
	state := newTestState()
	item, _ := catalog.ItemByID("item_potion_focus") // 100 Credits

	ok := e.BuyItem(state, item)
	assert.True(t, ok)
	assert.Equal(t, 0, state.User.Credits)
	require.Len(t, state.User.Inventory, 1)
}

func TestBuyItemInsufficientCreditsNoop(t *testing.T) {
	e := New()
	state := newTestState()
	item, _ := catalog.ItemByID("item_ancient_scroll") // 1000 Credits

	ok := e.BuyItem(state, item)
	assert.False(t, ok)
	assert.Equal(t, 100, state.User.Credits)
	assert.Empty(t, state.User.Inventory)
}

func TestUseItemHealClampsToMax(t *testing.T) {
	e := New()
	state := newTestState()
	item, _ := catalog.ItemByID("item_potion_health") // 回复25
	state.User.HP = 90
	state.User.Inventory = []models.Item{item}

	_, err := e.UseItem(state, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, state.User.HP)
	assert.Empty(t, state.User.Inventory)
}

func TestUseItemXPBoostSkipsLevelCheck(t *testing.T) {
	// 物品经验直接入账，即使越过升级门槛也不触发升级
	e := New()
	state := newTestState()
	item, _ := catalog.ItemByID("item_potion_focus") // +50经验
	state.User.XP = 90
	state.User.Inventory = []models.Item{item}

	_, err := e.UseItem(state, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 140, state.User.XP)
	assert.Equal(t, 1, state.User.Level)
}

func TestUseItemFreezeStreakInert(t *testing.T) {
	e := New()
	state := newTestState()
	item, _ := catalog.ItemByID("item_chrono_freeze")
	state.User.Streak = 5
	state.User.Inventory = []models.Item{item}

	_, err := e.UseItem(state, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, state.User.Streak)
	assert.Empty(t, state.User.Inventory)
}

func TestUseItemLootboxReplacedByDrop(t *testing.T) {
	e := New()
	state := newTestState()
	box, _ := catalog.ItemByID("item_lootbox_common")
	state.User.Inventory = []models.Item{box}

	msg, err := e.UseItem(state, box.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "Opened Supply Crate")
	require.Len(t, state.User.Inventory, 1)
	assert.NotEqual(t, models.ItemLootbox, state.User.Inventory[0].Type)
}

func TestUseItemLootboxNoDropKeepsBox(t *testing.T) {
	saved := catalog.GameItems
	defer func() { catalog.GameItems = saved }()

	box := models.Item{ID: "item_lootbox_common", Name: "Supply Crate", Type: models.ItemLootbox, Rarity: models.RarityCommon}
	// 物品表里除宝箱外什么都没有，开箱无物可掉
	catalog.GameItems = []models.Item{box}

	e := New()
	state := newTestState()
	state.User.Inventory = []models.Item{box}

	msg, err := e.UseItem(state, box.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "stays shut")
	// 宝箱不消耗
	require.Len(t, state.User.Inventory, 1)
	assert.Equal(t, models.ItemLootbox, state.User.Inventory[0].Type)
}

func TestUseItemNotOwned(t *testing.T) {
	e := New()
	state := newTestState()

	_, err := e.UseItem(state, "item_potion_focus")
	assert.Error(t, err)
}

func TestUseItemArtifactNotUsable(t *testing.T) {
	e := New()
	state := newTestState()
	item, _ := catalog.ItemByID("item_ancient_scroll")
	state.User.Inventory = []models.Item{item}

	_, err := e.UseItem(state, item.ID)
	assert.Error(t, err)
	assert.Len(t, state.User.Inventory, 1)
}
