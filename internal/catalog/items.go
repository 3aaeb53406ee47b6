package catalog

import (
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// GameItems 全部物品定义
var GameItems = []models.Item{
	{
		ID:          "item_potion_focus",
		Name:        "Elixir of Focus",
		Description: "Instantly grants 50 XP to Intelligence.",
		Type:        models.ItemConsumable,
		Rarity:      models.RarityCommon,
		Effect:      &models.ItemEffect{Type: models.EffectXPBoost, Value: 50},
		Price:       100,
		Icon:        "FlaskConical",
	},
	{
		ID:          "item_potion_health",
		Name:        "Stimpack",
		Description: "Restores 25 HP (Discipline).",
		Type:        models.ItemConsumable,
		Rarity:      models.RarityCommon,
		Effect:      &models.ItemEffect{Type: models.EffectHeal, Value: 25},
		Price:       150,
		Icon:        "Syringe",
	},
	{
		ID:          "item_chrono_freeze",
		Name:        "Chronos Stasis",
		Description: "Freezes your streak for 1 day, preventing decay.",
		Type:        models.ItemConsumable,
		Rarity:      models.RarityRare,
		Effect:      &models.ItemEffect{Type: models.EffectFreezeStreak, Value: 1},
		Price:       500,
		Icon:        "Snowflake",
	},
	{
		ID:          "item_ancient_scroll",
		Name:        "Scroll of Wisdom",
		Description: "A legendary text that boosts all stats slightly.",
		Type:        models.ItemArtifact,
		Rarity:      models.RarityLegendary,
		Effect:      &models.ItemEffect{Type: models.EffectXPBoost, Value: 200},
		Price:       1000,
		Icon:        "Scroll",
	},
	{
		ID:          "item_lootbox_common",
		Name:        "Supply Crate",
		Description: "A sealed crate containing basic supplies.",
		Type:        models.ItemLootbox,
		Rarity:      models.RarityCommon,
		Price:       50,
		Icon:        "Box",
	},
	{
		ID:          "item_lootbox_rare",
		Name:        "Cyber Cache",
		Description: "Encrypted data cache with valuable rewards.",
		Type:        models.ItemLootbox,
		Rarity:      models.RarityRare,
		Price:       200,
		Icon:        "Briefcase",
	},
	{
		ID:          "item_lootbox_legendary",
		Name:        "Neural Vault",
		Description: "High-security vault containing legendary artifacts.",
		Type:        models.ItemLootbox,
		Rarity:      models.RarityLegendary,
		Price:       500,
		Icon:        "Safe",
	},
}

// ItemByID 按ID查找物品定义
func ItemByID(id string) (models.Item, bool) {
	for _, item := range GameItems {
		if item.ID == id {
			return item, true
		}
	}
	return models.Item{}, false
}

// ItemsByRarity 按稀有度筛选全部物品（含宝箱）
func ItemsByRarity(rarities ...models.Rarity) []models.Item {
	var result []models.Item
	for _, item := range GameItems {
		for _, r := range rarities {
			if item.Rarity == r {
				result = append(result, item)
				break
			}
		}
	}
	return result
}

// DropPool 按稀有度筛选可从宝箱开出的物品（不含宝箱本身）
func DropPool(rarities ...models.Rarity) []models.Item {
	var result []models.Item
	for _, item := range GameItems {
		if item.Type == models.ItemLootbox {
			continue
		}
		for _, r := range rarities {
			if item.Rarity == r {
				result = append(result, item)
				break
			}
		}
	}
	return result
}
