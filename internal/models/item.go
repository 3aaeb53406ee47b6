package models

// ItemType 物品类型
type ItemType string

const (
	ItemConsumable ItemType = "CONSUMABLE"
	ItemArtifact   ItemType = "ARTIFACT"
	ItemCosmetic   ItemType = "COSMETIC"
	ItemLootbox    ItemType = "LOOTBOX"
)

// Rarity 物品稀有度
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityLegendary Rarity = "LEGENDARY"
)

// EffectType 物品效果类型
type EffectType string

const (
	EffectHeal         EffectType = "HEAL"
	EffectXPBoost      EffectType = "XP_BOOST"
	EffectFreezeStreak EffectType = "FREEZE_STREAK"
	EffectRestoreMana  EffectType = "RESTORE_MANA"
)

// ItemEffect 使用物品时触发的效果
type ItemEffect struct {
	Type  EffectType `json:"type"`
	Value int        `json:"value"`
}

// Item 物品模型
type Item struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        ItemType    `json:"type"`
	Rarity      Rarity      `json:"rarity"`
	Effect      *ItemEffect `json:"effect,omitempty"`
	Price       int         `json:"price"`
	Icon        string      `json:"icon"`
}
