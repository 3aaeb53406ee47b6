package engine

import (
	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// LootOutcome 战利品判定结果
type LootOutcome struct {
	Result     models.LootResult `json:"result"`
	Multiplier int               `json:"multiplier"`
	Message    string            `json:"message"`
	Item       *models.Item      `json:"item,omitempty"`
}

// RollLoot 完成任务时的战利品判定
// 档位阈值: >0.95 JACKPOT 5倍, >0.85 CRITICAL 2倍掉落物品, >0.6 CRITICAL 2倍, 其余 STANDARD
func (e *Engine) RollLoot() LootOutcome {
	roll := e.rng.Float64()

	switch {
	case roll > 0.95:
		pool := catalog.ItemsByRarity(models.RarityLegendary)
		outcome := LootOutcome{Result: models.LootJackpot, Multiplier: 5, Message: "LEGENDARY SUCCESS! You found a Rare Artifact."}
		if len(pool) > 0 {
			item := pool[e.rng.Intn(len(pool))]
			outcome.Item = &item
		}
		return outcome
	case roll > 0.85:
		pool := catalog.ItemsByRarity(models.RarityRare, models.RarityCommon)
		outcome := LootOutcome{Result: models.LootCritical, Multiplier: 2, Message: "CRITICAL SUCCESS! Item Found."}
		if len(pool) > 0 {
			item := pool[e.rng.Intn(len(pool))]
			outcome.Item = &item
		}
		return outcome
	case roll > 0.6:
		return LootOutcome{Result: models.LootCritical, Multiplier: 2, Message: "CRITICAL SUCCESS! Double XP gained."}
	default:
		return LootOutcome{Result: models.LootStandard, Multiplier: 1, Message: "Task Complete."}
	}
}

// OpenLootBox 开启宝箱，按宝箱稀有度决定掉落概率
// 命中的稀有度池为空时回退到普通池，普通池也为空则不掉落
func (e *Engine) OpenLootBox(box models.Item) (models.Item, bool) {
	legendary := catalog.DropPool(models.RarityLegendary)
	rare := catalog.DropPool(models.RarityRare)
	common := catalog.DropPool(models.RarityCommon)

	roll := e.rng.Float64()

	switch box.Rarity {
	case models.RarityLegendary:
		if roll > 0.2 && len(legendary) > 0 {
			return legendary[e.rng.Intn(len(legendary))], true
		}
		if len(rare) > 0 {
			return rare[e.rng.Intn(len(rare))], true
		}
	case models.RarityRare:
		if roll > 0.95 && len(legendary) > 0 {
			return legendary[e.rng.Intn(len(legendary))], true
		}
		if roll > 0.45 && len(rare) > 0 {
			return rare[e.rng.Intn(len(rare))], true
		}
	default:
		if roll > 0.99 && len(legendary) > 0 {
			return legendary[e.rng.Intn(len(legendary))], true
		}
		if roll > 0.90 && len(rare) > 0 {
			return rare[e.rng.Intn(len(rare))], true
		}
	}

	if len(common) > 0 {
		return common[e.rng.Intn(len(common))], true
	}
	return models.Item{}, false
}
