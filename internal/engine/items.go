package engine

import (
	"fmt"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// applyItemEffect 结算消耗品效果并把物品从背包移除
// XP_BOOST 只加经验不触发升级检查，FREEZE_STREAK 由衰减结算读取，这里不做事
func applyItemEffect(state *models.GameState, item models.Item) {
	if item.Effect != nil {
		switch item.Effect.Type {
		case models.EffectHeal:
			state.User.HP = min(state.User.MaxHP, state.User.HP+item.Effect.Value)
		case models.EffectXPBoost:
			state.User.XP += item.Effect.Value
		case models.EffectFreezeStreak:
		}
	}
	state.User.RemoveItem(item.ID)
}

// BuyItem 购买物品，Credits不足时静默不生效
func (e *Engine) BuyItem(state *models.GameState, item models.Item) bool {
	if state.User.Credits < item.Price {
		return false
	}
	state.User.Credits -= item.Price
	state.User.Inventory = append(state.User.Inventory, item)
	return true
}

// UseItem 使用背包中的物品
// 宝箱开出新物品替换自身，消耗品结算效果，其他类型不可使用
func (e *Engine) UseItem(state *models.GameState, itemID string) (string, error) {
	item := state.User.FindItem(itemID)
	if item == nil {
		return "", fmt.Errorf("背包中没有该物品: %s", itemID)
	}

	switch item.Type {
	case models.ItemLootbox:
		drop, ok := e.OpenLootBox(*item)
		if !ok {
			// 没有可掉落的物品，宝箱不消耗
			return fmt.Sprintf("%s stays shut.", item.Name), nil
		}
		name := item.Name
		state.User.RemoveItem(itemID)
		state.User.Inventory = append(state.User.Inventory, drop)
		return fmt.Sprintf("Opened %s", name), nil
	case models.ItemConsumable:
		applyItemEffect(state, *item)
		return fmt.Sprintf("Used %s", item.Name), nil
	default:
		return "", fmt.Errorf("该物品无法使用: %s", item.Name)
	}
}
