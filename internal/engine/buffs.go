package engine

import (
	"fmt"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// ActiveBuffs 过滤出尚未过期的增益
func (e *Engine) ActiveBuffs(user *models.UserStats) []models.ActiveBuff {
	now := e.now().UnixMilli()
	var active []models.ActiveBuff
	for _, b := range user.ActiveBuffs {
		if b.EndTime > now {
			active = append(active, b)
		}
	}
	return active
}

// PruneBuffs 把过期增益从存档中清掉
func (e *Engine) PruneBuffs(user *models.UserStats) {
	user.ActiveBuffs = e.ActiveBuffs(user)
	if user.ActiveBuffs == nil {
		user.ActiveBuffs = []models.ActiveBuff{}
	}
}

// findBuffOfType 在增益列表中找第一个指定类型的能力，不叠加
func findBuffOfType(buffs []models.ActiveBuff, t models.PowerType) (models.Power, bool) {
	for _, b := range buffs {
		if p, ok := catalog.PowerByID(b.PowerID); ok && p.Type == t {
			return p, true
		}
	}
	return models.Power{}, false
}

// ActivatePower 花费Credits激活一个主动能力
func (e *Engine) ActivatePower(state *models.GameState, powerID string) (models.Power, error) {
	power, ok := catalog.PowerByID(powerID)
	if !ok {
		return models.Power{}, fmt.Errorf("未知的能力: %s", powerID)
	}
	if state.User.Credits < power.Cost {
		return models.Power{}, fmt.Errorf("Credits不足，无法激活 %s", power.Name)
	}

	now := e.now().UnixMilli()
	state.User.Credits -= power.Cost
	state.User.ActiveBuffs = append(state.User.ActiveBuffs, models.ActiveBuff{
		PowerID:   power.ID,
		StartTime: now,
		EndTime:   now + int64(power.DurationMinutes)*60000,
	})
	return power, nil
}
