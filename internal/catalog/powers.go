package catalog

import (
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// Powers 全部主动能力定义
var Powers = []models.Power{
	{
		ID:              "pwr_hyperfocus",
		Name:            "Hyperfocus",
		Description:     "2x XP for all INT quests for 60 minutes.",
		Cost:            50,
		DurationMinutes: 60,
		Type:            models.PowerXPBoost,
		Multiplier:      2,
		Icon:            "Zap",
		Color:           "text-blue-400 border-blue-500",
	},
	{
		ID:              "pwr_berserker",
		Name:            "Berserker Rage",
		Description:     "2x Damage to Bosses for 30 minutes.",
		Cost:            75,
		DurationMinutes: 30,
		Type:            models.PowerDamageBoost,
		Multiplier:      2,
		Icon:            "Flame",
		Color:           "text-red-400 border-red-500",
	},
	{
		ID:              "pwr_time_dilation",
		Name:            "Time Dilation",
		Description:     "Extends current focus sessions (Visual effect).",
		Cost:            100,
		DurationMinutes: 120,
		Type:            models.PowerTimeWarp,
		Icon:            "Clock",
		Color:           "text-purple-400 border-purple-500",
	},
}

// PowerByID 按ID查找主动能力
func PowerByID(id string) (models.Power, bool) {
	for _, p := range Powers {
		if p.ID == id {
			return p, true
		}
	}
	return models.Power{}, false
}
