package catalog

import (
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// Achievements 全部成就定义
// ach_early_bird 没有自动条件，由黎明协议手动授予
var Achievements = []models.Achievement{
	{
		ID:          "ach_early_bird",
		Title:       "Morningstar",
		Description: "This title is earned by starting the day with intent.",
		Icon:        "Sun",
		Condition:   nil,
	},
	{
		ID:          "ach_iron_will",
		Title:       "Iron Will",
		Description: "Maintained a 7-day streak of discipline.",
		Icon:        "Shield",
		Condition:   func(u *models.UserStats) bool { return u.Streak >= 7 },
	},
	{
		ID:          "ach_titan",
		Title:       "Titan of Industry",
		Description: "Reach Level 10.",
		Icon:        "Crown",
		Condition:   func(u *models.UserStats) bool { return u.Level >= 10 },
	},
	{
		ID:          "ach_wealth",
		Title:       "Millionaire",
		Description: "Accumulate 1000 Credits.",
		Icon:        "Coins",
		Condition:   func(u *models.UserStats) bool { return u.Credits >= 1000 },
	},
	{
		ID:          "ach_polymath",
		Title:       "The Polymath",
		Description: "Unlock 5 different skills.",
		Icon:        "Brain",
		Condition:   func(u *models.UserStats) bool { return len(u.SubSkills) >= 5 },
	},
}

// AchievementByID 按ID查找成就定义
func AchievementByID(id string) (models.Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return models.Achievement{}, false
}
