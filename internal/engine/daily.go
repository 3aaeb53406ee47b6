package engine

import (
	"fmt"
	"math"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// CompleteDaybreak 黎明协议：领取每日开工奖励并创建当日首要任务
func (e *Engine) CompleteDaybreak(state *models.GameState, mainQuestTitle string) models.Quest {
	quest := models.Quest{
		ID:           fmt.Sprintf("q-daily-%d", e.now().UnixMilli()),
		Title:        fmt.Sprintf("PRIME DIRECTIVE: %s", mainQuestTitle),
		Description:  "Your one non-negotiable task for the day.",
		Type:         string(models.StatIntelligence),
		Difficulty:   models.DifficultyHard,
		XPReward:     100,
		CreditReward: 50,
		Status:       models.StatusTodo,
		Repeatable:   false,
		Tags:         []string{"daily", "priority"},
	}

	state.User.Credits += 50
	state.Quests = append([]models.Quest{quest}, state.Quests...)
	return quest
}

// LogTime 记录投入时间并按时长折算经验，不触发升级检查
func (e *Engine) LogTime(state *models.GameState, minutes int, activity string, category models.TimeLogCategory) (models.TimeLog, int) {
	entry := models.TimeLog{
		ID:              fmt.Sprintf("log-%d", e.now().UnixMilli()),
		Timestamp:       e.now().UnixMilli(),
		DurationMinutes: minutes,
		Activity:        activity,
		Category:        category,
	}

	xpAward := int(math.Ceil(float64(minutes) * 0.8))
	state.TimeLogs = append(state.TimeLogs, entry)
	state.User.XP += xpAward
	return entry, xpAward
}
