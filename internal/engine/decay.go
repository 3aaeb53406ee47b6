package engine

import (
	"math"
	"time"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// DecayReport 每日衰减的结算报告
type DecayReport struct {
	DaysMissed int  `json:"daysMissed"`
	HPLoss     int  `json:"hpLoss"`
	LevelLost  bool `json:"levelLost"`
	IsNewDay   bool `json:"isNewDay"`
}

// ProcessDailyDecay 会话开始时结算离线天数带来的衰减
// 跨天时先把前一天的属性快照写入历史，缺勤超过1天按每天10点扣HP，
// HP归零时高于1级则降级重置经验，否则保留10点HP
func (e *Engine) ProcessDailyDecay(state *models.GameState) DecayReport {
	today := e.Today()
	lastActive := state.LastActiveDate

	if lastActive == today {
		return DecayReport{}
	}

	// 跨天：记录前一天的快照，历史上限365条
	stats := make(map[models.StatType]int, len(state.User.Attributes))
	for k, v := range state.User.Attributes {
		stats[k] = v
	}
	state.StatHistory = append(state.StatHistory, models.StatSnapshot{
		Date:    lastActive,
		Stats:   stats,
		TotalXP: state.User.XP,
		Credits: state.User.Credits,
	})
	if len(state.StatHistory) > 365 {
		state.StatHistory = state.StatHistory[1:]
	}

	report := DecayReport{IsNewDay: true}
	state.LastActiveDate = today

	diffDays := dateDiffDays(lastActive, today)
	if diffDays > 1 {
		report.DaysMissed = diffDays - 1
		report.HPLoss = report.DaysMissed * 10

		state.User.HP = max(0, state.User.HP-report.HPLoss)
		state.User.Streak = 0

		if state.User.HP == 0 && state.User.Level > 1 {
			state.User.Level--
			state.User.XP = 0
			state.User.HP = 50
			report.LevelLost = true
		} else if state.User.HP == 0 {
			state.User.HP = 10
		}
	}

	return report
}

// dateDiffDays 计算两个 YYYY-MM-DD 日期之间的天数差
func dateDiffDays(from, to string) int {
	a, err := time.Parse("2006-01-02", from)
	if err != nil {
		return 0
	}
	b, err := time.Parse("2006-01-02", to)
	if err != nil {
		return 0
	}
	return int(math.Round(math.Abs(b.Sub(a).Hours() / 24)))
}
