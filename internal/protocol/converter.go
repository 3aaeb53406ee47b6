// Package protocol 定义服务间与客户端通信的消息结构
package protocol

import (
	"fmt"

	"github.com/jacl-coder/LudusVitae-Server/internal/engine"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// Notification 推送给客户端的通知
// Category: success | level-up | death | skill-up
type Notification struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// StateSummary 存档的摘要视图，供仪表盘与网关健康页使用
type StateSummary struct {
	Name         string `json:"name"`
	Level        int    `json:"level"`
	RankTitle    string `json:"rankTitle"`
	XP           int    `json:"xp"`
	XPForNext    int    `json:"xpForNext"`
	HP           int    `json:"hp"`
	MaxHP        int    `json:"maxHp"`
	Credits      int    `json:"credits"`
	Streak       int    `json:"streak"`
	ActiveBossHP int    `json:"activeBossHp,omitempty"`
}

// OpResult 一次操作的统一返回
type OpResult struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message,omitempty"`
	Data          interface{}    `json:"data,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
}

// BuildStateSummary 从存档构建摘要视图
func BuildStateSummary(state *models.GameState) StateSummary {
	summary := StateSummary{
		Name:      state.User.Name,
		Level:     state.User.Level,
		RankTitle: engine.RankTitle(state.User.Level),
		XP:        state.User.XP,
		XPForNext: engine.XPForNextLevel(state.User.Level),
		HP:        state.User.HP,
		MaxHP:     state.User.MaxHP,
		Credits:   state.User.Credits,
		Streak:    state.User.Streak,
	}
	if state.ActiveBoss != nil && state.ActiveBoss.Active {
		summary.ActiveBossHP = state.ActiveBoss.HP
	}
	return summary
}

// CompleteNotification 把任务结算结果转换为通知
func CompleteNotification(result *engine.CompleteResult) Notification {
	return Notification{Message: result.Message, Category: result.Category}
}

// DecayNotifications 把衰减报告转换为通知列表
func DecayNotifications(report engine.DecayReport) []Notification {
	if report.DaysMissed == 0 {
		return nil
	}
	msg := fmt.Sprintf("You missed %d days. Took %d HP damage.", report.DaysMissed, report.HPLoss)
	if report.LevelLost {
		msg = fmt.Sprintf("You missed %d days. LEVEL LOST.", report.DaysMissed)
	}
	return []Notification{{Message: msg, Category: "death"}}
}

// AchievementNotification 成就解锁通知
func AchievementNotification(a models.Achievement) Notification {
	return Notification{Message: "ACHIEVEMENT UNLOCKED: " + a.Title, Category: "level-up"}
}

// StoryNotification 故事碎片解锁通知
func StoryNotification(f models.StoryFragment) Notification {
	return Notification{Message: "SYSTEM DECRYPTED: " + f.Title, Category: "success"}
}

// CreateSuccessResult 创建成功返回
func CreateSuccessResult(message string, data interface{}) *OpResult {
	return &OpResult{Success: true, Message: message, Data: data}
}

// CreateErrorResult 创建失败返回
func CreateErrorResult(message string) *OpResult {
	return &OpResult{Success: false, Message: message}
}
