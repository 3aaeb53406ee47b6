package storage

import (
	"encoding/json"
	"fmt"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// MergeWithDefaults 把存档原文合并到初始存档之上
// 缺失的字段保持初始值，再对旧版本存档做一轮字段修补
func MergeWithDefaults(raw []byte, today string, nowMillis int64) (*models.GameState, error) {
	state := catalog.InitialState(today)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, state); err != nil {
			return nil, fmt.Errorf("解析存档失败: %w", err)
		}
	}
	ApplyMigrations(state, today, nowMillis)
	return state, nil
}

// ApplyMigrations 修补旧版本存档缺失的字段
func ApplyMigrations(state *models.GameState, today string, nowMillis int64) {
	u := &state.User

	if u.Attributes == nil {
		u.Attributes = map[models.StatType]int{}
	}
	for _, stat := range models.CoreStats() {
		if _, ok := u.Attributes[stat]; !ok {
			u.Attributes[stat] = 5
		}
	}

	if u.Achievements == nil {
		u.Achievements = []string{}
	}
	if u.ActiveBuffs == nil {
		u.ActiveBuffs = []models.ActiveBuff{}
	}
	if u.UnlockedFragments == nil {
		u.UnlockedFragments = []string{}
	}
	if u.Inventory == nil {
		u.Inventory = []models.Item{}
	}
	if u.CustomAttributes == nil {
		u.CustomAttributes = []models.CustomAttribute{}
	}
	if u.SubSkills == nil {
		u.SubSkills = []models.SubSkill{}
	}
	if u.Name == "" {
		u.Name = "Player"
	}

	if state.ActiveBoss == nil {
		state.ActiveBoss = catalog.InitialBoss()
	}
	if state.StatHistory == nil {
		state.StatHistory = []models.StatSnapshot{}
	}
	if state.Quests == nil {
		state.Quests = []models.Quest{}
	}
	if state.Skills == nil {
		state.Skills = []models.SkillNode{}
	}
	if state.Virtues == nil {
		state.Virtues = []models.Virtue{}
	}
	if state.Heroes == nil {
		state.Heroes = []models.Hero{}
	}
	if state.Goals == nil {
		state.Goals = []models.Goal{}
	}
	if state.Journal == nil {
		state.Journal = []models.JournalEntry{}
	}
	if state.TimeLogs == nil {
		state.TimeLogs = []models.TimeLog{}
	}
	if state.LastActiveDate == "" {
		state.LastActiveDate = today
	}

	// 旧存档的任务没有看板状态，从completed回填
	for i := range state.Quests {
		if state.Quests[i].Status == "" {
			if state.Quests[i].Completed {
				state.Quests[i].Status = models.StatusDone
			} else {
				state.Quests[i].Status = models.StatusTodo
			}
		}
	}

	// 旧存档的美德可能没有ID
	for i := range state.Virtues {
		if state.Virtues[i].ID == "" {
			state.Virtues[i].ID = fmt.Sprintf("virtue-migrated-%d-%d", nowMillis, i)
		}
		if state.Virtues[i].Adherence == nil {
			state.Virtues[i].Adherence = make([]bool, 7)
		}
	}
}
