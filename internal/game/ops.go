// ops.go

package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/engine"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
	"github.com/jacl-coder/LudusVitae-Server/internal/protocol"
)

// Dispatch 统一的操作分发入口，WebSocket与HTTP共用
func Dispatch(sess *Session, op string, payload json.RawMessage) (*protocol.OpResult, error) {
	switch op {
	case "complete_quest":
		return opCompleteQuest(sess, payload)
	case "add_quest":
		return opAddQuest(sess, payload)
	case "update_quest_status":
		return opUpdateQuestStatus(sess, payload)
	case "buy_item":
		return opBuyItem(sess, payload)
	case "use_item":
		return opUseItem(sess, payload)
	case "activate_power":
		return opActivatePower(sess, payload)
	case "daybreak_complete":
		return opDaybreakComplete(sess, payload)
	case "log_time":
		return opLogTime(sess, payload)
	case "create_campaign":
		return opCreateCampaign(sess, payload)
	case "add_virtue":
		return opAddVirtue(sess, payload)
	case "update_virtue":
		return opUpdateVirtue(sess, payload)
	case "delete_virtue":
		return opDeleteVirtue(sess, payload)
	case "toggle_virtue":
		return opToggleVirtue(sess, payload)
	case "save_bible":
		return opSaveBible(sess, payload)
	case "add_skill":
		return opAddSkill(sess, payload)
	case "delete_skill":
		return opDeleteSkill(sess, payload)
	case "adopt_skill":
		return opAdoptSkill(sess, payload)
	case "add_hero":
		return opAddHero(sess, payload)
	case "add_goal":
		return opAddGoal(sess, payload)
	case "add_custom_attribute":
		return opAddCustomAttribute(sess, payload)
	case "add_journal":
		return opAddJournal(sess, payload)
	case "update_biometrics":
		return opUpdateBiometrics(sess, payload)
	case "update_name":
		return opUpdateName(sess, payload)
	case "update_avatar":
		return opUpdateAvatar(sess, payload)
	case "update_birth_date":
		return opUpdateBirthDate(sess, payload)
	case "grant_achievement":
		return opGrantAchievement(sess, payload)
	case "force_save":
		return opForceSave(sess)
	default:
		return nil, fmt.Errorf("未知操作: %s", op)
	}
}

func opCompleteQuest(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		QuestID string `json:"questId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		quest := state.FindQuest(req.QuestID)
		wasCompleted := quest != nil && (quest.Completed || quest.Status == models.StatusDone)

		result, err := e.CompleteQuest(state, req.QuestID)
		if err != nil {
			return nil, err
		}

		// 可重复任务在完成后追加全新实例，原实例保持已完成
		if quest != nil && quest.Repeatable && !wasCompleted {
			fresh := *quest
			fresh.ID = uuid.New().String()
			fresh.Completed = false
			fresh.Status = models.StatusTodo
			state.Quests = append([]models.Quest{fresh}, state.Quests...)
		}

		out := protocol.CreateSuccessResult(result.Message, result)
		out.Notifications = []protocol.Notification{protocol.CompleteNotification(result)}
		return out, nil
	})
}

func opAddQuest(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var quest models.Quest
	if err := json.Unmarshal(payload, &quest); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if quest.Title == "" {
		return nil, fmt.Errorf("任务标题不能为空")
	}
	if quest.ID == "" {
		quest.ID = uuid.New().String()
	}
	if quest.Status == "" {
		quest.Status = models.StatusTodo
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		state.Quests = append([]models.Quest{quest}, state.Quests...)
		out := protocol.CreateSuccessResult("New Quest Accepted", quest)
		out.Notifications = []protocol.Notification{{Message: "New Quest Accepted", Category: "success"}}
		return out, nil
	})
}

func opUpdateQuestStatus(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		QuestID string             `json:"questId"`
		Status  models.QuestStatus `json:"status"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	switch req.Status {
	case models.StatusTodo, models.StatusInProgress, models.StatusDone:
	default:
		return nil, fmt.Errorf("非法的任务状态: %s", req.Status)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		quest := state.FindQuest(req.QuestID)
		if quest == nil {
			return nil, fmt.Errorf("任务不存在: %s", req.QuestID)
		}
		quest.Status = req.Status
		return protocol.CreateSuccessResult("", quest), nil
	})
}

func opBuyItem(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	item, ok := catalog.ItemByID(req.ItemID)
	if !ok {
		return nil, fmt.Errorf("商品不存在: %s", req.ItemID)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		if !e.BuyItem(state, item) {
			// Credits不足时静默不生效
			return protocol.CreateErrorResult("Insufficient Credits"), nil
		}
		return protocol.CreateSuccessResult(fmt.Sprintf("Purchased %s", item.Name), item), nil
	})
}

func opUseItem(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		msg, err := e.UseItem(state, req.ItemID)
		if err != nil {
			return nil, err
		}
		out := protocol.CreateSuccessResult(msg, nil)
		out.Notifications = []protocol.Notification{{Message: msg, Category: "success"}}
		return out, nil
	})
}

func opActivatePower(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		PowerID string `json:"powerId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		power, err := e.ActivatePower(state, req.PowerID)
		if err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("%s ACTIVATED!", power.Name)
		out := protocol.CreateSuccessResult(msg, power)
		out.Notifications = []protocol.Notification{{Message: msg, Category: "success"}}
		return out, nil
	})
}

func opDaybreakComplete(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		MainQuestTitle string `json:"mainQuestTitle"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if req.MainQuestTitle == "" {
		return nil, fmt.Errorf("每日首要任务标题不能为空")
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		quest := e.CompleteDaybreak(state, req.MainQuestTitle)
		out := protocol.CreateSuccessResult("Protocol Complete. +50 Credits.", quest)
		out.Notifications = []protocol.Notification{{Message: "Protocol Complete. +50 Credits.", Category: "success"}}
		return out, nil
	})
}

func opLogTime(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		Minutes  int                    `json:"minutes"`
		Activity string                 `json:"activity"`
		Category models.TimeLogCategory `json:"category"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if req.Minutes <= 0 {
		return nil, fmt.Errorf("时长必须为正数")
	}
	if req.Category == "" {
		req.Category = models.TimeLogOther
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		entry, xp := e.LogTime(state, req.Minutes, req.Activity, req.Category)
		msg := fmt.Sprintf("Logged: +%d XP", xp)
		out := protocol.CreateSuccessResult(msg, entry)
		out.Notifications = []protocol.Notification{{Message: msg, Category: "success"}}
		return out, nil
	})
}

func opCreateCampaign(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		Boss      models.Boss    `json:"boss"`
		SubQuests []models.Quest `json:"subQuests"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if req.Boss.ID == "" || req.Boss.Name == "" {
		return nil, fmt.Errorf("Boss信息不完整")
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		boss := req.Boss
		state.ActiveBoss = &boss
		state.Quests = append(append([]models.Quest{}, req.SubQuests...), state.Quests...)
		out := protocol.CreateSuccessResult("CAMPAIGN INITIALIZED", boss)
		out.Notifications = []protocol.Notification{{Message: "CAMPAIGN INITIALIZED", Category: "level-up"}}
		return out, nil
	})
}

func opAddVirtue(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var virtue models.Virtue
	if err := json.Unmarshal(payload, &virtue); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if virtue.ID == "" {
		virtue.ID = uuid.New().String()
	}
	if virtue.Adherence == nil {
		virtue.Adherence = make([]bool, 7)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		state.Virtues = append(state.Virtues, virtue)
		return protocol.CreateSuccessResult("", virtue), nil
	})
}

func opUpdateVirtue(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var virtue models.Virtue
	if err := json.Unmarshal(payload, &virtue); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		for i := range state.Virtues {
			if state.Virtues[i].ID == virtue.ID {
				state.Virtues[i] = virtue
				return protocol.CreateSuccessResult("", virtue), nil
			}
		}
		return nil, fmt.Errorf("美德不存在: %s", virtue.ID)
	})
}

func opDeleteVirtue(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		for i := range state.Virtues {
			if state.Virtues[i].ID == req.ID {
				state.Virtues = append(state.Virtues[:i], state.Virtues[i+1:]...)
				return protocol.CreateSuccessResult("", nil), nil
			}
		}
		return nil, fmt.Errorf("美德不存在: %s", req.ID)
	})
}

func opToggleVirtue(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		ID    string `json:"id"`
		Index int    `json:"index"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		for i := range state.Virtues {
			if state.Virtues[i].ID != req.ID {
				continue
			}
			if req.Index < 0 || req.Index >= len(state.Virtues[i].Adherence) {
				return nil, fmt.Errorf("打卡下标越界: %d", req.Index)
			}
			state.Virtues[i].Adherence[req.Index] = !state.Virtues[i].Adherence[req.Index]
			return protocol.CreateSuccessResult("", state.Virtues[i]), nil
		}
		return nil, fmt.Errorf("美德不存在: %s", req.ID)
	})
}

func opSaveBible(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		state.Bible = req.Content
		out := protocol.CreateSuccessResult("Bible Saved", nil)
		out.Notifications = []protocol.Notification{{Message: "Bible Saved", Category: "success"}}
		return out, nil
	})
}

func opAddSkill(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		ParentStat string `json:"parentStat"`
		Name       string `json:"name"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("技能名称不能为空")
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		skill := models.SubSkill{
			ID:         uuid.New().String(),
			Name:       req.Name,
			ParentStat: req.ParentStat,
			Level:      1,
			XP:         0,
		}
		state.User.SubSkills = append(state.User.SubSkills, skill)
		return protocol.CreateSuccessResult("", skill), nil
	})
}

func opDeleteSkill(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		for i := range state.User.SubSkills {
			if state.User.SubSkills[i].ID == req.ID {
				state.User.SubSkills = append(state.User.SubSkills[:i], state.User.SubSkills[i+1:]...)
				return protocol.CreateSuccessResult("", nil), nil
			}
		}
		return nil, fmt.Errorf("技能不存在: %s", req.ID)
	})
}

func opAdoptSkill(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		Name       string `json:"name"`
		ParentStat string `json:"parentStat"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("技能名称不能为空")
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		// 同名技能不重复习得，忽略大小写
		for _, s := range state.User.SubSkills {
			if strings.EqualFold(s.Name, req.Name) {
				return protocol.CreateSuccessResult("", s), nil
			}
		}
		skill := models.SubSkill{
			ID:         uuid.New().String(),
			Name:       req.Name,
			ParentStat: req.ParentStat,
			Level:      1,
			XP:         0,
		}
		state.User.SubSkills = append(state.User.SubSkills, skill)
		return protocol.CreateSuccessResult("", skill), nil
	})
}

func opAddHero(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var hero models.Hero
	if err := json.Unmarshal(payload, &hero); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if hero.ID == "" {
		hero.ID = uuid.New().String()
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		state.Heroes = append(state.Heroes, hero)
		return protocol.CreateSuccessResult("", hero), nil
	})
}

func opAddGoal(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var goal models.Goal
	if err := json.Unmarshal(payload, &goal); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		state.Goals = append(state.Goals, goal)
		return protocol.CreateSuccessResult("", goal), nil
	})
}

func opAddCustomAttribute(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		Name    string `json:"name"`
		Color   string `json:"color"`
		BgColor string `json:"bgColor"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("属性名称不能为空")
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		attr := models.CustomAttribute{
			ID:      uuid.New().String(),
			Name:    req.Name,
			Value:   1,
			Color:   req.Color,
			BgColor: req.BgColor,
		}
		state.User.CustomAttributes = append(state.User.CustomAttributes, attr)
		return protocol.CreateSuccessResult("", attr), nil
	})
}

func opAddJournal(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var entry models.JournalEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		if entry.Date == "" {
			entry.Date = e.Today()
		}
		state.Journal = append(state.Journal, entry)
		return protocol.CreateSuccessResult("", entry), nil
	})
}

func opUpdateBiometrics(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		Height int `json:"height"`
		Weight int `json:"weight"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		state.User.Height = req.Height
		state.User.Weight = req.Weight
		return protocol.CreateSuccessResult("", nil), nil
	})
}

func opUpdateName(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("名字不能为空")
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		state.User.Name = req.Name
		return protocol.CreateSuccessResult("", nil), nil
	})
}

func opUpdateAvatar(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		state.User.AvatarURL = req.URL
		return protocol.CreateSuccessResult("", nil), nil
	})
}

func opUpdateBirthDate(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		state.User.BirthDate = req.Date
		return protocol.CreateSuccessResult("", nil), nil
	})
}

func opGrantAchievement(sess *Session, payload json.RawMessage) (*protocol.OpResult, error) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("解析参数失败: %w", err)
	}

	ach, ok := catalog.AchievementByID(req.ID)
	if !ok {
		return nil, fmt.Errorf("成就不存在: %s", req.ID)
	}
	// 只有无自动条件的成就允许手动授予
	if ach.Condition != nil {
		return nil, fmt.Errorf("该成就由系统自动判定: %s", req.ID)
	}

	return sess.Do(func(e *engine.Engine, state *models.GameState) (*protocol.OpResult, error) {
		for _, id := range state.User.Achievements {
			if id == ach.ID {
				return protocol.CreateSuccessResult("", nil), nil
			}
		}
		state.User.Achievements = append(state.User.Achievements, ach.ID)
		out := protocol.CreateSuccessResult("", ach)
		out.Notifications = []protocol.Notification{protocol.AchievementNotification(ach)}
		return out, nil
	})
}

func opForceSave(sess *Session) (*protocol.OpResult, error) {
	if err := sess.Flush(); err != nil {
		return nil, err
	}
	out := protocol.CreateSuccessResult("Database Synced", nil)
	out.Notifications = []protocol.Notification{{Message: "Database Synced", Category: "success"}}
	return out, nil
}
