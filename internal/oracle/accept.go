// accept.go

package oracle

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// AcceptedCall 已接受的工具调用，转换为可直接提交给游戏服务的操作
type AcceptedCall struct {
	Op      string      `json:"op"`
	Payload interface{} `json:"payload"`
}

// campaignPayload create_campaign 操作的参数结构
type campaignPayload struct {
	Boss      models.Boss    `json:"boss"`
	SubQuests []models.Quest `json:"subQuests"`
}

// AcceptToolCall 将模型产出的工具调用映射为游戏操作
func AcceptToolCall(call *genai.FunctionCall) (*AcceptedCall, error) {
	switch call.Name {
	case "suggest_quest":
		quest, err := BuildQuest(call.Args)
		if err != nil {
			return nil, err
		}
		return &AcceptedCall{Op: "add_quest", Payload: quest}, nil
	case "plan_campaign":
		boss, subQuests, err := BuildCampaign(call.Args)
		if err != nil {
			return nil, err
		}
		return &AcceptedCall{Op: "create_campaign", Payload: campaignPayload{Boss: boss, SubQuests: subQuests}}, nil
	case "suggest_virtue":
		virtue, err := BuildVirtue(call.Args)
		if err != nil {
			return nil, err
		}
		return &AcceptedCall{Op: "add_virtue", Payload: virtue}, nil
	case "suggest_hero":
		hero, err := BuildHero(call.Args)
		if err != nil {
			return nil, err
		}
		return &AcceptedCall{Op: "add_hero", Payload: hero}, nil
	default:
		return nil, fmt.Errorf("未知工具调用: %s", call.Name)
	}
}

// BuildQuest 由 suggest_quest 参数构造任务
func BuildQuest(args map[string]any) (models.Quest, error) {
	title := argString(args, "title")
	if title == "" {
		return models.Quest{}, fmt.Errorf("任务标题不能为空")
	}
	xp := argInt(args, "xpReward")
	if xp <= 0 {
		return models.Quest{}, fmt.Errorf("任务经验奖励无效")
	}

	quest := models.Quest{
		ID:           uuid.New().String(),
		Title:        title,
		Description:  argString(args, "description"),
		Type:         argString(args, "type"),
		SkillName:    argString(args, "skillName"),
		XPReward:     xp,
		CreditReward: questCredits(xp),
		Status:       models.StatusTodo,
		Repeatable:   true,
		Difficulty:   models.Difficulty(argString(args, "difficulty")),
	}
	return quest, nil
}

// BuildCampaign 由 plan_campaign 参数构造Boss与子任务
func BuildCampaign(args map[string]any) (models.Boss, []models.Quest, error) {
	name := argString(args, "bossName")
	if name == "" {
		return models.Boss{}, nil, fmt.Errorf("Boss名称不能为空")
	}
	rawSubs, _ := args["subQuests"].([]any)
	if len(rawSubs) == 0 {
		return models.Boss{}, nil, fmt.Errorf("战役缺少子任务")
	}

	hp := argInt(args, "hp")
	if hp <= 0 {
		hp = 100 * len(rawSubs)
	}

	boss := models.Boss{
		ID:          uuid.New().String(),
		Name:        name,
		Title:       argString(args, "title"),
		Description: argString(args, "description"),
		HP:          hp,
		MaxHP:       hp,
		Stages:      len(rawSubs),
		Active:      true,
	}

	subQuests := make([]models.Quest, 0, len(rawSubs))
	for _, raw := range rawSubs {
		sub, ok := raw.(map[string]any)
		if !ok {
			return models.Boss{}, nil, fmt.Errorf("子任务格式无效")
		}
		difficulty := models.Difficulty(argString(sub, "difficulty"))
		xp := 100
		if difficulty == models.DifficultyLegendary {
			xp = 200
		}
		quest := models.Quest{
			ID:           uuid.New().String(),
			Title:        argString(sub, "title"),
			Description:  argString(sub, "description"),
			Type:         argString(sub, "type"),
			LinkedBossID: boss.ID,
			XPReward:     xp,
			CreditReward: 50,
			Status:       models.StatusTodo,
			Difficulty:   difficulty,
			IsBossDamage: true,
		}
		if quest.Title == "" {
			return models.Boss{}, nil, fmt.Errorf("子任务标题不能为空")
		}
		boss.Objectives = append(boss.Objectives, quest.Title)
		subQuests = append(subQuests, quest)
	}
	return boss, subQuests, nil
}

// BuildVirtue 由 suggest_virtue 参数构造美德
func BuildVirtue(args map[string]any) (models.Virtue, error) {
	name := argString(args, "name")
	if name == "" {
		return models.Virtue{}, fmt.Errorf("美德名称不能为空")
	}
	return models.Virtue{
		ID:          uuid.New().String(),
		Name:        name,
		Description: argString(args, "description"),
		Adherence:   make([]bool, 7),
	}, nil
}

// BuildHero 由 suggest_hero 参数构造英雄档案
func BuildHero(args map[string]any) (models.Hero, error) {
	name := argString(args, "name")
	if name == "" {
		return models.Hero{}, fmt.Errorf("英雄名称不能为空")
	}

	hero := models.Hero{
		ID:          uuid.New().String(),
		Name:        name,
		Title:       argString(args, "title"),
		Description: argString(args, "description"),
		Stats:       make(map[models.StatType]int),
	}

	if rawStats, ok := args["stats"].(map[string]any); ok {
		for _, stat := range models.CoreStats() {
			hero.Stats[stat] = argInt(rawStats, string(stat))
		}
	}
	if rawSkills, ok := args["skills"].([]any); ok {
		for _, raw := range rawSkills {
			skill, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			hero.Skills = append(hero.Skills, models.HeroSkill{
				Name: argString(skill, "name"),
				Type: argString(skill, "type"),
			})
		}
	}
	if rawQuotes, ok := args["quotes"].([]any); ok {
		for _, raw := range rawQuotes {
			if quote, ok := raw.(string); ok && quote != "" {
				hero.Quotes = append(hero.Quotes, quote)
			}
		}
	}
	return hero, nil
}

// questCredits 任务金币奖励默认按经验的20%计算，保底5
func questCredits(xp int) int {
	credits := xp / 5
	if credits < 5 {
		credits = 5
	}
	return credits
}

func argString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func argInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
