package engine

import (
	"fmt"
	"math"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// CompleteResult 任务完成结算的完整结果
type CompleteResult struct {
	Loot           LootOutcome `json:"loot"`
	XPGained       int         `json:"xpGained"`
	LeveledUp      bool        `json:"leveledUp"`
	NewLevel       int         `json:"newLevel"`
	SkillLeveledUp bool        `json:"skillLeveledUp"`
	SkillName      string      `json:"skillName,omitempty"`
	SkillLevel     int         `json:"skillLevel,omitempty"`
	BossDamage     int         `json:"bossDamage,omitempty"`
	BossDefeated   bool        `json:"bossDefeated"`
	Message        string      `json:"message"`
	Category       string      `json:"category"`
}

// CompleteQuest 任务完成的结算事务，按固定顺序推进：
// 战利品判定 -> 经验增益 -> Credits -> 掉落入包 -> Boss伤害 -> 子技能经验 -> 角色升级 -> 连击与HP
func (e *Engine) CompleteQuest(state *models.GameState, questID string) (*CompleteResult, error) {
	quest := state.FindQuest(questID)
	if quest == nil {
		return nil, fmt.Errorf("任务不存在: %s", questID)
	}

	// 完成是单向的：已完成的任务再次提交不发任何奖励
	// 可重复任务由调用方追加新实例，不在原实例上重新结算
	if quest.Completed || quest.Status == models.StatusDone {
		return &CompleteResult{
			NewLevel: state.User.Level,
			Message:  "Already Complete.",
			Category: "success",
		}, nil
	}

	loot := e.RollLoot()
	xpBase := float64(quest.XPReward * loot.Multiplier)

	// 经验增益只取第一个生效的XP_BOOST，不叠加
	activeBuffs := e.ActiveBuffs(&state.User)
	xpBoost, hasBoost := findBuffOfType(activeBuffs, models.PowerXPBoost)
	if hasBoost && xpBoost.Multiplier > 0 {
		xpBase *= xpBoost.Multiplier
	}

	xpGain := int(math.Floor(xpBase))
	message := loot.Message
	if hasBoost {
		message += " (Boosted!)"
	}

	creditGain := quest.CreditReward
	if creditGain == 0 {
		creditGain = 10
	}
	newCredits := state.User.Credits + creditGain

	if loot.Item != nil {
		state.User.Inventory = append(state.User.Inventory, *loot.Item)
		message = fmt.Sprintf("Acquired: %s", loot.Item.Name)
	}

	// Boss结算
	result := &CompleteResult{Loot: loot}
	boss := state.ActiveBoss
	if boss != nil && boss.Active && (quest.LinkedBossID == boss.ID || quest.IsBossDamage) {
		damage := 50
		if quest.Difficulty == models.DifficultyLegendary {
			damage = 100
		}
		if _, boosted := findBuffOfType(activeBuffs, models.PowerDamageBoost); boosted {
			damage *= 2
		}

		boss.HP = max(0, boss.HP-damage)
		result.BossDamage = damage
		if boss.HP == 0 {
			boss.Defeated = true
			boss.Active = false
			result.BossDefeated = true
			message = fmt.Sprintf("CAMPAIGN COMPLETE! %s Defeated!", boss.Name)
			xpGain += 1000
			newCredits += 500
		} else {
			message = fmt.Sprintf("Progress Made: %s (-%d HP)", boss.Name, damage)
		}
	}

	// 子技能结算：优先按skillId匹配，再按skillName
	skillIndex := -1
	if quest.SkillID != "" {
		for i := range state.User.SubSkills {
			if state.User.SubSkills[i].ID == quest.SkillID {
				skillIndex = i
				break
			}
		}
	}
	if skillIndex == -1 && quest.SkillName != "" {
		for i := range state.User.SubSkills {
			if state.User.SubSkills[i].Name == quest.SkillName {
				skillIndex = i
				break
			}
		}
	}
	if skillIndex != -1 {
		skill := &state.User.SubSkills[skillIndex]
		skill.XP += quest.XPReward
		skillLevelUps := 0
		for CheckSkillLevelUp(skill.XP, skill.Level) {
			skill.XP -= SkillXPForNextLevel(skill.Level)
			skill.Level++
			skillLevelUps++
		}
		if skillLevelUps > 0 {
			result.SkillLeveledUp = true
			result.SkillName = skill.Name
			result.SkillLevel = skill.Level
			totalBonus := catalog.SkillLevelUpBonusXP * skillLevelUps
			xpGain += totalBonus
			if !result.BossDefeated {
				message = fmt.Sprintf("Skill Rank Up! +%d XP Bonus!", totalBonus)
			}
		}
	}

	// 角色升级，可一次跨多级
	newXP := state.User.XP + xpGain
	newLevel := state.User.Level
	for CheckLevelUp(newXP, newLevel) {
		newXP -= XPForNextLevel(newLevel)
		newLevel++
		result.LeveledUp = true
	}

	state.User.XP = newXP
	state.User.Level = newLevel
	state.User.Credits = newCredits
	state.User.Streak++
	state.User.HP = min(state.User.MaxHP, state.User.HP+5)
	quest.Completed = true
	quest.Status = models.StatusDone

	result.XPGained = xpGain
	result.NewLevel = newLevel

	// 通知优先级：升级 > Boss击败 > 技能升阶 > 战利品
	switch {
	case result.LeveledUp:
		result.Message = fmt.Sprintf("ASCENSION! Welcome to Level %d", newLevel)
		result.Category = "level-up"
	case result.BossDefeated:
		result.Message = fmt.Sprintf("VICTORY! %s has fallen!", state.ActiveBoss.Name)
		result.Category = "level-up"
	case result.SkillLeveledUp:
		result.Message = fmt.Sprintf("%s reached Rank %d!", result.SkillName, result.SkillLevel)
		result.Category = "skill-up"
	default:
		result.Message = message
		if loot.Result == models.LootJackpot {
			result.Category = "level-up"
		} else {
			result.Category = "success"
		}
	}

	return result, nil
}
