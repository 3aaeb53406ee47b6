package engine

import (
	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// CheckAchievements 批量评估尚未解锁且满足条件的成就
// 没有自动条件的成就（如黎明协议手动授予的）不会在这里解锁
func CheckAchievements(state *models.GameState) []models.Achievement {
	unlocked := make(map[string]bool, len(state.User.Achievements))
	for _, id := range state.User.Achievements {
		unlocked[id] = true
	}

	var newUnlocks []models.Achievement
	for _, ach := range catalog.Achievements {
		if unlocked[ach.ID] || ach.Condition == nil {
			continue
		}
		if ach.Condition(&state.User) {
			newUnlocks = append(newUnlocks, ach)
		}
	}
	return newUnlocks
}

// CheckStoryUnlocks 批量评估达到解锁等级且尚未解锁的故事碎片
func CheckStoryUnlocks(state *models.GameState) []models.StoryFragment {
	unlocked := make(map[string]bool, len(state.User.UnlockedFragments))
	for _, id := range state.User.UnlockedFragments {
		unlocked[id] = true
	}

	var newUnlocks []models.StoryFragment
	for _, frag := range catalog.StoryFragments {
		if !unlocked[frag.ID] && state.User.Level >= frag.UnlockLevel {
			newUnlocks = append(newUnlocks, frag)
		}
	}
	return newUnlocks
}

// CheckSkillNodeUnlocks 评估技能树节点的属性门槛，返回本次新解锁的节点
// 属性查找同时覆盖核心五维与自定义属性
func CheckSkillNodeUnlocks(state *models.GameState) []models.SkillNode {
	var newUnlocks []models.SkillNode
	for i := range state.Skills {
		node := &state.Skills[i]
		if node.Unlocked {
			continue
		}
		met := true
		for stat, req := range node.StatReq {
			if v, ok := state.User.Attribute(string(stat)); !ok || v < req {
				met = false
				break
			}
		}
		if met {
			node.Unlocked = true
			newUnlocks = append(newUnlocks, *node)
		}
	}
	return newUnlocks
}

// ApplyUnlocks 把成就与故事碎片的解锁结果合并进存档
func ApplyUnlocks(state *models.GameState, achievements []models.Achievement, fragments []models.StoryFragment) {
	for _, a := range achievements {
		state.User.Achievements = append(state.User.Achievements, a.ID)
	}
	for _, f := range fragments {
		state.User.UnlockedFragments = append(state.User.UnlockedFragments, f.ID)
	}
}
