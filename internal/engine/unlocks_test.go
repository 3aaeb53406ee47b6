package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

func TestCheckAchievements(t *testing.T) {
	state := newTestState()
	state.User.Streak = 7
	state.User.Credits = 1000

	unlocks := CheckAchievements(state)
	ids := make([]string, 0, len(unlocks))
	for _, a := range unlocks {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"ach_iron_will", "ach_wealth"}, ids)
}

func TestCheckAchievementsSkipsUnlocked(t *testing.T) {
	state := newTestState()
	state.User.Streak = 7
	state.User.Achievements = []string{"ach_iron_will"}

	unlocks := CheckAchievements(state)
	assert.Empty(t, unlocks)
}

func TestCheckAchievementsManualOnesIgnored(t *testing.T) {
	// 黎明协议成就没有自动条件，永远不会在批量评估中解锁
	state := newTestState()
	state.User.Level = 99
	state.User.Streak = 99
	state.User.Credits = 99999

	for _, a := range CheckAchievements(state) {
		assert.NotEqual(t, "ach_early_bird", a.ID)
	}
}

func TestCheckStoryUnlocks(t *testing.T) {
	state := newTestState()
	state.User.Level = 5

	unlocks := CheckStoryUnlocks(state)
	require.Len(t, unlocks, 2)
	assert.Equal(t, "lore_01", unlocks[0].ID)
	assert.Equal(t, "lore_02", unlocks[1].ID)
}

func TestCheckStoryUnlocksSkipsKnown(t *testing.T) {
	state := newTestState()
	state.User.Level = 5
	state.User.UnlockedFragments = []string{"lore_01"}

	unlocks := CheckStoryUnlocks(state)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "lore_02", unlocks[0].ID)
}

func TestCheckSkillNodeUnlocks(t *testing.T) {
	state := newTestState()
	state.User.Attributes[models.StatStrength] = 10

	unlocks := CheckSkillNodeUnlocks(state)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "s2", unlocks[0].ID)

	// 节点就地标记解锁，重复评估不再返回
	assert.Empty(t, CheckSkillNodeUnlocks(state))
}

func TestCheckSkillNodeUnlocksCustomAttribute(t *testing.T) {
	state := newTestState()
	state.User.CustomAttributes = []models.CustomAttribute{{ID: "attr-1", Name: "Focus", Value: 3}}
	state.Skills = append(state.Skills, models.SkillNode{
		ID: "sc", Title: "Zen", StatReq: map[models.StatType]int{models.StatType("Focus"): 3},
	})

	unlocks := CheckSkillNodeUnlocks(state)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "sc", unlocks[0].ID)
}

func TestApplyUnlocks(t *testing.T) {
	state := newTestState()
	state.User.Level = 10
	state.User.Streak = 7

	achs := CheckAchievements(state)
	frags := CheckStoryUnlocks(state)
	ApplyUnlocks(state, achs, frags)

	assert.Contains(t, state.User.Achievements, "ach_iron_will")
	assert.Contains(t, state.User.Achievements, "ach_titan")
	assert.Contains(t, state.User.UnlockedFragments, "lore_03")

	// 再次评估不应产生新解锁
	assert.Empty(t, CheckAchievements(state))
	assert.Empty(t, CheckStoryUnlocks(state))
}
