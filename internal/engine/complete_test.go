package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// standardEngine 掷骰固定落在普通档，结算完全确定
func standardEngine() *Engine {
	return newTestEngine(testNow, rollVal(0.3))
}

func TestCompleteQuestNotFound(t *testing.T) {
	e := standardEngine()
	state := newTestState()

	_, err := e.CompleteQuest(state, "no-such-quest")
	assert.Error(t, err)
}

func TestCompleteQuestStandardRewards(t *testing.T) {
	e := standardEngine()
	state := newTestState()

	// q5: 20经验 5Credits，不关联Boss
	result, err := e.CompleteQuest(state, "q5")
	require.NoError(t, err)

	assert.Equal(t, models.LootStandard, result.Loot.Result)
	assert.Equal(t, 20, result.XPGained)
	assert.False(t, result.LeveledUp)
	assert.Equal(t, 20, state.User.XP)
	assert.Equal(t, 105, state.User.Credits)
	assert.Equal(t, 1, state.User.Streak)
	assert.Equal(t, 100, state.User.HP) // 已满血，+5被截断

	quest := state.FindQuest("q5")
	assert.True(t, quest.Completed)
	assert.Equal(t, models.StatusDone, quest.Status)
	assert.Equal(t, "Task Complete.", result.Message)
	assert.Equal(t, "success", result.Category)
}

func TestCompleteQuestCreditDefault(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.Quests = append(state.Quests, models.Quest{ID: "qx", Title: "X", XPReward: 10, Status: models.StatusTodo})

	_, err := e.CompleteQuest(state, "qx")
	require.NoError(t, err)
	// 未设置Credits奖励时默认10
	assert.Equal(t, 110, state.User.Credits)
}

func TestCompleteQuestCrossesLevelBoundary(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.User.XP = 90
	state.Quests = append(state.Quests, models.Quest{
		ID: "qx", Title: "X", XPReward: 50, CreditReward: 10,
		Difficulty: models.DifficultyEasy, Status: models.StatusTodo,
	})

	// 1级90经验 +50 跨过100门槛，升到2级剩40
	result, err := e.CompleteQuest(state, "qx")
	require.NoError(t, err)
	assert.Equal(t, 50, result.XPGained)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, 2, state.User.Level)
	assert.Equal(t, 40, state.User.XP)
}

func TestCompleteQuestHPRegen(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.User.HP = 40

	_, err := e.CompleteQuest(state, "q5")
	require.NoError(t, err)
	assert.Equal(t, 45, state.User.HP)
}

func TestCompleteQuestCriticalDoublesXP(t *testing.T) {
	e := newTestEngine(testNow, rollVal(0.7))
	state := newTestState()

	result, err := e.CompleteQuest(state, "q5")
	require.NoError(t, err)
	assert.Equal(t, 40, result.XPGained)
	assert.Equal(t, 40, state.User.XP)
}

func TestCompleteQuestLootItemJoinsInventory(t *testing.T) {
	e := newTestEngine(testNow, rollVal(0.96))
	state := newTestState()

	result, err := e.CompleteQuest(state, "q5")
	require.NoError(t, err)
	require.NotNil(t, result.Loot.Item)
	require.Len(t, state.User.Inventory, 1)
	assert.Equal(t, result.Loot.Item.ID, state.User.Inventory[0].ID)
	assert.Equal(t, "level-up", result.Category) // JACKPOT提升通知级别
}

func TestCompleteQuestXPBoostBuff(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	now := testNow.UnixMilli()
	state.User.ActiveBuffs = []models.ActiveBuff{
		{PowerID: "pwr_hyperfocus", StartTime: now - 1000, EndTime: now + 60000},
	}

	result, err := e.CompleteQuest(state, "q5")
	require.NoError(t, err)
	assert.Equal(t, 40, result.XPGained) // 20 * 2
}

func TestCompleteQuestExpiredBuffIgnored(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	now := testNow.UnixMilli()
	state.User.ActiveBuffs = []models.ActiveBuff{
		{PowerID: "pwr_hyperfocus", StartTime: now - 7200000, EndTime: now - 3600000},
	}

	result, err := e.CompleteQuest(state, "q5")
	require.NoError(t, err)
	assert.Equal(t, 20, result.XPGained)
}

func TestCompleteQuestBossDamage(t *testing.T) {
	e := standardEngine()
	state := newTestState()

	// q2 关联 boss_entropy，非传说难度扣50
	result, err := e.CompleteQuest(state, "q2")
	require.NoError(t, err)
	assert.Equal(t, 50, result.BossDamage)
	assert.False(t, result.BossDefeated)
	assert.Equal(t, 450, state.ActiveBoss.HP)
	assert.Contains(t, result.Message, "Progress Made")
}

func TestCompleteQuestLegendaryBossDamage(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.Quests = append(state.Quests, models.Quest{
		ID: "qb", Title: "Raid", XPReward: 10, CreditReward: 5,
		Difficulty: models.DifficultyLegendary, IsBossDamage: true, Status: models.StatusTodo,
	})

	result, err := e.CompleteQuest(state, "qb")
	require.NoError(t, err)
	assert.Equal(t, 100, result.BossDamage)
}

func TestCompleteQuestDamageBoostBuff(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	now := testNow.UnixMilli()
	state.User.ActiveBuffs = []models.ActiveBuff{
		{PowerID: "pwr_berserker", StartTime: now, EndTime: now + 60000},
	}

	result, err := e.CompleteQuest(state, "q2")
	require.NoError(t, err)
	assert.Equal(t, 100, result.BossDamage)
}

func TestCompleteQuestBossDefeat(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.ActiveBoss.HP = 50
	state.User.Level = 30 // 高等级避免击败奖励直接触发升级

	result, err := e.CompleteQuest(state, "q2")
	require.NoError(t, err)
	assert.True(t, result.BossDefeated)
	assert.True(t, state.ActiveBoss.Defeated)
	assert.False(t, state.ActiveBoss.Active)
	// 击败奖励: 任务80 + 1000经验, 任务20 + 500Credits
	assert.Equal(t, 1080, result.XPGained)
	assert.Equal(t, 100+20+500, state.User.Credits)
	assert.Contains(t, result.Message, "VICTORY")
	assert.Equal(t, "level-up", result.Category)
}

func TestCompleteQuestInactiveBossUntouched(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.ActiveBoss.Active = false

	result, err := e.CompleteQuest(state, "q2")
	require.NoError(t, err)
	assert.Equal(t, 0, result.BossDamage)
	assert.Equal(t, 500, state.ActiveBoss.HP)
}

func TestCompleteQuestSkillProgress(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.User.SubSkills = []models.SubSkill{{ID: "sk1", Name: "Guitar", ParentStat: "Dexterity", Level: 1, XP: 0}}
	state.Quests = append(state.Quests, models.Quest{
		ID: "qs", Title: "Practice", XPReward: 40, CreditReward: 5, SkillID: "sk1", Status: models.StatusTodo,
	})

	result, err := e.CompleteQuest(state, "qs")
	require.NoError(t, err)
	assert.False(t, result.SkillLeveledUp)
	assert.Equal(t, 40, state.User.SubSkills[0].XP)
	assert.Equal(t, 1, state.User.SubSkills[0].Level)
	assert.Equal(t, 40, result.XPGained)
}

func TestCompleteQuestSkillRankUp(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.User.SubSkills = []models.SubSkill{{ID: "sk1", Name: "Guitar", ParentStat: "Dexterity", Level: 1, XP: 90}}
	state.Quests = append(state.Quests, models.Quest{
		ID: "qs", Title: "Practice", XPReward: 30, CreditReward: 5, SkillID: "sk1", Status: models.StatusTodo,
	})

	result, err := e.CompleteQuest(state, "qs")
	require.NoError(t, err)
	assert.True(t, result.SkillLeveledUp)
	assert.Equal(t, 2, state.User.SubSkills[0].Level)
	assert.Equal(t, 20, state.User.SubSkills[0].XP)
	// 技能升级附带200全局经验
	assert.Equal(t, 230, result.XPGained)
	assert.Equal(t, "skill-up", result.Category)
	assert.Contains(t, result.Message, "Guitar reached Rank 2")
}

func TestCompleteQuestSkillMatchByName(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.User.SubSkills = []models.SubSkill{{ID: "sk1", Name: "Guitar", ParentStat: "Dexterity", Level: 1, XP: 0}}
	state.Quests = append(state.Quests, models.Quest{
		ID: "qs", Title: "Practice", XPReward: 10, CreditReward: 5, SkillName: "Guitar", Status: models.StatusTodo,
	})

	_, err := e.CompleteQuest(state, "qs")
	require.NoError(t, err)
	assert.Equal(t, 10, state.User.SubSkills[0].XP)
}

func TestCompleteQuestMultiLevelUp(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.Quests = append(state.Quests, models.Quest{
		ID: "qx", Title: "Epic", XPReward: 520, CreditReward: 5, Status: models.StatusTodo,
	})

	result, err := e.CompleteQuest(state, "qx")
	require.NoError(t, err)
	assert.True(t, result.LeveledUp)
	// 520经验: 1级需100 -> 2级需400 -> 剩20到3级
	assert.Equal(t, 3, state.User.Level)
	assert.Equal(t, 20, state.User.XP)
	assert.Equal(t, 3, result.NewLevel)
	assert.Equal(t, "level-up", result.Category)
	assert.Contains(t, result.Message, "ASCENSION")
}

func TestCompleteQuestLevelUpOverridesMessages(t *testing.T) {
	// 升级通知优先于Boss击败
	e := standardEngine()
	state := newTestState()
	state.ActiveBoss.HP = 50

	result, err := e.CompleteQuest(state, "q2")
	require.NoError(t, err)
	require.True(t, result.BossDefeated)
	require.True(t, result.LeveledUp)
	assert.Contains(t, result.Message, "ASCENSION")
}

func TestCompleteQuestSecondCompletionNoOp(t *testing.T) {
	e := newTestEngine(testNow, rollVal(0.3), rollVal(0.3))
	state := newTestState()

	_, err := e.CompleteQuest(state, "q5")
	require.NoError(t, err)

	// 同一实例重复提交不发任何奖励
	result, err := e.CompleteQuest(state, "q5")
	require.NoError(t, err)
	assert.Equal(t, "Already Complete.", result.Message)
	assert.Zero(t, result.XPGained)
	assert.Equal(t, 1, state.User.Streak)
	assert.Equal(t, 20, state.User.XP)
	assert.Equal(t, 105, state.User.Credits)
	assert.Equal(t, 100, state.User.HP)
}

func TestCompleteQuestNoDoubleBossDamage(t *testing.T) {
	e := newTestEngine(testNow, rollVal(0.3), rollVal(0.3))
	state := newTestState()

	// q2 关联Boss，Hard难度造成50点伤害
	_, err := e.CompleteQuest(state, "q2")
	require.NoError(t, err)
	assert.Equal(t, 450, state.ActiveBoss.HP)

	result, err := e.CompleteQuest(state, "q2")
	require.NoError(t, err)
	assert.Zero(t, result.BossDamage)
	assert.Equal(t, 450, state.ActiveBoss.HP)
}

func TestCompleteQuestStatusDoneBlocksCompletion(t *testing.T) {
	e := standardEngine()
	state := newTestState()
	state.FindQuest("q5").Status = models.StatusDone

	result, err := e.CompleteQuest(state, "q5")
	require.NoError(t, err)
	assert.Zero(t, result.XPGained)
	assert.Zero(t, state.User.Streak)
	assert.Equal(t, 0, state.User.XP)
}
