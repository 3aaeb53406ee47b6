package game

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/engine"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
	"github.com/jacl-coder/LudusVitae-Server/internal/storage"
)

// scriptedSource 按脚本回放随机数，耗尽后返回0
type scriptedSource struct {
	vals []int64
	idx  int
}

func (s *scriptedSource) Int63() int64 {
	if s.idx >= len(s.vals) {
		return 0
	}
	v := s.vals[s.idx]
	s.idx++
	return v
}

func (s *scriptedSource) Seed(int64) {}

func rollVal(f float64) int64 {
	return int64(f * (1 << 63))
}

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestSession(rolls ...int64) *Session {
	eng := engine.NewWithSource(
		rand.New(&scriptedSource{vals: rolls}),
		func() time.Time { return testNow },
	)
	return &Session{
		PlayerID:   1,
		State:      catalog.InitialState("2026-03-14"),
		LastActive: testNow,
		engine:     eng,
		autosaver:  storage.NewAutosaver(time.Hour, func() error { return nil }),
	}
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestDispatchUnknownOp(t *testing.T) {
	sess := newTestSession()
	_, err := Dispatch(sess, "teleport", nil)
	assert.Error(t, err)
}

func TestDispatchCompleteQuest(t *testing.T) {
	sess := newTestSession(rollVal(0.3))

	result, err := Dispatch(sess, "complete_quest", mustJSON(t, map[string]string{"questId": "q5"}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, result.Notifications, 1)
	assert.Equal(t, "Task Complete.", result.Notifications[0].Message)
	quest := sess.State.FindQuest("q5")
	require.NotNil(t, quest)
	assert.True(t, quest.Completed)
}

func TestDispatchCompleteRepeatableReaddsNewInstance(t *testing.T) {
	sess := newTestSession(rollVal(0.3), rollVal(0.3))
	before := len(sess.State.Quests)

	_, err := Dispatch(sess, "complete_quest", mustJSON(t, map[string]string{"questId": "q5"}))
	require.NoError(t, err)

	// 可重复任务完成后出现一个全新的TODO实例
	require.Len(t, sess.State.Quests, before+1)
	fresh := sess.State.Quests[0]
	assert.Equal(t, "Hydration Discipline", fresh.Title)
	assert.NotEqual(t, "q5", fresh.ID)
	assert.False(t, fresh.Completed)
	assert.Equal(t, models.StatusTodo, fresh.Status)

	// 原实例重复提交是空操作，也不再追加实例
	streak := sess.State.User.Streak
	xp := sess.State.User.XP
	result, err := Dispatch(sess, "complete_quest", mustJSON(t, map[string]string{"questId": "q5"}))
	require.NoError(t, err)
	assert.Equal(t, "Already Complete.", result.Message)
	assert.Len(t, sess.State.Quests, before+1)
	assert.Equal(t, streak, sess.State.User.Streak)
	assert.Equal(t, xp, sess.State.User.XP)
}

func TestDispatchCompleteQuestNotFound(t *testing.T) {
	sess := newTestSession(rollVal(0.3))
	_, err := Dispatch(sess, "complete_quest", mustJSON(t, map[string]string{"questId": "nope"}))
	assert.Error(t, err)
}

func TestDispatchAddQuestAssignsID(t *testing.T) {
	sess := newTestSession()
	before := len(sess.State.Quests)

	result, err := Dispatch(sess, "add_quest", mustJSON(t, models.Quest{Title: "Read Meditations", XPReward: 40}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, sess.State.Quests, before+1)
	added := sess.State.Quests[0]
	assert.Equal(t, "Read Meditations", added.Title)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, models.StatusTodo, added.Status)
}

func TestDispatchAddQuestRequiresTitle(t *testing.T) {
	sess := newTestSession()
	_, err := Dispatch(sess, "add_quest", mustJSON(t, models.Quest{XPReward: 40}))
	assert.Error(t, err)
}

func TestDispatchUpdateQuestStatus(t *testing.T) {
	sess := newTestSession()

	_, err := Dispatch(sess, "update_quest_status", mustJSON(t, map[string]interface{}{
		"questId": "q1", "status": "IN_PROGRESS",
	}))
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, sess.State.FindQuest("q1").Status)

	_, err = Dispatch(sess, "update_quest_status", mustJSON(t, map[string]interface{}{
		"questId": "q1", "status": "FLYING",
	}))
	assert.Error(t, err)
}

func TestDispatchBuyItem(t *testing.T) {
	sess := newTestSession()
	sess.State.User.Credits = 500

	result, err := Dispatch(sess, "buy_item", mustJSON(t, map[string]string{"itemId": "item_potion_health"}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Len(t, sess.State.User.Inventory, 1)
}

func TestDispatchBuyItemInsufficientCredits(t *testing.T) {
	sess := newTestSession()
	sess.State.User.Credits = 0

	result, err := Dispatch(sess, "buy_item", mustJSON(t, map[string]string{"itemId": "item_potion_health"}))
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, sess.State.User.Inventory)
}

func TestDispatchUseItem(t *testing.T) {
	sess := newTestSession()
	potion, _ := catalog.ItemByID("item_potion_health")
	sess.State.User.Inventory = []models.Item{potion}
	sess.State.User.HP = 50

	result, err := Dispatch(sess, "use_item", mustJSON(t, map[string]string{"itemId": "item_potion_health"}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, sess.State.User.Inventory)
	assert.Greater(t, sess.State.User.HP, 50)
}

func TestDispatchActivatePower(t *testing.T) {
	sess := newTestSession()
	sess.State.User.Credits = 10000

	result, err := Dispatch(sess, "activate_power", mustJSON(t, map[string]string{"powerId": "pwr_hyperfocus"}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, sess.State.User.ActiveBuffs, 1)
	assert.Equal(t, "pwr_hyperfocus", sess.State.User.ActiveBuffs[0].PowerID)
}

func TestDispatchDaybreak(t *testing.T) {
	sess := newTestSession()
	credits := sess.State.User.Credits

	result, err := Dispatch(sess, "daybreak_complete", mustJSON(t, map[string]string{"mainQuestTitle": "Ship the report"}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, credits+50, sess.State.User.Credits)
	assert.Equal(t, "PRIME DIRECTIVE: Ship the report", sess.State.Quests[0].Title)
}

func TestDispatchLogTime(t *testing.T) {
	sess := newTestSession()
	xp := sess.State.User.XP

	result, err := Dispatch(sess, "log_time", mustJSON(t, map[string]interface{}{
		"minutes": 30, "activity": "Deep work", "category": "WORK",
	}))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, xp+24, sess.State.User.XP)
	require.Len(t, sess.State.TimeLogs, 1)
	assert.Equal(t, "Deep work", sess.State.TimeLogs[0].Activity)

	_, err = Dispatch(sess, "log_time", mustJSON(t, map[string]interface{}{"minutes": 0}))
	assert.Error(t, err)
}

func TestDispatchCreateCampaign(t *testing.T) {
	sess := newTestSession()
	before := len(sess.State.Quests)

	payload := mustJSON(t, map[string]interface{}{
		"boss": models.Boss{ID: "boss_thesis", Name: "The Unwritten Thesis", HP: 300, MaxHP: 300, Active: true},
		"subQuests": []models.Quest{
			{ID: "c1", Title: "Outline chapter one", XPReward: 100, Status: models.StatusTodo},
			{ID: "c2", Title: "Draft introduction", XPReward: 100, Status: models.StatusTodo},
		},
	})
	result, err := Dispatch(sess, "create_campaign", payload)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, sess.State.ActiveBoss)
	assert.Equal(t, "boss_thesis", sess.State.ActiveBoss.ID)
	assert.Len(t, sess.State.Quests, before+2)
	assert.Equal(t, "c1", sess.State.Quests[0].ID)
	require.Len(t, result.Notifications, 1)
	assert.Equal(t, "CAMPAIGN INITIALIZED", result.Notifications[0].Message)
}

func TestDispatchVirtueLifecycle(t *testing.T) {
	sess := newTestSession()
	before := len(sess.State.Virtues)

	_, err := Dispatch(sess, "add_virtue", mustJSON(t, models.Virtue{Name: "Patience"}))
	require.NoError(t, err)
	require.Len(t, sess.State.Virtues, before+1)
	added := sess.State.Virtues[before]
	assert.NotEmpty(t, added.ID)
	assert.Len(t, added.Adherence, 7)

	_, err = Dispatch(sess, "toggle_virtue", mustJSON(t, map[string]interface{}{"id": added.ID, "index": 2}))
	require.NoError(t, err)
	assert.True(t, sess.State.Virtues[before].Adherence[2])

	_, err = Dispatch(sess, "toggle_virtue", mustJSON(t, map[string]interface{}{"id": added.ID, "index": 9}))
	assert.Error(t, err)

	_, err = Dispatch(sess, "delete_virtue", mustJSON(t, map[string]string{"id": added.ID}))
	require.NoError(t, err)
	assert.Len(t, sess.State.Virtues, before)
}

func TestDispatchAdoptSkillDedupes(t *testing.T) {
	sess := newTestSession()
	before := len(sess.State.User.SubSkills)

	_, err := Dispatch(sess, "adopt_skill", mustJSON(t, map[string]string{"name": "Fencing", "parentStat": "Dexterity"}))
	require.NoError(t, err)
	require.Len(t, sess.State.User.SubSkills, before+1)

	// 忽略大小写去重
	_, err = Dispatch(sess, "adopt_skill", mustJSON(t, map[string]string{"name": "FENCING", "parentStat": "Dexterity"}))
	require.NoError(t, err)
	assert.Len(t, sess.State.User.SubSkills, before+1)
}

func TestDispatchProfileUpdates(t *testing.T) {
	sess := newTestSession()

	_, err := Dispatch(sess, "update_name", mustJSON(t, map[string]string{"name": "Aurelius"}))
	require.NoError(t, err)
	assert.Equal(t, "Aurelius", sess.State.User.Name)

	_, err = Dispatch(sess, "update_name", mustJSON(t, map[string]string{"name": ""}))
	assert.Error(t, err)

	_, err = Dispatch(sess, "update_biometrics", mustJSON(t, map[string]int{"height": 180, "weight": 75}))
	require.NoError(t, err)
	assert.Equal(t, 180, sess.State.User.Height)
	assert.Equal(t, 75, sess.State.User.Weight)
}

func TestDispatchAddJournalDefaultsDate(t *testing.T) {
	sess := newTestSession()

	_, err := Dispatch(sess, "add_journal", mustJSON(t, models.JournalEntry{Content: "Good day."}))
	require.NoError(t, err)

	require.Len(t, sess.State.Journal, 1)
	assert.Equal(t, "2026-03-14", sess.State.Journal[0].Date)
}

func TestDispatchGrantAchievement(t *testing.T) {
	sess := newTestSession()

	result, err := Dispatch(sess, "grant_achievement", mustJSON(t, map[string]string{"id": "ach_early_bird"}))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, sess.State.User.Achievements, "ach_early_bird")

	// 自动判定的成就不允许手动授予
	_, err = Dispatch(sess, "grant_achievement", mustJSON(t, map[string]string{"id": "ach_iron_will"}))
	assert.Error(t, err)
}

func TestDispatchUnlocksRunAfterMutation(t *testing.T) {
	sess := newTestSession(rollVal(0.3))
	sess.State.User.Level = 4
	sess.State.User.XP = 2499
	quest := models.Quest{ID: "qx", Title: "X", XPReward: 1, Status: models.StatusTodo}
	sess.State.Quests = append(sess.State.Quests, quest)

	result, err := Dispatch(sess, "complete_quest", mustJSON(t, map[string]string{"questId": "qx"}))
	require.NoError(t, err)

	assert.Equal(t, 5, sess.State.User.Level)
	// 升到5级应解锁剧情碎片，通知追加在操作结果之后
	assert.Contains(t, sess.State.User.UnlockedFragments, "lore_02")
	messages := make([]string, 0, len(result.Notifications))
	for _, n := range result.Notifications {
		messages = append(messages, n.Message)
	}
	assert.Contains(t, messages, "ASCENSION! Welcome to Level 5")
}
