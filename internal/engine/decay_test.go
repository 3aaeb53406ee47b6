package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

func TestDecaySameDayNoop(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()

	report := e.ProcessDailyDecay(state)
	assert.False(t, report.IsNewDay)
	assert.Equal(t, 0, report.DaysMissed)
	assert.Empty(t, state.StatHistory)
	assert.Equal(t, 100, state.User.HP)
}

func TestDecayNextDaySnapshotOnly(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()
	state.LastActiveDate = "2026-03-13"
	state.User.XP = 42
	state.User.Credits = 77

	report := e.ProcessDailyDecay(state)
	assert.True(t, report.IsNewDay)
	assert.Equal(t, 0, report.DaysMissed)
	assert.Equal(t, 0, report.HPLoss)
	assert.Equal(t, "2026-03-14", state.LastActiveDate)

	// 快照记录的是前一天的状态
	require.Len(t, state.StatHistory, 1)
	snap := state.StatHistory[0]
	assert.Equal(t, "2026-03-13", snap.Date)
	assert.Equal(t, 42, snap.TotalXP)
	assert.Equal(t, 77, snap.Credits)
	assert.Equal(t, 5, snap.Stats[models.StatStrength])

	// 只隔一天不扣HP也不清连击
	assert.Equal(t, 100, state.User.HP)
}

func TestDecayMissedDays(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()
	state.LastActiveDate = "2026-03-10"
	state.User.Streak = 9

	report := e.ProcessDailyDecay(state)
	assert.True(t, report.IsNewDay)
	assert.Equal(t, 3, report.DaysMissed)
	assert.Equal(t, 30, report.HPLoss)
	assert.False(t, report.LevelLost)
	assert.Equal(t, 70, state.User.HP)
	assert.Equal(t, 0, state.User.Streak)
}

func TestDecayLevelLoss(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()
	state.LastActiveDate = "2026-03-01"
	state.User.Level = 3
	state.User.XP = 250
	state.User.HP = 20

	report := e.ProcessDailyDecay(state)
	assert.True(t, report.LevelLost)
	assert.Equal(t, 2, state.User.Level)
	assert.Equal(t, 0, state.User.XP)
	assert.Equal(t, 50, state.User.HP)
}

func TestDecayLevelFloorAtOne(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()
	state.LastActiveDate = "2026-03-01"
	state.User.HP = 20

	report := e.ProcessDailyDecay(state)
	assert.False(t, report.LevelLost)
	assert.Equal(t, 1, state.User.Level)
	assert.Equal(t, 10, state.User.HP)
}

func TestDecayHistoryCap(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()
	state.LastActiveDate = "2026-03-13"
	for i := 0; i < 365; i++ {
		state.StatHistory = append(state.StatHistory, models.StatSnapshot{Date: "old"})
	}

	e.ProcessDailyDecay(state)
	assert.Len(t, state.StatHistory, 365)
	assert.Equal(t, "2026-03-13", state.StatHistory[364].Date)
}
