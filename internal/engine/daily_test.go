package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

func TestCompleteDaybreak(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()
	before := len(state.Quests)

	quest := e.CompleteDaybreak(state, "Ship the release")
	assert.Equal(t, "PRIME DIRECTIVE: Ship the release", quest.Title)
	assert.Equal(t, models.DifficultyHard, quest.Difficulty)
	assert.Equal(t, 100, quest.XPReward)
	assert.Equal(t, 50, quest.CreditReward)
	assert.False(t, quest.Repeatable)

	assert.Equal(t, 150, state.User.Credits)
	require.Len(t, state.Quests, before+1)
	// 新任务插在队首
	assert.Equal(t, quest.ID, state.Quests[0].ID)
}

func TestLogTime(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()

	entry, xp := e.LogTime(state, 25, "Reading", models.TimeLogLearning)
	assert.Equal(t, 20, xp) // ceil(25 * 0.8)
	assert.Equal(t, 20, state.User.XP)
	assert.Equal(t, 25, entry.DurationMinutes)
	require.Len(t, state.TimeLogs, 1)
}

func TestLogTimeRoundsUp(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()

	_, xp := e.LogTime(state, 26, "Reading", models.TimeLogLearning)
	assert.Equal(t, 21, xp) // ceil(20.8)
}

func TestLogTimeNoLevelCheck(t *testing.T) {
	e := newTestEngine(testNow)
	state := newTestState()
	state.User.XP = 95

	e.LogTime(state, 60, "Deep work", models.TimeLogFocus)
	assert.Equal(t, 143, state.User.XP)
	assert.Equal(t, 1, state.User.Level)
}
