package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

const testToday = "2026-03-14"

func TestMergeEmptyRawGivesInitialState(t *testing.T) {
	state, err := MergeWithDefaults(nil, testToday, 0)
	require.NoError(t, err)
	assert.Equal(t, "Player", state.User.Name)
	assert.Equal(t, 1, state.User.Level)
	assert.Equal(t, 100, state.User.Credits)
	assert.Len(t, state.Quests, 5)
	assert.Equal(t, testToday, state.LastActiveDate)
	require.NotNil(t, state.ActiveBoss)
	assert.Equal(t, "boss_entropy", state.ActiveBoss.ID)
}

func TestMergeKeepsSavedFields(t *testing.T) {
	raw := []byte(`{"user":{"name":"Kai","level":7,"credits":0},"quests":[],"lastActiveDate":"2026-03-01"}`)
	state, err := MergeWithDefaults(raw, testToday, 0)
	require.NoError(t, err)
	assert.Equal(t, "Kai", state.User.Name)
	assert.Equal(t, 7, state.User.Level)
	// 显式存过的0不会被初始值覆盖
	assert.Equal(t, 0, state.User.Credits)
	assert.Empty(t, state.Quests)
	assert.Equal(t, "2026-03-01", state.LastActiveDate)
}

func TestMergeMissingFieldsFallBack(t *testing.T) {
	raw := []byte(`{"user":{"level":3},"quests":[{"id":"q1","title":"Old"}]}`)
	state, err := MergeWithDefaults(raw, testToday, 0)
	require.NoError(t, err)
	// 未出现的字段保持初始值
	assert.Equal(t, 100, state.User.Credits)
	assert.Equal(t, 100, state.User.HP)
	assert.Equal(t, 5, state.User.Attributes[models.StatStrength])
}

func TestMergeInvalidJSON(t *testing.T) {
	_, err := MergeWithDefaults([]byte(`{nope`), testToday, 0)
	assert.Error(t, err)
}

func TestMigrationsBackfillNilSlices(t *testing.T) {
	raw := []byte(`{"user":{"name":"Kai","achievements":null,"inventory":null,"activeBuffs":null},"quests":null,"statHistory":null,"activeBoss":null}`)
	state, err := MergeWithDefaults(raw, testToday, 0)
	require.NoError(t, err)

	assert.NotNil(t, state.User.Achievements)
	assert.NotNil(t, state.User.Inventory)
	assert.NotNil(t, state.User.ActiveBuffs)
	assert.NotNil(t, state.Quests)
	assert.NotNil(t, state.StatHistory)
	// Boss被清空的旧档恢复初始Boss
	require.NotNil(t, state.ActiveBoss)
	assert.Equal(t, "boss_entropy", state.ActiveBoss.ID)
}

func TestMigrationsQuestStatusBackfill(t *testing.T) {
	raw := []byte(`{"user":{"name":"Kai"},"quests":[{"id":"a","title":"A","completed":true},{"id":"b","title":"B","completed":false}]}`)
	state, err := MergeWithDefaults(raw, testToday, 0)
	require.NoError(t, err)

	assert.Equal(t, models.StatusDone, state.Quests[0].Status)
	assert.Equal(t, models.StatusTodo, state.Quests[1].Status)
}

func TestMigrationsVirtueIDBackfill(t *testing.T) {
	raw := []byte(`{"user":{"name":"Kai"},"quests":[],"virtues":[{"name":"Order"},{"id":"v9","name":"Grit"}]}`)
	state, err := MergeWithDefaults(raw, testToday, 1700000000000)
	require.NoError(t, err)

	assert.Equal(t, "virtue-migrated-1700000000000-0", state.Virtues[0].ID)
	assert.Equal(t, "v9", state.Virtues[1].ID)
	assert.Len(t, state.Virtues[0].Adherence, 7)
}

func TestMigrationsNameFallback(t *testing.T) {
	raw := []byte(`{"user":{"name":"","level":2},"quests":[]}`)
	state, err := MergeWithDefaults(raw, testToday, 0)
	require.NoError(t, err)
	assert.Equal(t, "Player", state.User.Name)
}
