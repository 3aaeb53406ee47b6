package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
)

func TestExportImportRoundTrip(t *testing.T) {
	state := catalog.InitialState(testToday)
	state.User.Name = "Kai"
	state.User.Level = 12
	state.User.Credits = 0

	data, err := Export(state)
	require.NoError(t, err)

	restored, err := Import(data, testToday, 0)
	require.NoError(t, err)
	assert.Equal(t, "Kai", restored.User.Name)
	assert.Equal(t, 12, restored.User.Level)
	assert.Equal(t, 0, restored.User.Credits)
	assert.Len(t, restored.Quests, len(state.Quests))
}

func TestImportRejectsMissingUser(t *testing.T) {
	_, err := Import([]byte(`{"quests":[]}`), testToday, 0)
	assert.Error(t, err)
}

func TestImportRejectsMissingQuests(t *testing.T) {
	_, err := Import([]byte(`{"user":{"name":"X"}}`), testToday, 0)
	assert.Error(t, err)
}

func TestImportRejectsGarbage(t *testing.T) {
	_, err := Import([]byte(`not json at all`), testToday, 0)
	assert.Error(t, err)
}

func TestImportMigratesOldSave(t *testing.T) {
	raw := []byte(`{"user":{"name":"Old"},"quests":[{"id":"q","title":"Q","completed":true}]}`)
	state, err := Import(raw, testToday, 0)
	require.NoError(t, err)
	assert.Equal(t, "DONE", string(state.Quests[0].Status))
	assert.NotNil(t, state.ActiveBoss)
}
