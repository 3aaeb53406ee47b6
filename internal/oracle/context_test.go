package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

func TestBuildPromptContextEmptyState(t *testing.T) {
	state := catalog.InitialState("2026-03-14")
	pc := BuildPromptContext(state)

	assert.Contains(t, pc.Bible, "not written")
	assert.Contains(t, pc.Journal, "No journal entries")
	assert.Contains(t, pc.Stats, "Level 1")
	assert.Contains(t, pc.Stats, "Strength=")
}

func TestBuildPromptContextJournalTail(t *testing.T) {
	state := catalog.InitialState("2026-03-14")
	state.Bible = "Memento mori."
	for _, day := range []string{"08", "09", "10", "11", "12", "13", "14"} {
		state.Journal = append(state.Journal, models.JournalEntry{
			ID:      "j" + day,
			Date:    "2026-03-" + day,
			Content: "entry " + day,
		})
	}
	state.User.SubSkills = append(state.User.SubSkills, models.SubSkill{
		ID: "sk1", Name: "Python", ParentStat: "Intelligence", Level: 3,
	})

	pc := BuildPromptContext(state)

	assert.Equal(t, "Memento mori.", pc.Bible)
	// 只保留最近几条，最新的在前
	assert.Contains(t, pc.Journal, "entry 14")
	assert.Contains(t, pc.Journal, "entry 10")
	assert.NotContains(t, pc.Journal, "entry 09")
	assert.Contains(t, pc.Stats, "Python(Lv3/Intelligence)")
}
