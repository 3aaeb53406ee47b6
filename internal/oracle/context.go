// context.go

package oracle

import (
	"fmt"
	"strings"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

const journalContextLimit = 5

// BuildPromptContext 从玩家存档提取人格prompt所需的上下文
func BuildPromptContext(state *models.GameState) PromptContext {
	return PromptContext{
		Bible:   bibleContext(state),
		Journal: journalContext(state),
		Stats:   statsContext(state),
	}
}

func bibleContext(state *models.GameState) string {
	if strings.TrimSpace(state.Bible) == "" {
		return "(The user has not written their Personal Bible yet.)"
	}
	return state.Bible
}

// journalContext 取最近几条日志，最新的在前
func journalContext(state *models.GameState) string {
	if len(state.Journal) == 0 {
		return "(No journal entries yet.)"
	}
	var b strings.Builder
	count := 0
	for i := len(state.Journal) - 1; i >= 0 && count < journalContextLimit; i-- {
		entry := state.Journal[i]
		fmt.Fprintf(&b, "- [%s] %s\n", entry.Date, entry.Content)
		count++
	}
	return b.String()
}

func statsContext(state *models.GameState) string {
	u := &state.User
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s | Level %d | Class: %s | XP: %d | HP: %d/%d | Credits: %d | Streak: %d days\n",
		u.Name, u.Level, u.PlayerClass, u.XP, u.HP, u.MaxHP, u.Credits, u.Streak)

	b.WriteString("Attributes:")
	for _, stat := range models.CoreStats() {
		fmt.Fprintf(&b, " %s=%d", stat, u.Attributes[stat])
	}
	b.WriteString("\n")

	if len(u.CustomAttributes) > 0 {
		b.WriteString("Custom Attributes:")
		for _, attr := range u.CustomAttributes {
			fmt.Fprintf(&b, " %s=%d", attr.Name, attr.Value)
		}
		b.WriteString("\n")
	}
	if len(u.SubSkills) > 0 {
		b.WriteString("Skills:")
		for _, skill := range u.SubSkills {
			fmt.Fprintf(&b, " %s(Lv%d/%s)", skill.Name, skill.Level, skill.ParentStat)
		}
		b.WriteString("\n")
	}
	if u.Height > 0 || u.Weight > 0 {
		fmt.Fprintf(&b, "Biometrics: height %dcm, weight %dkg\n", u.Height, u.Weight)
	}
	return b.String()
}
