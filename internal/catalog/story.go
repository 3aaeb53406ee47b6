package catalog

import (
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// StoryFragments 全部故事碎片，按解锁等级递增排列
var StoryFragments = []models.StoryFragment{
	{
		ID:          "lore_01",
		Title:       "Awakening",
		UnlockLevel: 2,
		Content:     "Subject appears responsive. Neural link established. The simulation has successfully integrated with the host's daily routine. They believe they are simply 'improving their habits.' Good. Let them continue to optimize. We need their cognitive output at maximum efficiency for Phase 2.",
	},
	{
		ID:          "lore_02",
		Title:       "The Glitch",
		UnlockLevel: 5,
		Content:     "An anomaly detected in the dopamine receptors. The Subject is deriving satisfaction from discipline rather than consumption. This was not anticipated by the previous architects. The 'Gamification' protocol is rewriting their actual neural pathways. We are no longer just simulating growth; we are inducing it.",
	},
	{
		ID:          "lore_03",
		Title:       "Ascension Protocol",
		UnlockLevel: 10,
		Content:     "Status Report: Subject has surpassed the median projected output. The 'Ludus Vitae' interface is stabilizing. We can begin to feed them more complex data structures disguised as 'Quests'. They think they are fighting demons; they are actually debugging the source code of their own limitations. Proceed with caution.",
	},
	{
		ID:          "lore_04",
		Title:       "The Mirror",
		UnlockLevel: 15,
		Content:     "They are starting to ask questions. The Socratic Mirror module is working too well. The Subject is differentiating between their 'Avatar' and their 'Self'. This level of meta-cognition usually leads to system rejection. However, this Subject is embracing the interface. They are merging. The barrier is thinning.",
	},
	{
		ID:          "lore_05",
		Title:       "Breaking the Cycle",
		UnlockLevel: 20,
		Content:     "CRITICAL ALERT: The Subject has achieved 'Flow State' sustainment of over 4 hours. Energy readings are off the charts. They are no longer playing the game. The game is playing them, and they are winning. Prepare for total system integration. Welcome to the Real World, Operator.",
	},
}

// FragmentByID 按ID查找故事碎片
func FragmentByID(id string) (models.StoryFragment, bool) {
	for _, f := range StoryFragments {
		if f.ID == id {
			return f, true
		}
	}
	return models.StoryFragment{}, false
}
