package models

// QuestStatus 任务在看板上的状态
type QuestStatus string

const (
	StatusTodo       QuestStatus = "TODO"
	StatusInProgress QuestStatus = "IN_PROGRESS"
	StatusDone       QuestStatus = "DONE"
)

// Difficulty 任务难度
type Difficulty string

const (
	DifficultyEasy      Difficulty = "Easy"
	DifficultyMedium    Difficulty = "Medium"
	DifficultyHard      Difficulty = "Hard"
	DifficultyLegendary Difficulty = "Legendary"
)

// Quest 任务模型
type Quest struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Type         string      `json:"type"`
	SkillID      string      `json:"skillId,omitempty"`
	SkillName    string      `json:"skillName,omitempty"`
	LinkedBossID string      `json:"linkedBossId,omitempty"`
	XPReward     int         `json:"xpReward"`
	CreditReward int         `json:"creditReward"`
	Completed    bool        `json:"completed"`
	Status       QuestStatus `json:"status"`
	Repeatable   bool        `json:"repeatable"`
	Difficulty   Difficulty  `json:"difficulty"`
	Tags         []string    `json:"tags,omitempty"`
	IsBossDamage bool        `json:"isBossDamage,omitempty"`
}

// Goal 长期目标：将某个属性或技能练到目标等级
type Goal struct {
	ID          string `json:"id"`
	TargetType  string `json:"targetType"` // STAT 或 SKILL
	TargetID    string `json:"targetId"`
	TargetName  string `json:"targetName"`
	TargetLevel int    `json:"targetLevel"`
	Completed   bool   `json:"completed"`
}
