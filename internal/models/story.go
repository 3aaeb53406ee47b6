package models

// Achievement 成就定义，Condition 不参与序列化
type Achievement struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Icon        string                `json:"icon"`
	Condition   func(*UserStats) bool `json:"-"`
}

// StoryFragment 随等级解锁的故事碎片
type StoryFragment struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	UnlockLevel int    `json:"unlockLevel"`
	Read        bool   `json:"read"`
}

// SkillNode 技能树节点，通过属性门槛解锁
type SkillNode struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Unlocked    bool             `json:"unlocked"`
	StatReq     map[StatType]int `json:"statReq"`
	ParentID    string           `json:"parentId,omitempty"`
}

// StatSnapshot 某一天结束时的属性快照
type StatSnapshot struct {
	Date    string           `json:"date"`
	Stats   map[StatType]int `json:"stats"`
	TotalXP int              `json:"totalXp"`
	Credits int              `json:"credits"`
}
