package models

// Virtue 每日美德打卡，adherence 为最近7天的记录
type Virtue struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Adherence   []bool `json:"adherence"`
}

// JournalEntry 日志条目
type JournalEntry struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	MoodScore int      `json:"moodScore,omitempty"`
}

// TimeLogCategory 时间记录分类
type TimeLogCategory string

const (
	TimeLogFocus    TimeLogCategory = "FOCUS"
	TimeLogLearning TimeLogCategory = "LEARNING"
	TimeLogWork     TimeLogCategory = "WORK"
	TimeLogExercise TimeLogCategory = "EXERCISE"
	TimeLogOther    TimeLogCategory = "OTHER"
)

// TimeLog 一段投入时间的记录，时间戳为Unix毫秒
type TimeLog struct {
	ID              string          `json:"id"`
	Timestamp       int64           `json:"timestamp"`
	DurationMinutes int             `json:"durationMinutes"`
	Activity        string          `json:"activity"`
	Category        TimeLogCategory `json:"category"`
}

// HeroSkill 英雄身上可习得的技能
type HeroSkill struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Hero 英雄（楷模）档案
type Hero struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	Stats       map[StatType]int `json:"stats"`
	Skills      []HeroSkill      `json:"skills"`
	Tags        []string         `json:"tags"`
	Quotes      []string         `json:"quotes"`
}

// LootResult 战利品判定档位
type LootResult string

const (
	LootStandard LootResult = "STANDARD"
	LootCritical LootResult = "CRITICAL"
	LootJackpot  LootResult = "JACKPOT"
)

// GameState 完整的玩家存档
type GameState struct {
	User           UserStats      `json:"user"`
	Quests         []Quest        `json:"quests"`
	Skills         []SkillNode    `json:"skills"`
	Virtues        []Virtue       `json:"virtues"`
	Heroes         []Hero         `json:"heroes"`
	Goals          []Goal         `json:"goals"`
	Bible          string         `json:"bible"`
	Journal        []JournalEntry `json:"journal"`
	TimeLogs       []TimeLog      `json:"timeLogs"`
	StatHistory    []StatSnapshot `json:"statHistory"`
	ActiveBoss     *Boss          `json:"activeBoss"`
	LastActiveDate string         `json:"lastActiveDate"`
}

// FindQuest 按ID查找任务，返回指向存档内元素的指针
func (s *GameState) FindQuest(id string) *Quest {
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			return &s.Quests[i]
		}
	}
	return nil
}

// FindItem 在背包中按ID查找物品
func (u *UserStats) FindItem(id string) *Item {
	for i := range u.Inventory {
		if u.Inventory[i].ID == id {
			return &u.Inventory[i]
		}
	}
	return nil
}

// RemoveItem 从背包移除第一个匹配ID的物品
func (u *UserStats) RemoveItem(id string) bool {
	for i := range u.Inventory {
		if u.Inventory[i].ID == id {
			u.Inventory = append(u.Inventory[:i], u.Inventory[i+1:]...)
			return true
		}
	}
	return false
}
