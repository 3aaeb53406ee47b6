package catalog

import (
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// 经验曲线参数
const (
	XPBase     = 100
	XPExponent = 2
	// SkillLevelUpBonusXP 子技能升级时奖励的全局经验
	SkillLevelUpBonusXP = 200
)

// InitialQuests 新玩家的初始任务
var InitialQuests = []models.Quest{
	{
		ID:           "q1",
		Title:        "Morning Calisthenics",
		Description:  "Complete 3 sets of pushups and squats.",
		Type:         string(models.StatStrength),
		XPReward:     50,
		CreditReward: 10,
		Status:       models.StatusTodo,
		Repeatable:   true,
		Difficulty:   models.DifficultyMedium,
		Tags:         []string{"fitness", "routine"},
	},
	{
		ID:           "q2",
		Title:        "Deep Work Session",
		Description:  "90 minutes of uninterrupted focus.",
		Type:         string(models.StatIntelligence),
		XPReward:     80,
		CreditReward: 20,
		Status:       models.StatusTodo,
		Repeatable:   true,
		Difficulty:   models.DifficultyHard,
		Tags:         []string{"focus", "work"},
		LinkedBossID: "boss_entropy",
	},
	{
		ID:           "q3",
		Title:        "Rejection Therapy: The Ask",
		Description:  "Ask a stranger for a small favor (e.g., the time, directions).",
		Type:         string(models.StatCharisma),
		XPReward:     100,
		CreditReward: 30,
		Status:       models.StatusTodo,
		Repeatable:   true,
		Difficulty:   models.DifficultyMedium,
		Tags:         []string{"social", "courage"},
	},
	{
		ID:           "q4",
		Title:        "Stoic Reflection",
		Description:  "Write a journal entry reviewing your day against your virtues.",
		Type:         string(models.StatIntelligence),
		XPReward:     30,
		CreditReward: 5,
		Status:       models.StatusTodo,
		Repeatable:   true,
		Difficulty:   models.DifficultyEasy,
		Tags:         []string{"mindfulness", "journaling"},
		LinkedBossID: "boss_entropy",
	},
	{
		ID:           "q5",
		Title:        "Hydration Discipline",
		Description:  "Drink 3 Liters of water.",
		Type:         string(models.StatConstitution),
		XPReward:     20,
		CreditReward: 5,
		Status:       models.StatusTodo,
		Repeatable:   true,
		Difficulty:   models.DifficultyEasy,
		Tags:         []string{"health"},
	},
}

// InitialSkills 新玩家的初始技能树
var InitialSkills = []models.SkillNode{
	{ID: "s1", Title: "Novice Bodyweight", Description: "Can perform 10 pushups.", Unlocked: true, StatReq: map[models.StatType]int{models.StatStrength: 1}},
	{ID: "s2", Title: "Intermediate Calisthenics", Description: "Diamond pushups unlocked.", Unlocked: false, StatReq: map[models.StatType]int{models.StatStrength: 10}, ParentID: "s1"},
	{ID: "s3", Title: "Conversationalist", Description: "Basic small talk mastery.", Unlocked: true, StatReq: map[models.StatType]int{models.StatCharisma: 1}},
	{ID: "s4", Title: "Orator", Description: "Public speaking without fear.", Unlocked: false, StatReq: map[models.StatType]int{models.StatCharisma: 15}, ParentID: "s3"},
}

// InitialVirtues 新玩家的初始美德清单
var InitialVirtues = []models.Virtue{
	{ID: "v1", Name: "Temperance", Description: "Eat not to dullness; drink not to elevation.", Adherence: make([]bool, 7)},
	{ID: "v2", Name: "Silence", Description: "Speak not but what may benefit others or yourself.", Adherence: make([]bool, 7)},
	{ID: "v3", Name: "Order", Description: "Let all your things have their places.", Adherence: make([]bool, 7)},
	{ID: "v4", Name: "Resolution", Description: "Resolve to perform what you ought.", Adherence: make([]bool, 7)},
	{ID: "v5", Name: "Frugality", Description: "Make no expense but to do good to others or yourself.", Adherence: make([]bool, 7)},
	{ID: "v6", Name: "Industry", Description: "Lose no time; be always employ'd in something useful.", Adherence: make([]bool, 7)},
	{ID: "v7", Name: "Sincerity", Description: "Use no hurtful deceit; think innocently and justly.", Adherence: make([]bool, 7)},
	{ID: "v8", Name: "Perseverance", Description: "Continue striving despite setbacks.", Adherence: make([]bool, 7)},
}

// InitialBible 新玩家的个人信条模板
const InitialBible = "# My Personal Bible\n\n**Mission:** To live a life of purpose, strength, and wisdom.\n\n**Core Values:**\n1. Courage over Comfort.\n2. Discipline is Freedom.\n3. Memento Mori.\n\n**Maxims:**\n- The obstacle is the way.\n- Actions speak louder than words."

// InitialBoss 创建初始世界Boss
func InitialBoss() *models.Boss {
	scroll, _ := ItemByID("item_ancient_scroll")
	return &models.Boss{
		ID:           "boss_entropy",
		Name:         "The Entropy Demon",
		Title:        "Devourer of Time",
		Description:  "A manifestation of procrastination and chaos. It feeds on your wasted moments.",
		HP:           500,
		MaxHP:        500,
		ImageURL:     "https://image.pollinations.ai/prompt/cyberpunk%20glitch%20demon%20boss%20monster",
		Rewards:      []models.Item{scroll},
		Stages:       3,
		CurrentStage: 1,
		Active:       true,
		Defeated:     false,
		Objectives:   []string{"q2", "q4"},
	}
}

// InitialState 创建新玩家的完整初始存档
// 每次调用都返回全新的深拷贝，调用方可以安全修改
func InitialState(today string) *models.GameState {
	quests := make([]models.Quest, len(InitialQuests))
	copy(quests, InitialQuests)
	skills := make([]models.SkillNode, len(InitialSkills))
	copy(skills, InitialSkills)
	virtues := make([]models.Virtue, len(InitialVirtues))
	for i, v := range InitialVirtues {
		v.Adherence = make([]bool, 7)
		virtues[i] = v
	}
	heroes := make([]models.Hero, len(InitialHeroes))
	copy(heroes, InitialHeroes)

	return &models.GameState{
		User: models.UserStats{
			Name:        "Player",
			Level:       1,
			PlayerClass: models.ClassNone,
			XP:          0,
			HP:          100,
			MaxHP:       100,
			Credits:     100,
			Attributes: map[models.StatType]int{
				models.StatStrength:     5,
				models.StatDexterity:    5,
				models.StatIntelligence: 5,
				models.StatCharisma:     5,
				models.StatConstitution: 5,
			},
			CustomAttributes:  []models.CustomAttribute{},
			SubSkills:         []models.SubSkill{},
			Inventory:         []models.Item{},
			Achievements:      []string{},
			ActiveBuffs:       []models.ActiveBuff{},
			UnlockedFragments: []string{},
			Streak:            0,
			Height:            175,
			Weight:            70,
			BirthDate:         "2000-01-01",
		},
		Quests:         quests,
		Skills:         skills,
		Virtues:        virtues,
		Heroes:         heroes,
		Goals:          []models.Goal{},
		Bible:          InitialBible,
		Journal:        []models.JournalEntry{},
		TimeLogs:       []models.TimeLog{},
		StatHistory:    []models.StatSnapshot{},
		ActiveBoss:     InitialBoss(),
		LastActiveDate: today,
	}
}
