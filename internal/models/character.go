package models

// StatType 核心五维属性
type StatType string

const (
	StatStrength     StatType = "Strength"
	StatDexterity    StatType = "Dexterity"
	StatIntelligence StatType = "Intelligence"
	StatCharisma     StatType = "Charisma"
	StatConstitution StatType = "Constitution"
)

// CoreStats 按固定顺序返回五维属性
func CoreStats() []StatType {
	return []StatType{StatStrength, StatDexterity, StatIntelligence, StatCharisma, StatConstitution}
}

// PlayerClass 玩家职业
type PlayerClass string

const (
	ClassNone          PlayerClass = "NONE"
	ClassShadowMonarch PlayerClass = "SHADOW_MONARCH"
	ClassArchitect     PlayerClass = "ARCHITECT"
	ClassOperator      PlayerClass = "OPERATOR"
	ClassTitan         PlayerClass = "TITAN"
)

// CustomAttribute 玩家自定义的扩展属性
type CustomAttribute struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Value   int    `json:"value"`
	Color   string `json:"color"`
	BgColor string `json:"bgColor"`
}

// SubSkill 挂在某个属性下的子技能
type SubSkill struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ParentStat string `json:"parentStat"`
	Level      int    `json:"level"`
	XP         int    `json:"xp"`
}

// UserStats 玩家角色状态
type UserStats struct {
	Name              string            `json:"name"`
	Level             int               `json:"level"`
	PlayerClass       PlayerClass       `json:"playerClass"`
	XP                int               `json:"xp"`
	HP                int               `json:"hp"`
	MaxHP             int               `json:"maxHp"`
	Credits           int               `json:"credits"`
	Attributes        map[StatType]int  `json:"attributes"`
	CustomAttributes  []CustomAttribute `json:"customAttributes"`
	SubSkills         []SubSkill        `json:"subSkills"`
	Inventory         []Item            `json:"inventory"`
	Achievements      []string          `json:"achievements"`
	ActiveBuffs       []ActiveBuff      `json:"activeBuffs"`
	UnlockedFragments []string          `json:"unlockedFragments"`
	Streak            int               `json:"streak"`
	Height            int               `json:"height"`
	Weight            int               `json:"weight"`
	BirthDate         string            `json:"birthDate,omitempty"`
	AvatarURL         string            `json:"avatarUrl,omitempty"`
}

// Attribute 读取属性值，核心五维之外回落到自定义属性
func (u *UserStats) Attribute(name string) (int, bool) {
	if v, ok := u.Attributes[StatType(name)]; ok {
		return v, true
	}
	for _, a := range u.CustomAttributes {
		if a.Name == name || a.ID == name {
			return a.Value, true
		}
	}
	return 0, false
}
