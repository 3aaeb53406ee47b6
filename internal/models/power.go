package models

// PowerType 主动能力类型
type PowerType string

const (
	PowerXPBoost     PowerType = "XP_BOOST"
	PowerDamageBoost PowerType = "DAMAGE_BOOST"
	PowerTimeWarp    PowerType = "TIME_WARP"
)

// Power 可购买激活的主动能力
type Power struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Cost            int       `json:"cost"`
	DurationMinutes int       `json:"durationMinutes"`
	Type            PowerType `json:"type"`
	Multiplier      float64   `json:"multiplier,omitempty"`
	Icon            string    `json:"icon"`
	Color           string    `json:"color"`
}

// ActiveBuff 已激活的增益，时间戳为Unix毫秒
type ActiveBuff struct {
	PowerID   string `json:"powerId"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
}
