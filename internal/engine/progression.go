package engine

import (
	"math"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
)

// XPForNextLevel 计算当前等级升到下一级所需经验
func XPForNextLevel(level int) int {
	return int(math.Floor(catalog.XPBase * math.Pow(float64(level), catalog.XPExponent)))
}

// CheckLevelUp 判断当前经验是否足以升级
func CheckLevelUp(xp, level int) bool {
	return xp >= XPForNextLevel(level)
}

// SkillXPForNextLevel 计算子技能升到下一级所需经验
func SkillXPForNextLevel(level int) int {
	return 100 * level
}

// CheckSkillLevelUp 判断子技能经验是否足以升级
func CheckSkillLevelUp(xp, level int) bool {
	return xp >= SkillXPForNextLevel(level)
}

// RankTitle 按等级返回称号
func RankTitle(level int) string {
	switch {
	case level < 5:
		return "Novice"
	case level < 10:
		return "Apprentice"
	case level < 20:
		return "Journeyman"
	case level < 50:
		return "Adept"
	case level < 80:
		return "Master"
	default:
		return "Grandmaster"
	}
}
