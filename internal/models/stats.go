// stats.go

package models

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	PlayerID int64   `json:"player_id"`
	Username string  `json:"username"`
	Level    int     `json:"level"`
	XP       int     `json:"xp"`
	Streak   int     `json:"streak"`
	Credits  int     `json:"credits"`
	Score    float64 `json:"score"` // 综合评分
	Rank     int     `json:"rank"`  // 排名
}

// LeaderboardType 排行榜类型
type LeaderboardType string

const (
	// LeaderboardLevel 等级排行榜
	LeaderboardLevel LeaderboardType = "level"
	// LeaderboardStreak 连胜排行榜
	LeaderboardStreak LeaderboardType = "streak"
	// LeaderboardCredits 信用点排行榜
	LeaderboardCredits LeaderboardType = "credits"
	// LeaderboardScore 综合得分排行榜
	LeaderboardScore LeaderboardType = "score"
)

// 注意：表结构定义已移至 pkg/db/schema.go 统一管理
