package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jacl-coder/LudusVitae-Server/pkg/db"
)

// RedisLeaderboard Redis排行榜管理器
type RedisLeaderboard struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisLeaderboard 创建Redis排行榜管理器
func NewRedisLeaderboard() *RedisLeaderboard {
	return &RedisLeaderboard{
		client: db.RedisClient,
		ctx:    context.Background(),
	}
}

// 排行榜Redis键名
const (
	LeaderboardLevelKey   = "leaderboard:level"
	LeaderboardStreakKey  = "leaderboard:streak"
	LeaderboardCreditsKey = "leaderboard:credits"
	LeaderboardScoreKey   = "leaderboard:score"

	// 玩家详细信息键前缀
	PlayerInfoPrefix = "player:info:"

	// 排行榜缓存时间
	LeaderboardCacheTTL = 5 * time.Minute
)

// UpdatePlayerScore 更新玩家分数
func (rl *RedisLeaderboard) UpdatePlayerScore(playerID int64, scoreType LeaderboardType, score float64) error {
	key := rl.getLeaderboardKey(scoreType)
	return rl.client.ZAdd(rl.ctx, key, &redis.Z{
		Score:  score,
		Member: playerID,
	}).Err()
}

// UpdatePlayerInfo 更新玩家信息
func (rl *RedisLeaderboard) UpdatePlayerInfo(player *LeaderboardEntry) error {
	key := fmt.Sprintf("%s%d", PlayerInfoPrefix, player.PlayerID)

	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	return rl.client.Set(rl.ctx, key, data, LeaderboardCacheTTL).Err()
}

// GetLeaderboard 获取排行榜
func (rl *RedisLeaderboard) GetLeaderboard(scoreType LeaderboardType, limit int) ([]LeaderboardEntry, error) {
	key := rl.getLeaderboardKey(scoreType)

	// 从Redis获取排行榜（按分数降序）
	members, err := rl.client.ZRevRangeWithScores(rl.ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	var entries []LeaderboardEntry
	for i, member := range members {
		playerID, err := strconv.ParseInt(member.Member.(string), 10, 64)
		if err != nil {
			continue
		}

		// 获取玩家详细信息
		playerInfo, err := rl.getPlayerInfo(playerID)
		if err != nil {
			// 如果Redis中没有玩家信息，从数据库获取
			playerInfo, err = rl.getPlayerInfoFromDB(playerID)
			if err != nil {
				continue
			}
			// 缓存到Redis
			rl.UpdatePlayerInfo(playerInfo)
		}

		// 更新分数和排名
		playerInfo.Score = member.Score
		playerInfo.Rank = i + 1

		entries = append(entries, *playerInfo)
	}

	return entries, nil
}

// GetPlayerRank 获取玩家排名
func (rl *RedisLeaderboard) GetPlayerRank(playerID int64, scoreType LeaderboardType) (int, error) {
	key := rl.getLeaderboardKey(scoreType)

	rank, err := rl.client.ZRevRank(rl.ctx, key, strconv.FormatInt(playerID, 10)).Result()
	if err != nil {
		if err == redis.Nil {
			return -1, nil // 玩家不在排行榜中
		}
		return -1, err
	}

	return int(rank) + 1, nil // Redis排名从0开始，转换为从1开始
}

// RefreshLeaderboard 刷新排行榜（从存档重新加载）
// 进度数据存在saves表的JSONB存档里，直接在SQL中取字段
func (rl *RedisLeaderboard) RefreshLeaderboard() error {
	rows, err := db.DB.Query(leaderboardQuery + " ORDER BY score DESC LIMIT 1000")
	if err != nil {
		return err
	}
	defer rows.Close()

	// 清空现有排行榜
	keys := []string{
		LeaderboardLevelKey,
		LeaderboardStreakKey,
		LeaderboardCreditsKey,
		LeaderboardScoreKey,
	}

	for _, key := range keys {
		rl.client.Del(rl.ctx, key)
	}

	// 重新填充排行榜
	for rows.Next() {
		var entry LeaderboardEntry
		err := rows.Scan(
			&entry.PlayerID, &entry.Username, &entry.Level,
			&entry.XP, &entry.Streak, &entry.Credits, &entry.Score,
		)
		if err != nil {
			continue
		}

		// 更新各种排行榜
		rl.UpdatePlayerScore(entry.PlayerID, LeaderboardLevel, float64(entry.Level))
		rl.UpdatePlayerScore(entry.PlayerID, LeaderboardStreak, float64(entry.Streak))
		rl.UpdatePlayerScore(entry.PlayerID, LeaderboardCredits, float64(entry.Credits))
		rl.UpdatePlayerScore(entry.PlayerID, LeaderboardScore, entry.Score)

		// 缓存玩家信息
		rl.UpdatePlayerInfo(&entry)
	}

	return rows.Err()
}

// leaderboardQuery 从JSONB存档提取排行数据
// 综合评分：等级压倒一切，连胜和当前经验作次级权重
const leaderboardQuery = `
	SELECT
		p.id AS player_id,
		p.username,
		COALESCE((s.state->'user'->>'level')::int, 1) AS level,
		COALESCE((s.state->'user'->>'xp')::int, 0) AS xp,
		COALESCE((s.state->'user'->>'streak')::int, 0) AS streak,
		COALESCE((s.state->'user'->>'credits')::int, 0) AS credits,
		COALESCE((s.state->'user'->>'level')::int, 1) * 100000
			+ COALESCE((s.state->'user'->>'streak')::int, 0) * 100
			+ COALESCE((s.state->'user'->>'xp')::int, 0) AS score
	FROM players p
	JOIN saves s ON s.player_id = p.id
`

// getLeaderboardKey 获取排行榜键名
func (rl *RedisLeaderboard) getLeaderboardKey(scoreType LeaderboardType) string {
	switch scoreType {
	case LeaderboardLevel:
		return LeaderboardLevelKey
	case LeaderboardStreak:
		return LeaderboardStreakKey
	case LeaderboardCredits:
		return LeaderboardCreditsKey
	case LeaderboardScore:
		return LeaderboardScoreKey
	default:
		return LeaderboardScoreKey
	}
}

// getPlayerInfo 从Redis获取玩家信息
func (rl *RedisLeaderboard) getPlayerInfo(playerID int64) (*LeaderboardEntry, error) {
	key := fmt.Sprintf("%s%d", PlayerInfoPrefix, playerID)

	data, err := rl.client.Get(rl.ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var entry LeaderboardEntry
	err = json.Unmarshal([]byte(data), &entry)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// getPlayerInfoFromDB 从数据库获取玩家信息
func (rl *RedisLeaderboard) getPlayerInfoFromDB(playerID int64) (*LeaderboardEntry, error) {
	var entry LeaderboardEntry
	err := db.DB.QueryRow(leaderboardQuery+" WHERE p.id = $1", playerID).Scan(
		&entry.PlayerID, &entry.Username, &entry.Level,
		&entry.XP, &entry.Streak, &entry.Credits, &entry.Score,
	)

	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// SetLeaderboardTTL 设置排行榜过期时间
func (rl *RedisLeaderboard) SetLeaderboardTTL(ttl time.Duration) error {
	keys := []string{
		LeaderboardLevelKey,
		LeaderboardStreakKey,
		LeaderboardCreditsKey,
		LeaderboardScoreKey,
	}

	for _, key := range keys {
		if err := rl.client.Expire(rl.ctx, key, ttl).Err(); err != nil {
			return err
		}
	}

	return nil
}
