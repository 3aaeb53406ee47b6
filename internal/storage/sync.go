package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jacl-coder/LudusVitae-Server/pkg/db"
)

// Session 云同步所属的玩家会话
type Session struct {
	UserID string
}

// cloudKey 云端存档的Redis键
func cloudKey(userID string) string {
	return fmt.Sprintf("cloud:save:%s", userID)
}

// cloudEnvelope 云端存档附带同步时间，便于最后写入胜出的判断
type cloudEnvelope struct {
	State       json.RawMessage `json:"gameState"`
	LastUpdated string          `json:"lastUpdated"`
}

// SaveRawToCloud 尽力而为地把已序列化的存档同步到云端，失败只记日志
func SaveRawToCloud(ctx context.Context, session Session, stateRaw []byte) {
	if session.UserID == "" || db.RedisClient == nil {
		return
	}

	envelope := cloudEnvelope{
		State:       stateRaw,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("云同步序列化失败: %v", err)
		return
	}

	if err := db.RedisClient.Set(ctx, cloudKey(session.UserID), raw, 0).Err(); err != nil {
		log.Printf("云同步写入失败: %v", err)
	}
}

// LoadFromCloud 读取云端存档原文，不存在时返回 (nil, nil)
// 采取最后写入胜出策略，由调用方确认后覆盖本地
func LoadFromCloud(ctx context.Context, session Session) ([]byte, string, error) {
	if session.UserID == "" || db.RedisClient == nil {
		return nil, "", nil
	}

	raw, err := db.RedisClient.Get(ctx, cloudKey(session.UserID)).Bytes()
	if err == redis.Nil {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("读取云端存档失败: %w", err)
	}

	var envelope cloudEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, "", fmt.Errorf("解析云端存档失败: %w", err)
	}
	return envelope.State, envelope.LastUpdated, nil
}
