// player.go

package models

import (
	"time"
)

// Player 玩家账号模型
type Player struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // 不序列化密码
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LastLoginAt time.Time `json:"last_login_at,omitempty"`
}

// PlayerSession 玩家会话信息
type PlayerSession struct {
	PlayerID  int64  `json:"player_id"`
	SessionID string `json:"session_id"`
}

// 注意：表结构定义已移至 pkg/db/schema.go 统一管理
