// Package storage 负责存档的持久化、迁移与导入导出
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
	"github.com/jacl-coder/LudusVitae-Server/pkg/db"
)

// Store 基于PostgreSQL的存档仓库
type Store struct{}

// NewStore 创建存档仓库
func NewStore() *Store {
	return &Store{}
}

// Load 读取玩家存档原文，不存在时返回 (nil, nil)
func (s *Store) Load(playerID int64) ([]byte, error) {
	var raw []byte
	err := db.DB.QueryRow("SELECT state FROM saves WHERE player_id = $1", playerID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取存档失败: %w", err)
	}
	return raw, nil
}

// Save 写入玩家存档，已存在时覆盖
func (s *Store) Save(playerID int64, state *models.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("序列化存档失败: %w", err)
	}
	return s.SaveRaw(playerID, raw)
}

// SaveRaw 写入已序列化的存档原文
func (s *Store) SaveRaw(playerID int64, raw []byte) error {
	_, err := db.DB.Exec(`
		INSERT INTO saves (player_id, state, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (player_id) DO UPDATE
		SET state = EXCLUDED.state, updated_at = CURRENT_TIMESTAMP
	`, playerID, raw)
	if err != nil {
		return fmt.Errorf("写入存档失败: %w", err)
	}
	return nil
}

// Snapshot 把当前存档快照进历史表，覆盖性操作前调用
func (s *Store) Snapshot(playerID int64, reason string) error {
	_, err := db.DB.Exec(`
		INSERT INTO save_snapshots (player_id, state, reason)
		SELECT player_id, state, $2 FROM saves WHERE player_id = $1
	`, playerID, reason)
	if err != nil {
		return fmt.Errorf("写入存档快照失败: %w", err)
	}
	return nil
}

// Delete 删除玩家存档
func (s *Store) Delete(playerID int64) error {
	_, err := db.DB.Exec("DELETE FROM saves WHERE player_id = $1", playerID)
	if err != nil {
		return fmt.Errorf("删除存档失败: %w", err)
	}
	return nil
}
