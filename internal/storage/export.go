package storage

import (
	"encoding/json"
	"fmt"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// Export 把存档序列化为可下载的JSON文本
func Export(state *models.GameState) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("导出存档失败: %w", err)
	}
	return data, nil
}

// Import 校验并解析导入的存档文件
// 必须带有 user 与 quests 两个键，否则视为无效文件
func Import(raw []byte, today string, nowMillis int64) (*models.GameState, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("存档文件不是合法JSON: %w", err)
	}
	if _, ok := probe["user"]; !ok {
		return nil, fmt.Errorf("存档文件缺少user字段")
	}
	if _, ok := probe["quests"]; !ok {
		return nil, fmt.Errorf("存档文件缺少quests字段")
	}

	return MergeWithDefaults(raw, today, nowMillis)
}
