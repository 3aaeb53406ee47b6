// stats.go

package gateway

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/jacl-coder/LudusVitae-Server/internal/models"
	"github.com/jacl-coder/LudusVitae-Server/pkg/db"
)

// StatsHandler 进度统计处理器
type StatsHandler struct {
	redisLeaderboard *models.RedisLeaderboard
	useRedis         bool
}

// NewStatsHandler 创建进度统计处理器
func NewStatsHandler() *StatsHandler {
	useRedis := db.RedisClient != nil
	var redisLeaderboard *models.RedisLeaderboard

	if useRedis {
		redisLeaderboard = models.NewRedisLeaderboard()
	}

	return &StatsHandler{
		redisLeaderboard: redisLeaderboard,
		useRedis:         useRedis,
	}
}

// RegisterHandlers 注册HTTP处理器
func (h *StatsHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/stats/player/", h.handlePlayerStats)
	mux.HandleFunc("/stats/history/", h.handlePlayerHistory)
	mux.HandleFunc("/stats/rank/", h.handlePlayerRank)
	mux.HandleFunc("/stats/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/stats/leaderboard/refresh", h.handleRefreshLeaderboard)
}

// StatsResponse 统计响应
type StatsResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PlayerProgress 玩家进度概览
type PlayerProgress struct {
	PlayerID        int64  `json:"player_id"`
	Username        string `json:"username"`
	Level           int    `json:"level"`
	XP              int    `json:"xp"`
	HP              int    `json:"hp"`
	MaxHP           int    `json:"maxHp"`
	Credits         int    `json:"credits"`
	Streak          int    `json:"streak"`
	QuestsTotal     int    `json:"questsTotal"`
	QuestsCompleted int    `json:"questsCompleted"`
	Achievements    int    `json:"achievements"`
	SubSkills       int    `json:"subSkills"`
}

// LeaderboardResponse 排行榜响应
type LeaderboardResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Data    []models.LeaderboardEntry `json:"data"`
}

// handlePlayerStats 处理玩家进度查询
func (h *StatsHandler) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	// 提取玩家ID
	path := strings.TrimPrefix(r.URL.Path, "/stats/player/")
	playerID, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		h.sendErrorResponse(w, "无效的玩家ID", http.StatusBadRequest)
		return
	}

	// 查询玩家进度
	progress, err := h.getPlayerProgress(playerID)
	if err != nil {
		if err == sql.ErrNoRows {
			h.sendErrorResponse(w, "玩家不存在", http.StatusNotFound)
			return
		}
		log.Printf("查询玩家进度失败: %v", err)
		h.sendErrorResponse(w, "查询玩家进度失败", http.StatusInternalServerError)
		return
	}

	// 返回成功响应
	h.sendSuccessResponse(w, "查询成功", progress)
}

// handlePlayerHistory 处理玩家每日快照查询
func (h *StatsHandler) handlePlayerHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	// 提取玩家ID
	path := strings.TrimPrefix(r.URL.Path, "/stats/history/")
	playerID, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		h.sendErrorResponse(w, "无效的玩家ID", http.StatusBadRequest)
		return
	}

	// 解析查询参数
	limit := 30 // 默认返回最近30天
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 365 {
			limit = l
		}
	}

	history, err := h.getPlayerHistory(playerID, limit)
	if err != nil {
		if err == sql.ErrNoRows {
			h.sendErrorResponse(w, "玩家不存在", http.StatusNotFound)
			return
		}
		log.Printf("查询每日快照失败: %v", err)
		h.sendErrorResponse(w, "查询每日快照失败", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "查询成功", history)
}

// handlePlayerRank 处理玩家排名查询
func (h *StatsHandler) handlePlayerRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	if !h.useRedis {
		h.sendErrorResponse(w, "排行榜服务不可用", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/stats/rank/")
	playerID, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		h.sendErrorResponse(w, "无效的玩家ID", http.StatusBadRequest)
		return
	}

	scoreType := models.LeaderboardType(r.URL.Query().Get("type"))
	if scoreType == "" {
		scoreType = models.LeaderboardScore
	}

	rank, err := h.redisLeaderboard.GetPlayerRank(playerID, scoreType)
	if err != nil {
		log.Printf("查询玩家排名失败: %v", err)
		h.sendErrorResponse(w, "查询排名失败", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "查询成功", map[string]interface{}{
		"player_id": playerID,
		"type":      scoreType,
		"rank":      rank,
	})
}

// handleLeaderboard 处理排行榜查询
func (h *StatsHandler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	// 解析查询参数
	scoreType := models.LeaderboardType(r.URL.Query().Get("type"))
	if scoreType == "" {
		scoreType = models.LeaderboardScore
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	// 优先走Redis，失败或未启用时回退数据库
	if h.useRedis {
		entries, err := h.redisLeaderboard.GetLeaderboard(scoreType, limit)
		if err == nil && len(entries) > 0 {
			h.sendLeaderboardResponse(w, entries)
			return
		}
		// 排行榜为空时尝试刷新一次
		if err == nil {
			if refreshErr := h.redisLeaderboard.RefreshLeaderboard(); refreshErr == nil {
				if entries, err = h.redisLeaderboard.GetLeaderboard(scoreType, limit); err == nil && len(entries) > 0 {
					h.sendLeaderboardResponse(w, entries)
					return
				}
			}
		}
	}

	entries, err := h.getLeaderboardFromDB(scoreType, limit)
	if err != nil {
		log.Printf("查询排行榜失败: %v", err)
		h.sendErrorResponse(w, "查询排行榜失败", http.StatusInternalServerError)
		return
	}

	h.sendLeaderboardResponse(w, entries)
}

// handleRefreshLeaderboard 处理排行榜刷新
func (h *StatsHandler) handleRefreshLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendErrorResponse(w, "仅支持POST方法", http.StatusMethodNotAllowed)
		return
	}

	if !h.useRedis {
		h.sendErrorResponse(w, "排行榜服务不可用", http.StatusServiceUnavailable)
		return
	}

	if err := h.redisLeaderboard.RefreshLeaderboard(); err != nil {
		log.Printf("刷新排行榜失败: %v", err)
		h.sendErrorResponse(w, "刷新排行榜失败", http.StatusInternalServerError)
		return
	}

	h.sendSuccessResponse(w, "刷新成功", nil)
}

// 数据库查询方法

// getPlayerProgress 从存档JSONB提取进度概览
func (h *StatsHandler) getPlayerProgress(playerID int64) (*PlayerProgress, error) {
	query := `
		SELECT
			p.id,
			p.username,
			COALESCE((s.state->'user'->>'level')::int, 1),
			COALESCE((s.state->'user'->>'xp')::int, 0),
			COALESCE((s.state->'user'->>'hp')::int, 0),
			COALESCE((s.state->'user'->>'maxHp')::int, 0),
			COALESCE((s.state->'user'->>'credits')::int, 0),
			COALESCE((s.state->'user'->>'streak')::int, 0),
			COALESCE(jsonb_array_length(s.state->'quests'), 0),
			COALESCE((
				SELECT COUNT(*)
				FROM jsonb_array_elements(COALESCE(s.state->'quests', '[]'::jsonb)) q
				WHERE (q->>'completed')::boolean
			), 0),
			COALESCE(jsonb_array_length(s.state->'user'->'achievements'), 0),
			COALESCE(jsonb_array_length(s.state->'user'->'subSkills'), 0)
		FROM players p
		JOIN saves s ON s.player_id = p.id
		WHERE p.id = $1
	`

	var progress PlayerProgress
	err := db.DB.QueryRow(query, playerID).Scan(
		&progress.PlayerID, &progress.Username,
		&progress.Level, &progress.XP, &progress.HP, &progress.MaxHP,
		&progress.Credits, &progress.Streak,
		&progress.QuestsTotal, &progress.QuestsCompleted,
		&progress.Achievements, &progress.SubSkills,
	)
	if err != nil {
		return nil, err
	}

	return &progress, nil
}

// getPlayerHistory 返回最近limit天的每日快照
func (h *StatsHandler) getPlayerHistory(playerID int64, limit int) ([]models.StatSnapshot, error) {
	var raw []byte
	err := db.DB.QueryRow(
		"SELECT COALESCE(state->'statHistory', '[]'::jsonb) FROM saves WHERE player_id = $1",
		playerID,
	).Scan(&raw)
	if err != nil {
		return nil, err
	}

	var history []models.StatSnapshot
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, err
	}

	// 快照按时间追加，取末尾limit条
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	return history, nil
}

// getLeaderboardFromDB 无Redis时直接查数据库
func (h *StatsHandler) getLeaderboardFromDB(scoreType models.LeaderboardType, limit int) ([]models.LeaderboardEntry, error) {
	var orderBy string
	switch scoreType {
	case models.LeaderboardLevel:
		orderBy = "level DESC, xp DESC"
	case models.LeaderboardStreak:
		orderBy = "streak DESC"
	case models.LeaderboardCredits:
		orderBy = "credits DESC"
	default:
		orderBy = "score DESC"
	}

	query := `
		SELECT * FROM (
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
		) lb
		ORDER BY ` + orderBy + `
		LIMIT $1
	`

	rows, err := db.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	rank := 1
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(
			&entry.PlayerID, &entry.Username, &entry.Level,
			&entry.XP, &entry.Streak, &entry.Credits, &entry.Score,
		); err != nil {
			continue
		}
		entry.Rank = rank
		rank++
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// sendLeaderboardResponse 发送排行榜响应
func (h *StatsHandler) sendLeaderboardResponse(w http.ResponseWriter, entries []models.LeaderboardEntry) {
	resp := LeaderboardResponse{
		Success: true,
		Message: "查询成功",
		Data:    entries,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("编码响应失败: %v", err)
	}
}

// sendSuccessResponse 发送成功响应
func (h *StatsHandler) sendSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	resp := StatsResponse{
		Success: true,
		Message: message,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("编码响应失败: %v", err)
	}
}

// sendErrorResponse 发送错误响应
func (h *StatsHandler) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	resp := StatsResponse{
		Success: false,
		Message: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("编码错误响应失败: %v", err)
	}
}
