package gateway

import (
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jacl-coder/LudusVitae-Server/internal/auth"
	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/storage"
	"github.com/jacl-coder/LudusVitae-Server/pkg/db"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	// 会话缓存，支持Redis，用于登出后吊销令牌
	sessions   map[string]SessionInfo
	useRedis   bool
	sessionTTL time.Duration
	store      *storage.Store
}

// SessionInfo 会话信息
type SessionInfo struct {
	PlayerID  int64
	Username  string
	ExpiresAt time.Time
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token,omitempty"`
	PlayerID int64  `json:"player_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler() *AuthHandler {
	// 检查Redis是否可用
	useRedis := db.RedisClient != nil

	return &AuthHandler{
		sessions:   make(map[string]SessionInfo),
		useRedis:   useRedis,
		sessionTTL: auth.TokenExpiry,
		store:      storage.NewStore(),
	}
}

// RegisterHandlers 注册HTTP处理器
func (h *AuthHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/auth/login", h.handleLogin)
	mux.HandleFunc("/auth/register", h.handleRegister)
	mux.HandleFunc("/auth/validate", h.handleValidate)
	mux.HandleFunc("/auth/logout", h.handleLogout)
}

// handleLogin 处理登录请求
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "仅支持POST方法", http.StatusMethodNotAllowed)
		return
	}

	// 解析请求
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "无效的请求格式", http.StatusBadRequest)
		return
	}

	// 验证用户名和密码
	playerID, err := h.validateCredentials(req.Username, req.Password)
	if err != nil {
		resp := AuthResponse{
			Success: false,
			Message: "用户名或密码错误",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
		return
	}

	// 签发令牌
	token, err := auth.GenerateToken(playerID, req.Username)
	if err != nil {
		http.Error(w, "生成令牌失败", http.StatusInternalServerError)
		return
	}

	// 保存会话信息
	sessionInfo := SessionInfo{
		PlayerID:  playerID,
		Username:  req.Username,
		ExpiresAt: time.Now().Add(h.sessionTTL),
	}
	h.setSession(token, sessionInfo)

	// 记录登录时间
	if _, err := db.DB.Exec("UPDATE players SET last_login_at = NOW() WHERE id = $1", playerID); err != nil {
		log.Printf("更新登录时间失败: %v", err)
	}

	// 返回成功响应
	resp := AuthResponse{
		Success:  true,
		Message:  "登录成功",
		Token:    token,
		PlayerID: playerID,
		Username: req.Username,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleRegister 处理注册请求
func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "仅支持POST方法", http.StatusMethodNotAllowed)
		return
	}

	// 解析请求
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "无效的请求格式", http.StatusBadRequest)
		return
	}

	// 验证请求
	if req.Username == "" || req.Password == "" || req.Email == "" {
		http.Error(w, "缺少必要参数", http.StatusBadRequest)
		return
	}

	// 创建用户
	playerID, err := h.createUser(req.Username, req.Password, req.Email)
	if err != nil {
		resp := AuthResponse{
			Success: false,
			Message: fmt.Sprintf("注册失败: %v", err),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
		return
	}

	// 初始化存档
	if err := h.seedInitialSave(playerID); err != nil {
		log.Printf("初始化玩家 %d 存档失败: %v", playerID, err)
	}

	// 签发令牌
	token, err := auth.GenerateToken(playerID, req.Username)
	if err != nil {
		http.Error(w, "生成令牌失败", http.StatusInternalServerError)
		return
	}

	// 保存会话信息
	sessionInfo := SessionInfo{
		PlayerID:  playerID,
		Username:  req.Username,
		ExpiresAt: time.Now().Add(h.sessionTTL),
	}
	h.setSession(token, sessionInfo)

	// 返回成功响应
	resp := AuthResponse{
		Success:  true,
		Message:  "注册成功",
		Token:    token,
		PlayerID: playerID,
		Username: req.Username,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleValidate 处理令牌验证请求
func (h *AuthHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	token := extractToken(r)
	if token == "" {
		http.Error(w, "未提供令牌", http.StatusBadRequest)
		return
	}

	playerID, username, ok := h.ValidateToken(token)
	if !ok {
		http.Error(w, "无效或已过期的令牌", http.StatusUnauthorized)
		return
	}

	resp := AuthResponse{
		Success:  true,
		Message:  "令牌有效",
		PlayerID: playerID,
		Username: username,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleLogout 处理登出请求
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "仅支持POST方法", http.StatusMethodNotAllowed)
		return
	}

	token := extractToken(r)
	if token == "" {
		http.Error(w, "未提供令牌", http.StatusBadRequest)
		return
	}

	// 删除会话，令牌随之吊销
	h.deleteSession(token)

	resp := AuthResponse{
		Success: true,
		Message: "登出成功",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// extractToken 从请求头或查询参数取令牌
func extractToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	token = strings.TrimPrefix(token, "Bearer ")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	return token
}

// validateCredentials 验证用户凭据
func (h *AuthHandler) validateCredentials(username, password string) (int64, error) {
	// 计算密码哈希
	hashedPassword := hashPassword(password)

	// 查询数据库
	var playerID int64
	err := db.DB.QueryRow("SELECT id FROM players WHERE username = $1 AND password = $2", username, hashedPassword).Scan(&playerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("用户名或密码错误")
		}
		return 0, fmt.Errorf("数据库查询错误: %w", err)
	}

	return playerID, nil
}

// createUser 创建用户
func (h *AuthHandler) createUser(username, password, email string) (int64, error) {
	// 检查用户名是否已存在
	var count int
	err := db.DB.QueryRow("SELECT COUNT(*) FROM players WHERE username = $1", username).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("数据库查询错误: %w", err)
	}
	if count > 0 {
		return 0, fmt.Errorf("用户名已存在")
	}

	// 检查邮箱是否已存在
	err = db.DB.QueryRow("SELECT COUNT(*) FROM players WHERE email = $1", email).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("数据库查询错误: %w", err)
	}
	if count > 0 {
		return 0, fmt.Errorf("邮箱已被使用")
	}

	// 计算密码哈希
	hashedPassword := hashPassword(password)

	// 插入用户
	var playerID int64
	err = db.DB.QueryRow(
		"INSERT INTO players (username, password, email, created_at, updated_at) VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id",
		username, hashedPassword, email,
	).Scan(&playerID)
	if err != nil {
		return 0, fmt.Errorf("创建用户失败: %w", err)
	}

	return playerID, nil
}

// seedInitialSave 为新玩家写入初始存档
func (h *AuthHandler) seedInitialSave(playerID int64) error {
	today := time.Now().Format("2006-01-02")
	return h.store.Save(playerID, catalog.InitialState(today))
}

// hashPassword 计算密码哈希
func hashPassword(password string) string {
	// 使用SHA-256哈希
	// 在实际应用中，应该使用更安全的哈希算法，如bcrypt
	hash := sha256.Sum256([]byte(password))
	return fmt.Sprintf("%x", hash)
}

// setSession 设置会话信息
func (h *AuthHandler) setSession(token string, session SessionInfo) {
	if h.useRedis {
		// 使用Redis存储
		sessionKey := "session:" + token
		sessionData := fmt.Sprintf("%d:%s:%d", session.PlayerID, session.Username, session.ExpiresAt.Unix())

		err := db.RedisClient.Set(db.RedisClient.Context(), sessionKey, sessionData, h.sessionTTL).Err()
		if err != nil {
			// Redis失败时回退到内存存储
			h.sessions[token] = session
		}
	} else {
		// 使用内存存储
		h.sessions[token] = session
	}
}

// getSession 获取会话信息
func (h *AuthHandler) getSession(token string) (SessionInfo, bool) {
	if h.useRedis {
		// 从Redis获取
		sessionKey := "session:" + token
		sessionData, err := db.RedisClient.Get(db.RedisClient.Context(), sessionKey).Result()
		if err != nil {
			// Redis失败时尝试内存存储
			session, ok := h.sessions[token]
			return session, ok
		}

		// 解析会话数据
		parts := strings.Split(sessionData, ":")
		if len(parts) != 3 {
			return SessionInfo{}, false
		}

		playerID, _ := strconv.ParseInt(parts[0], 10, 64)
		username := parts[1]
		expiresAt, _ := strconv.ParseInt(parts[2], 10, 64)

		session := SessionInfo{
			PlayerID:  playerID,
			Username:  username,
			ExpiresAt: time.Unix(expiresAt, 0),
		}

		return session, true
	}

	// 从内存获取
	session, ok := h.sessions[token]
	return session, ok
}

// deleteSession 删除会话信息
func (h *AuthHandler) deleteSession(token string) {
	if h.useRedis {
		// 从Redis删除
		sessionKey := "session:" + token
		db.RedisClient.Del(db.RedisClient.Context(), sessionKey)
	}

	// 同时从内存删除（如果存在）
	delete(h.sessions, token)
}

// ValidateToken 验证令牌（供其他模块使用）
// 令牌本身必须可解析，且会话未被登出吊销
func (h *AuthHandler) ValidateToken(token string) (int64, string, bool) {
	claims, err := auth.ParseToken(token)
	if err != nil {
		return 0, "", false
	}

	session, ok := h.getSession(token)
	if !ok || time.Now().After(session.ExpiresAt) {
		if ok {
			h.deleteSession(token)
		}
		return 0, "", false
	}

	return claims.PlayerID, claims.Username, true
}
