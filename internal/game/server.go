package game

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jacl-coder/LudusVitae-Server/config"
	"github.com/jacl-coder/LudusVitae-Server/internal/auth"
	"github.com/jacl-coder/LudusVitae-Server/internal/engine"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
	"github.com/jacl-coder/LudusVitae-Server/internal/protocol"
	"github.com/jacl-coder/LudusVitae-Server/internal/storage"
)

// 空闲会话回收阈值
const sessionIdleTimeout = 30 * time.Minute

// GameServer 游戏服务器
type GameServer struct {
	config      *config.Config
	sessions    *SessionManager
	httpServer  *http.Server
	connections map[string]*PlayerConnection
	connMutex   sync.RWMutex

	// 关闭信号
	shutdown  chan struct{}
	isRunning bool
}

// NewGameServer 创建新的游戏服务器
func NewGameServer(cfg *config.Config) *GameServer {
	delay := time.Duration(cfg.Server.AutosaveDelayMs) * time.Millisecond
	return &GameServer{
		config:      cfg,
		sessions:    NewSessionManager(engine.New(), storage.NewStore(), delay),
		connections: make(map[string]*PlayerConnection),
		shutdown:    make(chan struct{}),
	}
}

// Start 启动游戏服务器
func (s *GameServer) Start() error {
	if s.isRunning {
		return fmt.Errorf("服务器已经在运行")
	}

	// 初始化HTTP服务器
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Server.GamePort),
		Handler: s.createHandler(),
	}

	// 启动HTTP服务器
	go func() {
		log.Printf("游戏服务器启动，监听端口: %d", s.config.Server.GamePort)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP服务器错误: %v", err)
		}
	}()

	// 启动会话管理
	go s.sessionJanitor()

	s.isRunning = true
	return nil
}

// Stop 停止游戏服务器
func (s *GameServer) Stop() error {
	if !s.isRunning {
		return nil
	}

	// 发送关闭信号
	close(s.shutdown)

	// 关闭所有连接
	s.connMutex.Lock()
	for _, conn := range s.connections {
		close(conn.Send)
	}
	s.connections = make(map[string]*PlayerConnection)
	s.connMutex.Unlock()

	// 落盘所有会话
	s.sessions.Shutdown()

	// 关闭HTTP服务器
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP服务器关闭错误: %w", err)
	}

	s.isRunning = false
	log.Println("游戏服务器已停止")
	return nil
}

// createHandler 创建HTTP处理器
func (s *GameServer) createHandler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket 连接端点
	mux.HandleFunc("/ws", s.handleWSConnection)

	// 存档与操作端点
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/ops", s.handleOps)
	mux.HandleFunc("/export", s.handleExport)
	mux.HandleFunc("/import", s.handleImport)

	// 健康检查端点
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

// sessionJanitor 定期回收空闲会话
func (s *GameServer) sessionJanitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sessions.CleanupIdle(sessionIdleTimeout)
		case <-s.shutdown:
			return
		}
	}
}

// authenticate 从请求中解析玩家身份
func (s *GameServer) authenticate(r *http.Request) (*auth.Claims, error) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if tokenString == "" {
		return nil, fmt.Errorf("缺少认证令牌")
	}
	return auth.ParseToken(tokenString)
}

// loadSession 认证并加载玩家会话
func (s *GameServer) loadSession(r *http.Request) (*Session, []protocol.Notification, error) {
	claims, err := s.authenticate(r)
	if err != nil {
		return nil, nil, err
	}
	return s.sessions.GetOrLoad(claims.PlayerID)
}

// handleState 返回完整游戏状态
func (s *GameServer) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, notifications, err := s.loadSession(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, protocol.CreateErrorResult(err.Error()))
		return
	}

	var resp struct {
		State         *models.GameState       `json:"state"`
		Summary       protocol.StateSummary   `json:"summary"`
		Notifications []protocol.Notification `json:"notifications"`
	}
	sess.View(func(e *engine.Engine, state *models.GameState) {
		resp.State = state
		resp.Summary = protocol.BuildStateSummary(state)
		resp.Notifications = notifications
		writeJSON(w, http.StatusOK, resp)
	})
}

// handleOps 执行一次游戏操作
func (s *GameServer) handleOps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, _, err := s.loadSession(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, protocol.CreateErrorResult(err.Error()))
		return
	}

	var req struct {
		Op      string          `json:"op"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.CreateErrorResult("请求体解析失败"))
		return
	}

	result, err := Dispatch(sess, req.Op, req.Payload)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.CreateErrorResult(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleExport 导出存档
func (s *GameServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, _, err := s.loadSession(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, protocol.CreateErrorResult(err.Error()))
		return
	}

	var raw []byte
	var exportErr error
	sess.View(func(e *engine.Engine, state *models.GameState) {
		raw, exportErr = storage.Export(state)
	})
	if exportErr != nil {
		writeJSON(w, http.StatusInternalServerError, protocol.CreateErrorResult("导出失败"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=ludusvitae_save.json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// handleImport 导入存档，覆盖当前状态
func (s *GameServer) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, _, err := s.loadSession(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, protocol.CreateErrorResult(err.Error()))
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.CreateErrorResult("请求体读取失败"))
		return
	}

	eng := engine.New()
	state, err := storage.Import(raw, eng.Today(), eng.Now().UnixMilli())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.CreateErrorResult("Invalid Save File"))
		return
	}

	if err := sess.Replace(state, "import"); err != nil {
		writeJSON(w, http.StatusInternalServerError, protocol.CreateErrorResult("导入失败"))
		return
	}

	result := protocol.CreateSuccessResult("Save Imported", nil)
	result.Notifications = []protocol.Notification{{Message: "Save Imported. System Rebooted.", Category: "success"}}
	writeJSON(w, http.StatusOK, result)
}

// writeJSON 统一的JSON响应
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("写入响应失败: %v", err)
	}
}
