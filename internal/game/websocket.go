// websocket.go

package game

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jacl-coder/LudusVitae-Server/internal/engine"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
	"github.com/jacl-coder/LudusVitae-Server/internal/protocol"
)

const (
	// 写入超时时间
	writeWait = 10 * time.Second

	// 读取超时时间
	pongWait = 60 * time.Second

	// 发送 ping 的间隔时间
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小
	maxMessageSize = 512 * 1024 // 512KB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 允许所有跨域请求
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message 消息结构
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PlayerConnection 玩家连接
type PlayerConnection struct {
	ID         string
	PlayerID   int64
	Session    *Session
	LastActive time.Time

	// 发送通道
	Send chan []byte
}

// handleWSConnection 处理WebSocket连接
func (s *GameServer) handleWSConnection(w http.ResponseWriter, r *http.Request) {
	// 验证认证令牌
	claims, err := s.authenticate(r)
	if err != nil {
		http.Error(w, "未授权", http.StatusUnauthorized)
		return
	}

	// 加载玩家会话，跨日结算在此发生
	sess, notifications, err := s.sessions.GetOrLoad(claims.PlayerID)
	if err != nil {
		log.Printf("加载玩家 %d 存档失败: %v", claims.PlayerID, err)
		http.Error(w, "存档加载失败", http.StatusInternalServerError)
		return
	}

	// 升级HTTP连接为WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket升级失败: %v", err)
		return
	}

	// 创建玩家连接
	playerConn := &PlayerConnection{
		ID:         uuid.New().String(),
		PlayerID:   claims.PlayerID,
		Session:    sess,
		LastActive: time.Now(),
		Send:       make(chan []byte, 256),
	}

	// 添加到连接列表
	s.connMutex.Lock()
	s.connections[playerConn.ID] = playerConn
	s.connMutex.Unlock()

	log.Printf("玩家 %d 已连接", claims.PlayerID)

	// 启动读写协程
	go s.readPump(conn, playerConn)
	go s.writePump(conn, playerConn)

	// 推送初始状态
	s.sendState(playerConn, notifications)
}

// readPump 从WebSocket读取数据
func (s *GameServer) readPump(conn *websocket.Conn, player *PlayerConnection) {
	defer func() {
		s.closeConnection(player)
		conn.Close()
	}()

	// 设置读取参数
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket错误: %v", err)
			}
			break
		}

		player.LastActive = time.Now()

		// 处理接收到的消息
		s.handleMessage(player, message)
	}
}

// writePump 向WebSocket写入数据
func (s *GameServer) writePump(conn *websocket.Conn, player *PlayerConnection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-player.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// 添加队列中的其他消息
			n := len(player.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte("\n"))
				w.Write(<-player.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// closeConnection 关闭玩家连接
func (s *GameServer) closeConnection(player *PlayerConnection) {
	s.connMutex.Lock()
	defer s.connMutex.Unlock()

	// 检查连接是否已关闭
	if _, ok := s.connections[player.ID]; !ok {
		return
	}

	// 关闭发送通道
	close(player.Send)

	// 从连接列表移除
	delete(s.connections, player.ID)

	// 断线立即落盘，会话留给空闲回收
	if err := player.Session.Flush(); err != nil {
		log.Printf("玩家 %d 断线落盘失败: %v", player.PlayerID, err)
	}

	log.Printf("玩家 %d 已断开连接", player.PlayerID)
}

// handleMessage 处理接收到的消息
func (s *GameServer) handleMessage(player *PlayerConnection, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("解析消息失败: %v", err)
		return
	}

	switch msg.Type {
	case "get_state":
		s.sendState(player, nil)
	default:
		result, err := Dispatch(player.Session, msg.Type, msg.Payload)
		if err != nil {
			s.sendMessage(player, wsResponse{
				Type:   "op_result",
				Op:     msg.Type,
				Result: protocol.CreateErrorResult(err.Error()),
			})
			return
		}
		s.sendMessage(player, wsResponse{
			Type:    "op_result",
			Op:      msg.Type,
			Result:  result,
			Summary: s.summarize(player),
		})
	}
}

// wsResponse 下行操作结果
type wsResponse struct {
	Type    string                 `json:"type"`
	Op      string                 `json:"op"`
	Result  *protocol.OpResult     `json:"result"`
	Summary *protocol.StateSummary `json:"summary,omitempty"`
}

// wsState 下行完整状态
type wsState struct {
	Type          string                  `json:"type"`
	State         *models.GameState       `json:"state"`
	Summary       protocol.StateSummary   `json:"summary"`
	Notifications []protocol.Notification `json:"notifications,omitempty"`
}

// sendState 推送完整游戏状态
func (s *GameServer) sendState(player *PlayerConnection, notifications []protocol.Notification) {
	player.Session.View(func(e *engine.Engine, state *models.GameState) {
		s.sendMessage(player, wsState{
			Type:          "state",
			State:         state,
			Summary:       protocol.BuildStateSummary(state),
			Notifications: notifications,
		})
	})
}

// summarize 生成当前状态摘要
func (s *GameServer) summarize(player *PlayerConnection) *protocol.StateSummary {
	var summary protocol.StateSummary
	player.Session.View(func(e *engine.Engine, state *models.GameState) {
		summary = protocol.BuildStateSummary(state)
	})
	return &summary
}

// sendMessage 向玩家发送消息
func (s *GameServer) sendMessage(player *PlayerConnection, msg interface{}) {
	select {
	case <-s.shutdown:
		return
	default:
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("序列化消息失败: %v", err)
		return
	}

	select {
	case player.Send <- data:
		// 消息已发送到通道
	default:
		// 通道已满，关闭连接
		s.closeConnection(player)
	}
}
