// session.go

package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jacl-coder/LudusVitae-Server/internal/engine"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
	"github.com/jacl-coder/LudusVitae-Server/internal/protocol"
	"github.com/jacl-coder/LudusVitae-Server/internal/storage"
)

// Session 一个玩家加载到内存中的存档
// 所有读写都通过 Do/View 串行化，存档本体不跨会话共享
type Session struct {
	PlayerID   int64
	State      *models.GameState
	LastActive time.Time

	mutex     sync.Mutex
	engine    *engine.Engine
	store     *storage.Store
	autosaver *storage.Autosaver
	cloud     storage.Session
}

// SessionManager 管理所有在线会话
type SessionManager struct {
	engine        *engine.Engine
	store         *storage.Store
	autosaveDelay time.Duration

	sessions map[int64]*Session
	mutex    sync.RWMutex
}

// NewSessionManager 创建会话管理器
func NewSessionManager(eng *engine.Engine, store *storage.Store, autosaveDelay time.Duration) *SessionManager {
	return &SessionManager{
		engine:        eng,
		store:         store,
		autosaveDelay: autosaveDelay,
		sessions:      make(map[int64]*Session),
	}
}

// GetOrLoad 获取玩家会话，不在内存时从数据库加载并结算每日衰减
// 返回本次加载产生的通知（衰减、解锁等），已在线时通知为空
func (m *SessionManager) GetOrLoad(playerID int64) (*Session, []protocol.Notification, error) {
	m.mutex.RLock()
	if sess, ok := m.sessions[playerID]; ok {
		m.mutex.RUnlock()
		sess.touch()
		return sess, nil, nil
	}
	m.mutex.RUnlock()

	m.mutex.Lock()
	defer m.mutex.Unlock()
	// 双重检查，避免并发加载同一玩家
	if sess, ok := m.sessions[playerID]; ok {
		sess.touch()
		return sess, nil, nil
	}

	raw, err := m.store.Load(playerID)
	if err != nil {
		return nil, nil, err
	}

	today := m.engine.Today()
	state, err := storage.MergeWithDefaults(raw, today, m.engine.Now().UnixMilli())
	if err != nil {
		return nil, nil, fmt.Errorf("加载存档失败: %w", err)
	}

	sess := &Session{
		PlayerID:   playerID,
		State:      state,
		LastActive: time.Now(),
		engine:     m.engine,
		store:      m.store,
		cloud:      storage.Session{UserID: strconv.FormatInt(playerID, 10)},
	}
	sess.autosaver = storage.NewAutosaver(m.autosaveDelay, sess.persist)

	// 会话开始时结算每日衰减，再跑一轮解锁检查
	report := m.engine.ProcessDailyDecay(state)
	notifications := protocol.DecayNotifications(report)
	notifications = append(notifications, sess.runUnlocks()...)
	if report.IsNewDay {
		notifications = append(notifications, protocol.Notification{
			Message:  "A new day begins. Complete the Daybreak Protocol.",
			Category: "success",
		})
	}

	if err := sess.persistLocked(); err != nil {
		return nil, nil, err
	}

	m.sessions[playerID] = sess
	log.Printf("玩家 %d 的存档已加载", playerID)
	return sess, notifications, nil
}

// Unload 把会话落盘后从内存移除
func (m *SessionManager) Unload(playerID int64) {
	m.mutex.Lock()
	sess, ok := m.sessions[playerID]
	if ok {
		delete(m.sessions, playerID)
	}
	m.mutex.Unlock()

	if ok {
		sess.autosaver.Stop()
		log.Printf("玩家 %d 的会话已卸载", playerID)
	}
}

// CleanupIdle 卸载超过空闲时限的会话
func (m *SessionManager) CleanupIdle(idle time.Duration) {
	m.mutex.RLock()
	var stale []int64
	for id, sess := range m.sessions {
		sess.mutex.Lock()
		if time.Since(sess.LastActive) > idle {
			stale = append(stale, id)
		}
		sess.mutex.Unlock()
	}
	m.mutex.RUnlock()

	for _, id := range stale {
		m.Unload(id)
	}
}

// Shutdown 落盘并卸载全部会话
func (m *SessionManager) Shutdown() {
	m.mutex.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.sessions = make(map[int64]*Session)
	m.mutex.Unlock()

	for _, sess := range sessions {
		sess.autosaver.Stop()
	}
}

// touch 刷新会话活跃时间
func (s *Session) touch() {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
}

// Do 在会话锁内执行一次状态变更
// 变更后自动跑解锁检查并触发防抖存档，解锁通知附加在返回值里
func (s *Session) Do(fn func(*engine.Engine, *models.GameState) (*protocol.OpResult, error)) (*protocol.OpResult, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.LastActive = time.Now()

	result, err := fn(s.engine, s.State)
	if err != nil {
		return nil, err
	}

	result.Notifications = append(result.Notifications, s.runUnlocks()...)
	s.autosaver.Trigger()
	return result, nil
}

// View 在会话锁内执行一次只读访问
func (s *Session) View(fn func(*engine.Engine, *models.GameState)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.LastActive = time.Now()
	fn(s.engine, s.State)
}

// Replace 用新存档整体替换当前会话（导入、云端恢复）
// 替换前把旧档快照进历史表
func (s *Session) Replace(state *models.GameState, reason string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.store.Snapshot(s.PlayerID, reason); err != nil {
		log.Printf("覆盖前快照失败: %v", err)
	}
	s.State = state
	return s.persistLocked()
}

// Flush 立即落盘
func (s *Session) Flush() error {
	return s.autosaver.Flush()
}

// runUnlocks 变更后的解锁检查：成就、故事碎片、技能树节点
// 调用方必须已持有会话锁
func (s *Session) runUnlocks() []protocol.Notification {
	var notifications []protocol.Notification

	achievements := engine.CheckAchievements(s.State)
	fragments := engine.CheckStoryUnlocks(s.State)
	engine.ApplyUnlocks(s.State, achievements, fragments)
	for _, a := range achievements {
		notifications = append(notifications, protocol.AchievementNotification(a))
	}
	for _, f := range fragments {
		notifications = append(notifications, protocol.StoryNotification(f))
	}

	for _, node := range engine.CheckSkillNodeUnlocks(s.State) {
		notifications = append(notifications, protocol.Notification{
			Message:  "SKILL UNLOCKED: " + node.Title,
			Category: "success",
		})
	}

	return notifications
}

// persist 加锁落盘，自动存档回调从独立协程进入
func (s *Session) persist() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.persistLocked()
}

// persistLocked 把存档写入数据库并尽力同步云端，调用方必须已持有会话锁
// 序列化在锁内完成，云同步拿到的是不可变的原文副本
func (s *Session) persistLocked() error {
	raw, err := json.Marshal(s.State)
	if err != nil {
		return fmt.Errorf("序列化存档失败: %w", err)
	}
	if err := s.store.SaveRaw(s.PlayerID, raw); err != nil {
		return err
	}
	go storage.SaveRawToCloud(context.Background(), s.cloud, raw)
	return nil
}
