package game

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacl-coder/LudusVitae-Server/config"
	"github.com/jacl-coder/LudusVitae-Server/internal/auth"
)

// newTestServer 预先把会话塞进管理器，HTTP路径不会触碰数据库
func newTestServer(t *testing.T, rolls ...int64) (http.Handler, string) {
	t.Helper()

	sess := newTestSession(rolls...)
	manager := NewSessionManager(sess.engine, nil, time.Hour)
	manager.sessions[sess.PlayerID] = sess

	srv := &GameServer{
		config:      &config.Config{},
		sessions:    manager,
		connections: make(map[string]*PlayerConnection),
		shutdown:    make(chan struct{}),
	}

	token, err := auth.GenerateToken(sess.PlayerID, "tester")
	require.NoError(t, err)
	return srv.createHandler(), token
}

func TestStateEndpoint(t *testing.T) {
	handler, token := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		State struct {
			User struct {
				Level   int `json:"level"`
				Credits int `json:"credits"`
			} `json:"user"`
		} `json:"state"`
		Summary struct {
			Level int `json:"level"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.State.User.Level)
	assert.Equal(t, 1, resp.Summary.Level)
}

func TestStateRequiresToken(t *testing.T) {
	handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStateRejectsGarbageToken(t *testing.T) {
	handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/state?token=not-a-jwt", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOpsCompleteQuestRoute(t *testing.T) {
	handler, token := newTestServer(t, rollVal(0.3))

	body := strings.NewReader(`{"op":"complete_quest","payload":{"questId":"q5"}}`)
	req := httptest.NewRequest(http.MethodPost, "/ops?token="+token, body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Task Complete.", result.Message)
}

func TestOpsUnknownOperation(t *testing.T) {
	handler, token := newTestServer(t)

	body := strings.NewReader(`{"op":"summon_meteor","payload":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/ops?token="+token, body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	handler, token := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ludusvitae_save.json")

	var exported map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exported))
	assert.Contains(t, exported, "user")
	assert.Contains(t, exported, "quests")
}

func TestHealthEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
