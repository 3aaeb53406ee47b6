// handler.go

package oracle

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jacl-coder/LudusVitae-Server/internal/auth"
	"github.com/jacl-coder/LudusVitae-Server/internal/storage"
)

// OracleHandler 先知HTTP处理器
type OracleHandler struct {
	service *OracleService
}

// NewOracleHandler 创建先知处理器
func NewOracleHandler(service *OracleService) *OracleHandler {
	return &OracleHandler{
		service: service,
	}
}

// RegisterHandlers 注册HTTP处理器
func (h *OracleHandler) RegisterHandlers(mux *http.ServeMux) {
	// 健康检查端点
	mux.HandleFunc("/health", h.handleHealth)

	// 先知问询端点
	mux.HandleFunc("/ask", h.handleAsk)
	mux.HandleFunc("/personas", h.handlePersonas)
}

// handleHealth 处理健康检查请求
func (h *OracleHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	if h.service == nil {
		http.Error(w, "服务未初始化", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// 问询请求
type askRequest struct {
	Persona Persona `json:"persona"`
	Query   string  `json:"query"`
}

// 问询响应
type askResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Reply   *Reply `json:"reply,omitempty"`
}

// 人格列表响应
type personasResponse struct {
	Personas []Persona `json:"personas"`
}

// handleAsk 处理先知问询请求
func (h *OracleHandler) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "仅支持POST方法", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := h.authenticate(r)
	if !ok {
		http.Error(w, "未授权", http.StatusUnauthorized)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "无效的请求格式", http.StatusBadRequest)
		return
	}
	if req.Persona == "" {
		req.Persona = PersonaOracle
	}
	if !ValidPersona(req.Persona) {
		http.Error(w, "未知的先知人格", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "问题不能为空", http.StatusBadRequest)
		return
	}

	pc, err := h.loadContext(claims.PlayerID)
	if err != nil {
		log.Printf("加载玩家 %d 上下文失败: %v", claims.PlayerID, err)
		http.Error(w, "加载存档失败", http.StatusInternalServerError)
		return
	}

	reply, err := h.service.Ask(r.Context(), req.Persona, req.Query, pc)
	if err != nil {
		// 上游失败时返回角色口吻的保底文案，玩家状态不受影响
		log.Printf("先知问询失败 [%s]: %v", req.Persona, err)
		h.writeJSON(w, askResponse{Success: true, Reply: &Reply{Text: fallbackText(req.Persona)}})
		return
	}

	h.writeJSON(w, askResponse{Success: true, Reply: reply})
}

// handlePersonas 返回可用的先知人格
func (h *OracleHandler) handlePersonas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, personasResponse{
		Personas: []Persona{PersonaOracle, PersonaSanctuary, PersonaMirror, PersonaForge},
	})
}

// authenticate 解析请求携带的JWT
func (h *OracleHandler) authenticate(r *http.Request) (*auth.Claims, bool) {
	token := r.URL.Query().Get("token")
	if token == "" {
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		return nil, false
	}
	claims, err := auth.ParseToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// loadContext 读取玩家存档并提取prompt上下文
func (h *OracleHandler) loadContext(playerID int64) (PromptContext, error) {
	raw, err := h.service.store.Load(playerID)
	if err != nil {
		return PromptContext{}, err
	}
	now := time.Now()
	state, err := storage.MergeWithDefaults(raw, now.Format("2006-01-02"), now.UnixMilli())
	if err != nil {
		return PromptContext{}, err
	}
	return BuildPromptContext(state), nil
}

func (h *OracleHandler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("写入响应失败: %v", err)
	}
}
