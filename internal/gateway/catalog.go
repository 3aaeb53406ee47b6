package gateway

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jacl-coder/LudusVitae-Server/internal/catalog"
	"github.com/jacl-coder/LudusVitae-Server/internal/models"
)

// CatalogHandler 静态配置表处理器
// 物品、能力、成就等定义是只读的，直接从内置配置返回
type CatalogHandler struct{}

// NewCatalogHandler 创建静态配置表处理器
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// RegisterHandlers 注册HTTP处理器
func (h *CatalogHandler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/catalog/items", h.handleItems)
	mux.HandleFunc("/catalog/items/", h.handleItemByID)
	mux.HandleFunc("/catalog/powers", h.handlePowers)
	mux.HandleFunc("/catalog/achievements", h.handleAchievements)
	mux.HandleFunc("/catalog/story", h.handleStory)
	mux.HandleFunc("/catalog/heroes", h.handleHeroes)
	mux.HandleFunc("/catalog/skilltree", h.handleSkillTree)
}

// CatalogResponse 配置表响应
type CatalogResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// handleItems 返回全部物品定义
func (h *CatalogHandler) handleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	// 支持按稀有度过滤
	if rarity := r.URL.Query().Get("rarity"); rarity != "" {
		items := catalog.ItemsByRarity(models.Rarity(rarity))
		h.sendSuccessResponse(w, "查询成功", items)
		return
	}

	h.sendSuccessResponse(w, "查询成功", catalog.GameItems)
}

// handleItemByID 返回单个物品定义
func (h *CatalogHandler) handleItemByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/catalog/items/")
	item, ok := catalog.ItemByID(id)
	if !ok {
		h.sendErrorResponse(w, "物品不存在", http.StatusNotFound)
		return
	}

	h.sendSuccessResponse(w, "查询成功", item)
}

// handlePowers 返回全部主动能力定义
func (h *CatalogHandler) handlePowers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	h.sendSuccessResponse(w, "查询成功", catalog.Powers)
}

// handleAchievements 返回全部成就定义
func (h *CatalogHandler) handleAchievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	h.sendSuccessResponse(w, "查询成功", catalog.Achievements)
}

// handleStory 返回全部剧情碎片定义
func (h *CatalogHandler) handleStory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	h.sendSuccessResponse(w, "查询成功", catalog.StoryFragments)
}

// handleHeroes 返回内置英雄图鉴
func (h *CatalogHandler) handleHeroes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	h.sendSuccessResponse(w, "查询成功", catalog.InitialHeroes)
}

// handleSkillTree 返回技能树节点定义
func (h *CatalogHandler) handleSkillTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, "仅支持GET方法", http.StatusMethodNotAllowed)
		return
	}

	h.sendSuccessResponse(w, "查询成功", catalog.InitialSkills)
}

// sendSuccessResponse 发送成功响应
func (h *CatalogHandler) sendSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	resp := CatalogResponse{
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
func (h *CatalogHandler) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	resp := CatalogResponse{
		Success: false,
		Message: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("编码错误响应失败: %v", err)
	}
}
