// service.go

package oracle

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/jacl-coder/LudusVitae-Server/config"
	"github.com/jacl-coder/LudusVitae-Server/internal/storage"
)

// OracleService 先知服务，封装Gemini客户端并暴露HTTP接口
type OracleService struct {
	config     *config.Config
	client     *genai.Client
	store      *storage.Store
	httpServer *http.Server
	shutdown   chan struct{}
	isRunning  bool
}

// Reply 先知回复
type Reply struct {
	Text      string                `json:"text"`
	ToolCalls []*genai.FunctionCall `json:"toolCalls,omitempty"`
	Actions   []*AcceptedCall       `json:"actions,omitempty"`
}

// NewOracleService 创建先知服务
func NewOracleService(cfg *config.Config) *OracleService {
	return &OracleService{
		config:   cfg,
		store:    storage.NewStore(),
		shutdown: make(chan struct{}),
	}
}

// Start 启动先知服务
func (s *OracleService) Start() error {
	if s.isRunning {
		return fmt.Errorf("先知服务已在运行")
	}

	if s.config.Oracle.APIKey == "" {
		log.Printf("警告: 未配置Gemini API密钥，先知将始终返回保底回复")
	} else {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  s.config.Oracle.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("创建Gemini客户端失败: %w", err)
		}
		s.client = client
	}

	mux := http.NewServeMux()
	handler := NewOracleHandler(s)
	handler.RegisterHandlers(mux)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.OraclePort),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	s.isRunning = true
	log.Printf("先知服务启动，端口: %d，模型: %s", s.config.Server.OraclePort, s.config.Oracle.Model)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("先知服务HTTP错误: %v", err)
		}
	}()

	return nil
}

// Stop 停止先知服务
func (s *OracleService) Stop() error {
	if !s.isRunning {
		return nil
	}
	s.isRunning = false
	close(s.shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("关闭先知服务失败: %w", err)
	}

	log.Println("先知服务已停止")
	return nil
}

// Ask 以指定人格向Gemini提问，返回文本与工具调用
func (s *OracleService) Ask(ctx context.Context, persona Persona, query string, pc PromptContext) (*Reply, error) {
	if s.client == nil {
		return nil, fmt.Errorf("Gemini客户端未初始化")
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.config.Oracle.Model, genai.Text(query), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction(persona, pc), genai.RoleUser),
		Tools:             []*genai.Tool{{FunctionDeclarations: toolDeclarations}},
		ThinkingConfig:    &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		return nil, fmt.Errorf("调用Gemini失败: %w", err)
	}

	reply := &Reply{
		Text:      resp.Text(),
		ToolCalls: resp.FunctionCalls(),
	}
	for _, call := range reply.ToolCalls {
		accepted, err := AcceptToolCall(call)
		if err != nil {
			log.Printf("工具调用转换失败 [%s]: %v", call.Name, err)
			continue
		}
		reply.Actions = append(reply.Actions, accepted)
	}
	return reply, nil
}
