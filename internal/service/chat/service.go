// Package chat 提供管理后台的 AI 回复测试控制台
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/repository"
	"github.com/wadesk/wadesk/internal/service/ai"
	"github.com/wadesk/wadesk/internal/service/rag"
)

const systemPromptTemplate = "You are a helpful customer service assistant. " +
	"Use the following context to answer questions when relevant:\n\n%s"

// MessageStore 消息持久化接口，便于测试
type MessageStore interface {
	CreateMessage(msg *model.Message) error
}

// Retriever 上下文召回接口，便于测试
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// Service 聊天服务
type Service struct {
	store     MessageStore
	retriever Retriever
	ai        *ai.Client
	sessions  *SessionCache
}

// NewService 创建聊天服务
func NewService(repos *repository.Repositories, retriever Retriever, aiClient *ai.Client, sessions *SessionCache) *Service {
	return &Service{
		store:     repos.Message,
		retriever: retriever,
		ai:        aiClient,
		sessions:  sessions,
	}
}

// SendRequest 发送消息请求
type SendRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
	Account   int    `json:"account"`
	ClientID  string `json:"client_id"`
}

// SendResponse 发送消息响应
type SendResponse struct {
	Response string `json:"response"`
}

// RecordRequest 外部渠道消息入库请求
type RecordRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Type      string `json:"type"`
	Account   int    `json:"account"`
	ClientID  string `json:"client_id"`
}

// Record 将一条外部渠道（WhatsApp 网关）消息写入聊天记录，不触发 AI 回复
func (s *Service) Record(ctx context.Context, req *RecordRequest) (*model.Message, error) {
	msgType := req.Type
	if msgType != model.MessageTypeAI {
		msgType = model.MessageTypeUser
	}

	account := req.Account
	if account == 0 {
		account = model.AccountPrimary
	}

	msg := &model.Message{
		Account:   account,
		SessionID: req.SessionID,
		ClientID:  req.ClientID,
		Body: model.MessageBody{
			Type:      msgType,
			Content:   req.Content,
			Timestamp: time.Now(),
		},
	}
	if err := s.store.CreateMessage(msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return msg, nil
}

// Send 处理一条用户消息并生成 AI 回复
// 上下文召回失败时降级为无上下文补全，不中断聊天
func (s *Service) Send(ctx context.Context, req *SendRequest) (*SendResponse, error) {
	if req.Message == "" || req.SessionID == "" {
		return nil, fmt.Errorf("message and session_id are required")
	}

	account := req.Account
	if account == 0 {
		account = model.AccountPrimary
	}

	contextChunks, err := s.retriever.Retrieve(ctx, req.Message, rag.DefaultTopK)
	if err != nil {
		log.Printf("Context retrieval failed for session %s: %v", req.SessionID, err)
		contextChunks = nil
	}
	systemPrompt := fmt.Sprintf(systemPromptTemplate, strings.Join(contextChunks, "\n\n"))

	messages := s.sessions.History(ctx, req.SessionID)
	messages = append(messages, schema.UserMessage(req.Message))

	response, err := s.ai.Complete(ctx, messages, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to process chat message: %w", err)
	}

	now := time.Now()
	userMsg := &model.Message{
		Account:   account,
		SessionID: req.SessionID,
		ClientID:  req.ClientID,
		Body: model.MessageBody{
			Type:      model.MessageTypeUser,
			Content:   req.Message,
			Timestamp: now,
		},
	}
	if err := s.store.CreateMessage(userMsg); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	aiMsg := &model.Message{
		Account:   account,
		SessionID: req.SessionID,
		ClientID:  req.ClientID,
		Body: model.MessageBody{
			Type:      model.MessageTypeAI,
			Content:   response,
			Timestamp: now,
		},
	}
	if err := s.store.CreateMessage(aiMsg); err != nil {
		return nil, fmt.Errorf("failed to store ai message: %w", err)
	}

	s.sessions.Append(ctx, req.SessionID, req.Message, response)

	return &SendResponse{Response: response}, nil
}
