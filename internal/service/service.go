// Package service 组装业务服务层
package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/embedding/dashscope"
	openaiembed "github.com/cloudwego/eino-ext/components/embedding/openai"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/embedding"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/redis/go-redis/v9"

	"github.com/wadesk/wadesk/internal/config"
	"github.com/wadesk/wadesk/internal/repository"
	"github.com/wadesk/wadesk/internal/service/ai"
	"github.com/wadesk/wadesk/internal/service/analytics"
	"github.com/wadesk/wadesk/internal/service/auth"
	"github.com/wadesk/wadesk/internal/service/chat"
	"github.com/wadesk/wadesk/internal/service/knowledge"
	"github.com/wadesk/wadesk/internal/service/payment"
	"github.com/wadesk/wadesk/internal/service/rag"
	"github.com/wadesk/wadesk/internal/service/setting"
	"github.com/wadesk/wadesk/internal/service/student"
)

// Services 服务集合
type Services struct {
	Auth      *auth.Service
	Knowledge *knowledge.Service
	RAG       *rag.Service
	Chat      *chat.Service
	Analytics *analytics.Service
	Student   *student.Service
	Payment   *payment.Service
	Setting   *setting.Service

	Config *config.Config
}

// NewServices 创建服务集合
func NewServices(ctx context.Context, cfg *config.Config, repos *repository.Repositories, redisClient *redis.Client) *Services {
	chatModel := newChatModel(ctx, cfg)
	embedder := newEmbedder(ctx, cfg)
	aiClient := ai.NewClient(chatModel, embedder)

	ragService := rag.NewService(aiClient, repos.Document)
	sessionCache := chat.NewSessionCache(redisClient)

	return &Services{
		Auth:      auth.NewService(repos),
		Knowledge: knowledge.NewService(repos.Document, aiClient),
		RAG:       ragService,
		Chat:      chat.NewService(repos, ragService, aiClient, sessionCache),
		Analytics: analytics.NewService(repos),
		Student:   student.NewService(repos),
		Payment:   payment.NewService(repos, cfg.Billing.RatePerMessage),
		Setting:   setting.NewService(repos),
		Config:    cfg,
	}
}

// newChatModel 创建对话模型
// 配置缺失时返回 nil，聊天接口会报错但其余功能可正常使用
func newChatModel(ctx context.Context, cfg *config.Config) einomodel.ChatModel {
	aiCfg := cfg.AI.OpenAI

	if aiCfg.APIKey == "" {
		log.Printf("Warning: ai.openai.api_key is empty, chat completion is disabled")
		return nil
	}

	modelName := aiCfg.Model
	if modelName == "" {
		modelName = "gpt-4o"
	}

	temperature := float32(aiCfg.Temperature)

	modelConfig := &openai.ChatModelConfig{
		APIKey:      aiCfg.APIKey,
		BaseURL:     aiCfg.BaseURL,
		Model:       modelName,
		Temperature: &temperature,
	}
	if aiCfg.MaxTokens > 0 {
		modelConfig.MaxTokens = &aiCfg.MaxTokens
	}
	if aiCfg.Timeout > 0 {
		modelConfig.Timeout = time.Duration(aiCfg.Timeout) * time.Second
	}

	chatModel, err := openai.NewChatModel(ctx, modelConfig)
	if err != nil {
		log.Printf("Warning: failed to create chat model: %v", err)
		return nil
	}
	return chatModel
}

// newEmbedder 根据配置的提供商创建向量化器
func newEmbedder(ctx context.Context, cfg *config.Config) embedding.Embedder {
	embCfg := cfg.AI.Embedding

	if embCfg.APIKey == "" {
		log.Printf("Warning: ai.embedding.api_key is empty, embedding is disabled")
		return nil
	}

	switch embCfg.Provider {
	case "dashscope":
		return newDashscopeEmbedder(ctx, &embCfg)
	default:
		return newOpenAIEmbedder(ctx, &embCfg)
	}
}

// newOpenAIEmbedder 创建 OpenAI 兼容接口的向量化器
func newOpenAIEmbedder(ctx context.Context, embCfg *config.EmbeddingConfig) embedding.Embedder {
	embedder, err := openaiembed.NewEmbedder(ctx, openAIEmbeddingConfig(embCfg))
	if err != nil {
		log.Printf("Warning: failed to create embedder: %v", err)
		return nil
	}
	return embedder
}

// openAIEmbeddingConfig 组装 OpenAI 向量化请求配置
func openAIEmbeddingConfig(embCfg *config.EmbeddingConfig) *openaiembed.EmbeddingConfig {
	model := embCfg.Model
	if model == "" {
		model = "text-embedding-ada-002"
	}

	embConfig := &openaiembed.EmbeddingConfig{
		APIKey:  embCfg.APIKey,
		BaseURL: embCfg.BaseURL,
		Model:   model,
	}
	if embCfg.Timeout > 0 {
		embConfig.Timeout = time.Duration(embCfg.Timeout) * time.Second
	}
	if embCfg.Dimensions > 0 && supportsEmbeddingDimensions(model) {
		embConfig.Dimensions = &embCfg.Dimensions
	}
	return embConfig
}

// supportsEmbeddingDimensions OpenAI 接口仅 text-embedding-3 系列接受
// dimensions 参数，对 ada-002 传该参数会被整体拒绝
func supportsEmbeddingDimensions(model string) bool {
	return strings.HasPrefix(model, "text-embedding-3")
}

// newDashscopeEmbedder 创建 DashScope 向量化器
func newDashscopeEmbedder(ctx context.Context, embCfg *config.EmbeddingConfig) embedding.Embedder {
	model := embCfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}

	embConfig := &dashscope.EmbeddingConfig{
		APIKey: embCfg.APIKey,
		Model:  model,
	}
	if embCfg.Timeout > 0 {
		embConfig.Timeout = time.Duration(embCfg.Timeout) * time.Second
	}
	if embCfg.Dimensions > 0 {
		embConfig.Dimensions = &embCfg.Dimensions
	}

	embedder, err := dashscope.NewEmbedder(ctx, embConfig)
	if err != nil {
		log.Printf("Warning: failed to create embedder: %v", err)
		return nil
	}
	return embedder
}
