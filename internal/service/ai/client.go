// Package ai 封装外部模型调用（向量化与对话补全）
// 客户端在进程启动时构造一次，作为显式依赖注入各服务
package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// FallbackResponse 补全接口未返回内容时的兜底回复
const FallbackResponse = "I apologize, but I couldn't generate a response."

// Client 模型客户端
type Client struct {
	chatModel model.ChatModel
	embedder  embedding.Embedder
}

// NewClient 创建模型客户端
func NewClient(chatModel model.ChatModel, embedder embedding.Embedder) *Client {
	return &Client{
		chatModel: chatModel,
		embedder:  embedder,
	}
}

// Embed 将文本向量化为定长向量
// 每次调用都会产生一次计费的外部请求，是否重试由调用方决定
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.embedder == nil {
		return nil, fmt.Errorf("embedder not configured")
	}

	vectors, err := c.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("embedding response is empty")
	}

	vec := make([]float32, len(vectors[0]))
	for i, v := range vectors[0] {
		vec[i] = float32(v)
	}
	return vec, nil
}

// Complete 生成对话补全
// systemPrompt 非空时作为首条 system 消息；接口无内容时返回兜底回复而非错误
func (c *Client) Complete(ctx context.Context, messages []*schema.Message, systemPrompt string) (string, error) {
	if c.chatModel == nil {
		return "", fmt.Errorf("chat model not configured")
	}

	msgs := make([]*schema.Message, 0, len(messages)+1)
	if systemPrompt != "" {
		msgs = append(msgs, schema.SystemMessage(systemPrompt))
	}
	msgs = append(msgs, messages...)

	result, err := c.chatModel.Generate(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("failed to generate chat response: %w", err)
	}
	if result == nil || result.Content == "" {
		return FallbackResponse, nil
	}
	return result.Content, nil
}
