// Package rag 提供基于向量检索的上下文召回
package rag

import (
	"context"
	"log"

	"github.com/wadesk/wadesk/internal/repository"
	"github.com/wadesk/wadesk/internal/service/ai"
)

// DefaultTopK 默认召回分块数
const DefaultTopK = 3

// ChunkSearcher 向量检索接口，便于测试
type ChunkSearcher interface {
	SearchSimilarChunks(ctx context.Context, queryEmbedding []float32, limit int) ([]repository.ChunkMatch, error)
}

// Service 检索服务
type Service struct {
	ai       *ai.Client
	searcher ChunkSearcher
}

// NewService 创建检索服务
func NewService(aiClient *ai.Client, searcher ChunkSearcher) *Service {
	return &Service{
		ai:       aiClient,
		searcher: searcher,
	}
}

// Retrieve 召回与查询最相近的 k 个分块文本，按相似度降序
// 查询向量化失败时返回空结果而非错误：检索只是增强手段，
// 缺失上下文应降低回答质量而不是中断聊天
// 不做缓存，重复查询每次都会重新向量化
func (s *Service) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	if query == "" {
		return []string{}, nil
	}
	if k <= 0 {
		k = DefaultTopK
	}

	embedding, err := s.ai.Embed(ctx, query)
	if err != nil {
		log.Printf("Failed to embed query, returning empty context: %v", err)
		return []string{}, nil
	}

	matches, err := s.searcher.SearchSimilarChunks(ctx, embedding, k)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(matches))
	for _, match := range matches {
		texts = append(texts, match.ChunkText)
	}
	return texts, nil
}
