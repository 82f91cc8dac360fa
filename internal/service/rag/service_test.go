// Package rag 上下文召回单元测试
package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/embedding"

	"github.com/wadesk/wadesk/internal/repository"
	"github.com/wadesk/wadesk/internal/service/ai"
)

// ========== fakeSearcher ==========

type fakeSearcher struct {
	matches   []repository.ChunkMatch
	err       error
	lastLimit int
}

func (s *fakeSearcher) SearchSimilarChunks(ctx context.Context, queryEmbedding []float32, limit int) ([]repository.ChunkMatch, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.matches, nil
}

// ========== fakeEmbedder ==========

type fakeEmbedder struct {
	err error
}

func (e *fakeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if e.err != nil {
		return nil, e.err
	}
	return [][]float64{{0.1, 0.2}}, nil
}

// ========== Retrieve 测试 ==========

func TestRetrieve(t *testing.T) {
	searcher := &fakeSearcher{matches: []repository.ChunkMatch{
		{ChunkText: "most similar", Similarity: 0.95},
		{ChunkText: "second", Similarity: 0.80},
		{ChunkText: "third", Similarity: 0.60},
	}}
	svc := NewService(ai.NewClient(nil, &fakeEmbedder{}), searcher)

	texts, err := svc.Retrieve(context.Background(), "how do I enroll?", 3)
	if err != nil {
		t.Fatalf("Retrieve() unexpected error: %v", err)
	}

	// 保持检索返回的相似度降序
	want := []string{"most similar", "second", "third"}
	if len(texts) != len(want) {
		t.Fatalf("Retrieve() = %d chunks, want %d", len(texts), len(want))
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewService(ai.NewClient(nil, &fakeEmbedder{}), searcher)

	texts, err := svc.Retrieve(context.Background(), "", 3)
	if err != nil {
		t.Fatalf("Retrieve() unexpected error: %v", err)
	}
	if len(texts) != 0 {
		t.Errorf("Retrieve() on empty query = %d chunks, want 0", len(texts))
	}
}

func TestRetrieve_DefaultTopK(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewService(ai.NewClient(nil, &fakeEmbedder{}), searcher)

	if _, err := svc.Retrieve(context.Background(), "query", 0); err != nil {
		t.Fatalf("Retrieve() unexpected error: %v", err)
	}
	if searcher.lastLimit != DefaultTopK {
		t.Errorf("search limit = %d, want %d", searcher.lastLimit, DefaultTopK)
	}
}

func TestRetrieve_EmbeddingFailureDegrades(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewService(ai.NewClient(nil, &fakeEmbedder{err: errors.New("api down")}), searcher)

	// 查询向量化失败降级为空上下文，而非错误
	texts, err := svc.Retrieve(context.Background(), "query", 3)
	if err != nil {
		t.Fatalf("Retrieve() error = %v, want nil on embedding failure", err)
	}
	if texts == nil {
		t.Fatal("Retrieve() = nil, want empty slice")
	}
	if len(texts) != 0 {
		t.Errorf("Retrieve() = %d chunks, want 0", len(texts))
	}
}

func TestRetrieve_SearchError(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("db connection lost")}
	svc := NewService(ai.NewClient(nil, &fakeEmbedder{}), searcher)

	_, err := svc.Retrieve(context.Background(), "query", 3)
	if err == nil {
		t.Fatal("Retrieve() expected error on search failure")
	}
}
