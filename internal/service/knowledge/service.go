// Package knowledge 提供知识库文档摄取流水线：解析、分块、向量化、落库
package knowledge

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/service/ai"
)

// DocumentStore 文档持久化接口，便于测试
type DocumentStore interface {
	CreateDocument(doc *model.Document) error
	GetDocumentByID(id string) (*model.Document, error)
	ListDocuments(clientID string) ([]*model.Document, error)
	DeleteDocument(id string) error
	CreateChunk(chunk *model.Chunk) error
	CountChunksByDocumentID(docID string) (int64, error)
}

// Service 知识库服务
type Service struct {
	store     DocumentStore
	ai        *ai.Client
	chunkSize int
	overlap   int
}

// NewService 创建知识库服务
func NewService(store DocumentStore, aiClient *ai.Client) *Service {
	return &Service{
		store:     store,
		ai:        aiClient,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
}

// IngestRequest 文档摄取请求
type IngestRequest struct {
	Data     []byte
	MimeType string
	Filename string
	ClientID string
}

// IngestResult 摄取结果
// ChunkCount 为成功落库的分块数，可能小于切分出的分块数；
// 非空文档返回 0 时说明向量化基本全部失败，应向用户提示
type IngestResult struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
}

// Ingest 摄取一篇上传文档：解析 → 建档 → 分块 → 逐块向量化并落库
// 解析失败时不产生任何数据库写入；单块向量化失败跳过该块继续处理，
// 不中断整体摄取（大文档不应因个别坏块而整体失败）
func (s *Service) Ingest(ctx context.Context, req *IngestRequest) (*IngestResult, error) {
	parsed, err := ExtractDocument(ctx, req.Data, req.MimeType, req.Filename)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:       uuid.New().String(),
		Title:    parsed.Title,
		Filename: parsed.Filename,
		Content:  parsed.Content,
		ClientID: req.ClientID,
	}
	if err := s.store.CreateDocument(doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	chunks, err := ChunkText(parsed.Content, s.chunkSize, s.overlap)
	if err != nil {
		return nil, err
	}

	// 逐块串行处理：单个摄取任务对外部 API 的并发上限为 1
	persisted := 0
	for _, chunkText := range chunks {
		embedding, err := s.ai.Embed(ctx, chunkText)
		if err != nil {
			log.Printf("Failed to embed chunk for document %s: %v", doc.ID, err)
			continue
		}

		vec := pgvector.NewVector(embedding)
		chunk := &model.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ChunkText:  chunkText,
			Embedding:  &vec,
		}
		if err := s.store.CreateChunk(chunk); err != nil {
			// 约束类错误属于完整性问题，向上传播
			return nil, fmt.Errorf("failed to persist chunk: %w", err)
		}
		persisted++
	}

	return &IngestResult{
		DocumentID: doc.ID,
		ChunkCount: persisted,
	}, nil
}

// DocumentSummary 文档摘要（含分块数）
type DocumentSummary struct {
	*model.Document
	ChunkCount int64 `json:"chunk_count"`
}

// ListDocuments 列出文档及各自的分块数
func (s *Service) ListDocuments(ctx context.Context, clientID string) ([]*DocumentSummary, error) {
	docs, err := s.store.ListDocuments(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	summaries := make([]*DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		count, err := s.store.CountChunksByDocumentID(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count chunks: %w", err)
		}
		summaries = append(summaries, &DocumentSummary{Document: doc, ChunkCount: count})
	}
	return summaries, nil
}

// GetDocument 获取文档（含分块）
func (s *Service) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	return s.store.GetDocumentByID(id)
}

// DeleteDocument 删除文档及其所有分块
// id 不存在时静默成功，与前端的幂等删除语义一致
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	if err := s.store.DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
