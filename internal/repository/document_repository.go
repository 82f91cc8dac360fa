package repository

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"github.com/wadesk/wadesk/internal/model"
	"gorm.io/gorm"
)

// DocumentRepository 文档与分块数据访问
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository 创建文档仓库
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// CreateDocument 创建文档
func (r *DocumentRepository) CreateDocument(doc *model.Document) error {
	return r.db.Create(doc).Error
}

// GetDocumentByID 获取文档
func (r *DocumentRepository) GetDocumentByID(id string) (*model.Document, error) {
	var doc model.Document
	err := r.db.Preload("Chunks").Where("id = ?", id).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments 列出文档
func (r *DocumentRepository) ListDocuments(clientID string) ([]*model.Document, error) {
	var docs []*model.Document
	query := r.db.Order("created_at DESC")
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	err := query.Find(&docs).Error
	return docs, err
}

// DeleteDocument 删除文档及其所有分块
// 目标 id 不存在时静默成功（幂等删除）
func (r *DocumentRepository) DeleteDocument(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Chunk{}, "document_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Document{}, "id = ?", id).Error
	})
}

// CreateChunk 创建单个分块
// document_id 不存在时返回外键约束错误
func (r *DocumentRepository) CreateChunk(chunk *model.Chunk) error {
	return r.db.Create(chunk).Error
}

// GetChunksByDocumentID 获取文档分块
func (r *DocumentRepository) GetChunksByDocumentID(docID string) ([]*model.Chunk, error) {
	var chunks []*model.Chunk
	err := r.db.Where("document_id = ?", docID).Order("created_at ASC").Find(&chunks).Error
	return chunks, err
}

// CountChunksByDocumentID 统计文档分块数量
func (r *DocumentRepository) CountChunksByDocumentID(docID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Chunk{}).Where("document_id = ?", docID).Count(&count).Error
	return count, err
}

// DeleteChunksByDocumentID 删除文档的所有分块（幂等）
func (r *DocumentRepository) DeleteChunksByDocumentID(docID string) error {
	return r.db.Delete(&model.Chunk{}, "document_id = ?", docID).Error
}

// ChunkMatch 相似度检索结果
type ChunkMatch struct {
	ChunkText  string  `json:"chunk_text"`
	Similarity float64 `json:"similarity"`
}

// SearchSimilarChunks 按余弦相似度检索最相近的分块
// 依赖 pgvector 在服务端计算 1 - 余弦距离并排序，跳过未向量化的分块
func (r *DocumentRepository) SearchSimilarChunks(ctx context.Context, queryEmbedding []float32, limit int) ([]ChunkMatch, error) {
	vec := pgvector.NewVector(queryEmbedding)

	var matches []ChunkMatch
	err := r.db.WithContext(ctx).Raw(
		`SELECT chunk_text, 1 - (embedding <=> ?) AS similarity
		 FROM chunks
		 WHERE embedding IS NOT NULL
		 ORDER BY embedding <=> ?
		 LIMIT ?`,
		vec, vec, limit,
	).Scan(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
