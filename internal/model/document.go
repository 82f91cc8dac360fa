package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// EmbeddingDimension 向量维度，与 text-embedding-ada-002 保持一致
const EmbeddingDimension = 1536

// Document 知识库文档
// Content 为上传文件解析后的完整文本；入库前必须已完成解析
type Document struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ClientID  string    `gorm:"index;size:36" json:"client_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Chunks    []Chunk   `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"chunks,omitempty"`
}

// Chunk 文档分块及其向量
// Embedding 允许为 NULL（向量化失败的分块不会入库，但模型层面不强制）
type Chunk struct {
	ID         string           `gorm:"primaryKey;size:36" json:"id"`
	DocumentID string           `gorm:"index;size:36;not null" json:"document_id"`
	ChunkText  string           `gorm:"type:text;not null" json:"chunk_text"`
	Embedding  *pgvector.Vector `gorm:"type:vector(1536)" json:"-"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Document) TableName() string {
	return "documents"
}

// TableName 指定表名
func (Chunk) TableName() string {
	return "chunks"
}
